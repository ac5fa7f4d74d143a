package entity

// SyncResult counts the outcome of one queue drain.
type SyncResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// Add folds another result into r.
func (r *SyncResult) Add(o SyncResult) {
	r.Success += o.Success
	r.Failed += o.Failed
}

// SyncStatus is the aggregate sync state shown to staff. Individual
// failures are never surfaced, only counts.
type SyncStatus struct {
	Online          bool  `json:"online"`
	PendingReceipts int   `json:"pendingReceipts"`
	PendingRooms    int   `json:"pendingRooms"`
	PendingBills    int   `json:"pendingBills"`
	LastSyncAt      int64 `json:"lastSyncAt,omitempty"`
}
