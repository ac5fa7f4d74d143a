package entity

import "time"

// IdempotencyKey stores a processed request so a retried submission from
// a flaky front-desk connection replays the first response.
type IdempotencyKey struct {
	Key          string    `json:"key"`
	UserID       string    `json:"userId"`
	Endpoint     string    `json:"endpoint"`
	ResponseCode int       `json:"responseCode"`
	ResponseBody string    `json:"responseBody"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
