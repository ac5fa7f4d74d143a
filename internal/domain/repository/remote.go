package repository

import "context"

// Remote bundles the cloud database tables. Both the SQL and the document
// drivers fill it in.
type Remote struct {
	Receipts     RemoteReceiptRepository
	Rooms        RemoteRoomRepository
	Bills        RemoteBillRepository
	Menu         RemoteMenuRepository
	BankAccounts RemoteBankAccountRepository
	Pinger       Pinger
}

// Pinger checks that the cloud database answers
type Pinger interface {
	Ping(ctx context.Context) error
}
