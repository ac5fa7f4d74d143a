package repository

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
)

// BankAccountCache holds the last fetched account
type BankAccountCache interface {
	Load(ctx context.Context) (*entity.BankAccount, error)
	Save(ctx context.Context, account *entity.BankAccount) error
}

// RemoteBankAccountRepository is the bank_accounts table
type RemoteBankAccountRepository interface {
	// Latest returns the newest account for location or for all branches
	Latest(ctx context.Context, location string) (*entity.BankAccount, error)
	Create(ctx context.Context, account *entity.BankAccount) error
	Update(ctx context.Context, account *entity.BankAccount) error
}
