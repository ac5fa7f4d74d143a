package localstore

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
)

type bankAccountCache struct {
	kv repository.KeyValueStore
}

// NewBankAccountCache creates the cached bank account
func NewBankAccountCache(kv repository.KeyValueStore) repository.BankAccountCache {
	return &bankAccountCache{kv: kv}
}

func (c *bankAccountCache) Load(ctx context.Context) (*entity.BankAccount, error) {
	var account entity.BankAccount
	ok, err := readJSON(ctx, c.kv, KeyBankAccount, &account)
	if err != nil || !ok {
		return nil, err
	}
	return &account, nil
}

func (c *bankAccountCache) Save(ctx context.Context, account *entity.BankAccount) error {
	return writeJSON(ctx, c.kv, KeyBankAccount, account)
}
