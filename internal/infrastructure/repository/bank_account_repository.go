package repository

import (
	"context"
	"errors"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
	"gorm.io/gorm"
)

type bankAccountRepository struct {
	db *gorm.DB
}

// NewBankAccountRepository creates the remote bank_accounts table
func NewBankAccountRepository(db *gorm.DB) domainRepo.RemoteBankAccountRepository {
	return &bankAccountRepository{db: db}
}

func (r *bankAccountRepository) Latest(ctx context.Context, location string) (*entity.BankAccount, error) {
	var row bankAccountRow
	err := r.db.WithContext(ctx).
		Where("location IN ?", []string{location, entity.BankAccountAllLocations}).
		Order("created_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	account := row.toEntity()
	return &account, nil
}

func (r *bankAccountRepository) Create(ctx context.Context, account *entity.BankAccount) error {
	return r.db.WithContext(ctx).Create(toBankAccountRow(account)).Error
}

func (r *bankAccountRepository) Update(ctx context.Context, account *entity.BankAccount) error {
	result := r.db.WithContext(ctx).
		Model(&bankAccountRow{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"bank_name":      account.BankName,
			"account_number": account.AccountNumber,
			"account_name":   account.AccountName,
			"location":       account.Location,
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Bank account")
	}
	return nil
}
