package repository

import (
	"context"

	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sqlPinger struct {
	db *gorm.DB
}

func (p *sqlPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// NewRemote wires every cloud table onto one gorm connection
func NewRemote(db *gorm.DB) *domainRepo.Remote {
	return &domainRepo.Remote{
		Receipts:     NewReceiptRepository(db),
		Rooms:        NewRoomRepository(db),
		Bills:        NewBillRepository(db),
		Menu:         NewMenuRepository(db),
		BankAccounts: NewBankAccountRepository(db),
		Pinger:       &sqlPinger{db: db},
	}
}
