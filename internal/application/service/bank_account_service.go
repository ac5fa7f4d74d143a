package service

import (
	"context"
	"strings"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
	"github.com/atlantichotel/frontdesk-api/pkg/utils"
	"go.uber.org/zap"
)

// BankAccountService provides the transfer details printed on invoices
type BankAccountService struct {
	cache  repository.BankAccountCache
	remote repository.RemoteBankAccountRepository
	conn   Connectivity
	logger *zap.Logger
	now    func() time.Time
}

// NewBankAccountService creates a new bank account service
func NewBankAccountService(cache repository.BankAccountCache, remote repository.RemoteBankAccountRepository, conn Connectivity, logger *zap.Logger) *BankAccountService {
	return &BankAccountService{
		cache:  cache,
		remote: remote,
		conn:   conn,
		logger: logger.With(zap.String("service", "bank_accounts")),
		now:    time.Now,
	}
}

// Get returns the newest account for location, or one shared by every
// branch. The cached copy is used when the remote table is unreachable.
// A nil account with no error means none is configured.
func (s *BankAccountService) Get(ctx context.Context, location string) (*entity.BankAccount, error) {
	if s.conn.IsOnline() {
		account, err := s.remote.Latest(ctx, location)
		if err == nil {
			if account != nil {
				if err := s.cache.Save(ctx, account); err != nil {
					return nil, err
				}
			}
			return account, nil
		}
		s.logger.Warn("fetch bank account failed, using cache", zap.String("location", location), zap.Error(err))
	}

	cached, err := s.cache.Load(ctx)
	if err != nil || cached == nil {
		return nil, err
	}
	if cached.Location != "" && cached.Location != entity.BankAccountAllLocations && cached.Location != location {
		return nil, nil
	}
	return cached, nil
}

// BankAccountInput represents the create/update bank account input
type BankAccountInput struct {
	BankName      string
	AccountNumber string
	AccountName   string
	Location      string
}

func (in *BankAccountInput) validate() error {
	var errs []apperror.FieldError
	if strings.TrimSpace(in.BankName) == "" {
		errs = append(errs, apperror.FieldError{Field: "bankName", Message: "Bank name is required"})
	}
	if strings.TrimSpace(in.AccountNumber) == "" {
		errs = append(errs, apperror.FieldError{Field: "accountNumber", Message: "Account number is required"})
	}
	if strings.TrimSpace(in.AccountName) == "" {
		errs = append(errs, apperror.FieldError{Field: "accountName", Message: "Account name is required"})
	}
	if in.Location != "" && in.Location != entity.BankAccountAllLocations {
		if _, ok := entity.GetLocation(in.Location); !ok {
			errs = append(errs, apperror.FieldError{Field: "location", Message: "Unknown location"})
		}
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

// Create stores a new account
func (s *BankAccountService) Create(ctx context.Context, input *BankAccountInput) (*entity.BankAccount, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if !s.conn.IsOnline() {
		return nil, apperror.ErrOffline
	}

	location := input.Location
	if location == "" {
		location = entity.BankAccountAllLocations
	}
	ts := s.now().UTC().Format(time.RFC3339)
	account := &entity.BankAccount{
		ID:            utils.NewID(),
		BankName:      strings.TrimSpace(input.BankName),
		AccountNumber: strings.TrimSpace(input.AccountNumber),
		AccountName:   strings.TrimSpace(input.AccountName),
		Location:      location,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
	if err := s.remote.Create(ctx, account); err != nil {
		return nil, err
	}
	if err := s.cache.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Update changes an existing account
func (s *BankAccountService) Update(ctx context.Context, id string, input *BankAccountInput) (*entity.BankAccount, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if !s.conn.IsOnline() {
		return nil, apperror.ErrOffline
	}

	location := input.Location
	if location == "" {
		location = entity.BankAccountAllLocations
	}
	account := &entity.BankAccount{
		ID:            id,
		BankName:      strings.TrimSpace(input.BankName),
		AccountNumber: strings.TrimSpace(input.AccountNumber),
		AccountName:   strings.TrimSpace(input.AccountName),
		Location:      location,
		UpdatedAt:     s.now().UTC().Format(time.RFC3339),
	}
	if err := s.remote.Update(ctx, account); err != nil {
		return nil, err
	}
	if err := s.cache.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
