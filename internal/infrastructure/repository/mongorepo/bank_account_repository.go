package mongorepo

import (
	"context"
	"errors"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bankAccountRepository struct {
	coll *mongo.Collection
}

// NewBankAccountRepository creates the bank_accounts collection
func NewBankAccountRepository(db *mongo.Database) domainRepo.RemoteBankAccountRepository {
	return &bankAccountRepository{coll: db.Collection(CollectionBankAccounts)}
}

func (r *bankAccountRepository) Latest(ctx context.Context, location string) (*entity.BankAccount, error) {
	filter := bson.M{"location": bson.M{"$in": []string{location, entity.BankAccountAllLocations}}}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var doc bankAccountDoc
	err := r.coll.FindOne(ctx, filter, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	account := doc.toEntity()
	return &account, nil
}

func (r *bankAccountRepository) Create(ctx context.Context, account *entity.BankAccount) error {
	_, err := r.coll.InsertOne(ctx, toBankAccountDoc(account))
	return err
}

func (r *bankAccountRepository) Update(ctx context.Context, account *entity.BankAccount) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": account.ID}, bson.M{"$set": bson.M{
		"bank_name":      account.BankName,
		"account_number": account.AccountNumber,
		"account_name":   account.AccountName,
		"location":       account.Location,
		"updated_at":     time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperror.NewNotFoundError("Bank account")
	}
	return nil
}
