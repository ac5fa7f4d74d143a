package mongorepo

import (
	"context"

	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names match the SQL table names.
const (
	CollectionReceipts     = "receipts"
	CollectionRooms        = "rooms"
	CollectionBills        = "restaurant_bills"
	CollectionMenuItems    = "menu_items"
	CollectionBankAccounts = "bank_accounts"
)

type mongoPinger struct {
	client *mongo.Client
}

func (p *mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

// NewRemote wires every cloud collection onto one database handle
func NewRemote(db *mongo.Database) *domainRepo.Remote {
	return &domainRepo.Remote{
		Receipts:     NewReceiptRepository(db),
		Rooms:        NewRoomRepository(db),
		Bills:        NewBillRepository(db),
		Menu:         NewMenuRepository(db),
		BankAccounts: NewBankAccountRepository(db),
		Pinger:       &mongoPinger{client: db.Client()},
	}
}

// EnsureIndexes creates the secondary indexes the queries rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionReceipts: {
			{Keys: bson.D{{Key: "serial_number", Value: 1}}},
			{Keys: bson.D{{Key: "location", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
		CollectionRooms: {
			{Keys: bson.D{{Key: "location", Value: 1}, {Key: "number", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionBills: {
			{Keys: bson.D{{Key: "bill_number", Value: 1}}},
			{Keys: bson.D{{Key: "room_number", Value: 1}, {Key: "room_location", Value: 1}, {Key: "guest_name_lower", Value: 1}}},
		},
		CollectionMenuItems: {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}},
		},
		CollectionBankAccounts: {
			{Keys: bson.D{{Key: "location", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
