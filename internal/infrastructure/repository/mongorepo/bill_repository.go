package mongorepo

import (
	"context"
	"strings"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type billRepository struct {
	coll *mongo.Collection
}

// NewBillRepository creates the restaurant_bills collection
func NewBillRepository(db *mongo.Database) domainRepo.RemoteBillRepository {
	return &billRepository{coll: db.Collection(CollectionBills)}
}

// Insert ignores a bill that is already stored; bills never change.
func (r *billRepository) Insert(ctx context.Context, bill *entity.Bill) error {
	doc := toBillDoc(bill)
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": doc.ID},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *billRepository) List(ctx context.Context, filter entity.BillFilter) ([]entity.Bill, error) {
	query := bson.M{}
	if filter.RoomNumber != "" {
		query["room_number"] = filter.RoomNumber
	}
	if filter.Location != "" {
		query["room_location"] = filter.Location
	}
	if name := strings.ToLower(strings.TrimSpace(filter.GuestName)); name != "" {
		query["guest_name_lower"] = name
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []billDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	bills := make([]entity.Bill, 0, len(docs))
	for i := range docs {
		bills = append(bills, docs[i].toEntity())
	}
	return bills, nil
}
