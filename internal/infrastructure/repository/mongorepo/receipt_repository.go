package mongorepo

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type receiptRepository struct {
	coll *mongo.Collection
}

// NewReceiptRepository creates the receipts collection
func NewReceiptRepository(db *mongo.Database) domainRepo.RemoteReceiptRepository {
	return &receiptRepository{coll: db.Collection(CollectionReceipts)}
}

// Insert writes the receipt once. A replayed insert only carries the
// checked-out flag forward.
func (r *receiptRepository) Insert(ctx context.Context, receipt *entity.Receipt) error {
	doc := toReceiptDoc(receipt)
	update, err := receiptUpsert(doc)
	if err != nil {
		return err
	}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": doc.ID}, update, options.Update().SetUpsert(true))
	return err
}

// receiptUpsert raises checked_out with $max (false < true in BSON order),
// so a stale replay cannot turn the flag back off.
func receiptUpsert(doc *receiptDoc) (bson.M, error) {
	onInsert, err := withoutField(doc, "checked_out")
	if err != nil {
		return nil, err
	}
	return bson.M{
		"$setOnInsert": onInsert,
		"$max":         bson.M{"checked_out": doc.CheckedOut},
	}, nil
}

func (r *receiptRepository) List(ctx context.Context) ([]entity.Receipt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []receiptDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	receipts := make([]entity.Receipt, 0, len(docs))
	for i := range docs {
		receipt, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

func (r *receiptRepository) MarkCheckedOut(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"checked_out": true}},
	)
	return err
}

// withoutField marshals doc to a bson.M and drops one key, so the same
// field can appear under $set without conflicting with $setOnInsert.
func withoutField(doc interface{}, field string) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	delete(m, field)
	return m, nil
}
