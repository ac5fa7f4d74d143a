package mongorepo

import (
	"context"
	"errors"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type menuRepository struct {
	coll *mongo.Collection
}

// NewMenuRepository creates the menu_items collection
func NewMenuRepository(db *mongo.Database) domainRepo.RemoteMenuRepository {
	return &menuRepository{coll: db.Collection(CollectionMenuItems)}
}

func (r *menuRepository) ListAvailable(ctx context.Context) ([]entity.MenuItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"available": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []menuItemDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]entity.MenuItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, entity.MenuItem(doc))
	}
	return items, nil
}

func (r *menuRepository) Get(ctx context.Context, id string) (*entity.MenuItem, error) {
	var doc menuItemDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item := entity.MenuItem(doc)
	return &item, nil
}

func (r *menuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	_, err := r.coll.InsertOne(ctx, menuItemDoc(*item))
	if mongo.IsDuplicateKeyError(err) {
		return apperror.NewConflictError("Menu item already exists")
	}
	return err
}

func (r *menuRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": item.ID}, menuItemDoc(*item))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperror.NewNotFoundError("Menu item")
	}
	return nil
}

func (r *menuRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperror.NewNotFoundError("Menu item")
	}
	return nil
}
