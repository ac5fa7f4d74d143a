package mongorepo

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type roomRepository struct {
	coll *mongo.Collection
}

// NewRoomRepository creates the rooms collection
func NewRoomRepository(db *mongo.Database) domainRepo.RemoteRoomRepository {
	return &roomRepository{coll: db.Collection(CollectionRooms)}
}

func (r *roomRepository) Upsert(ctx context.Context, room *entity.Room) error {
	doc := toRoomDoc(room)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *roomRepository) UpsertBatch(ctx context.Context, rooms []entity.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(rooms))
	for i := range rooms {
		doc := toRoomDoc(&rooms[i])
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	_, err := r.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

func (r *roomRepository) ListByLocation(ctx context.Context, location string) ([]entity.Room, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"location": location})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []roomDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	rooms := make([]entity.Room, 0, len(docs))
	for i := range docs {
		room, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}
