package mongo

import (
	"context"

	"github.com/geocoder89/staffhub/internal/domain/message"
	"github.com/geocoder89/staffhub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessagesRepo struct {
	base
}

func NewMessagesRepo(db *mongo.Database, prom *observability.Prom) *MessagesRepo {
	return &MessagesRepo{base{coll: db.Collection(MessagesCollection), prom: prom}}
}

func (r *MessagesRepo) Create(ctx context.Context, m message.Message) (message.Message, error) {
	var res *mongo.InsertOneResult

	err := r.observe("messages.create", func() error {
		var e error
		res, e = r.coll.InsertOne(ctx, messageDoc{
			Email:     m.Email,
			Message:   m.Message,
			Date:      m.Date,
			CreatedAt: m.CreatedAt,
		})
		return e
	})

	if err != nil {
		return message.Message{}, err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid.Hex()
	}

	return m, nil
}

func (r *MessagesRepo) List(ctx context.Context) ([]message.Message, error) {
	var out []message.Message

	err := r.observe("messages.list", func() error {
		cur, err := r.coll.Find(ctx, bson.M{},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
		if err != nil {
			return err
		}

		out, err = decodeAll(ctx, cur, messageDoc.toDomain)
		return err
	})

	return out, err
}
