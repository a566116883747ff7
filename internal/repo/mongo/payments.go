package mongo

import (
	"context"

	"github.com/geocoder89/staffhub/internal/domain/payment"
	"github.com/geocoder89/staffhub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentsRepo struct {
	base
}

func NewPaymentsRepo(db *mongo.Database, prom *observability.Prom) *PaymentsRepo {
	return &PaymentsRepo{base{coll: db.Collection(PaymentsCollection), prom: prom}}
}

var chronological = bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}, {Key: "_id", Value: 1}}

func (r *PaymentsRepo) Page(ctx context.Context, email string, offset, limit int) ([]payment.Payment, int, error) {
	filter := bson.M{"email": email}

	var total int64

	err := r.observe("payments.count", func() error {
		var e error
		total, e = r.coll.CountDocuments(ctx, filter)
		return e
	})

	if err != nil {
		return nil, 0, err
	}

	var out []payment.Payment

	err = r.observe("payments.page", func() error {
		cur, err := r.coll.Find(ctx, filter,
			options.Find().SetSort(chronological).SetSkip(int64(offset)).SetLimit(int64(limit)))
		if err != nil {
			return err
		}

		out, err = decodeAll(ctx, cur, paymentDoc.toDomain)
		return err
	})

	if err != nil {
		return nil, 0, err
	}

	return out, int(total), nil
}

func (r *PaymentsRepo) ListByEmail(ctx context.Context, email string) ([]payment.Payment, error) {
	var out []payment.Payment

	err := r.observe("payments.list_by_email", func() error {
		cur, err := r.coll.Find(ctx, bson.M{"email": email}, options.Find().SetSort(chronological))
		if err != nil {
			return err
		}

		out, err = decodeAll(ctx, cur, paymentDoc.toDomain)
		return err
	})

	return out, err
}

func (r *PaymentsRepo) Upsert(ctx context.Context, p payment.Payment) error {
	return r.observe("payments.upsert", func() error {
		_, err := r.coll.UpdateOne(ctx,
			bson.M{"email": p.Email, "year": p.Year, "month": p.Month},
			bson.M{"$set": bson.M{"amount": p.Amount}},
			options.Update().SetUpsert(true),
		)
		return err
	})
}
