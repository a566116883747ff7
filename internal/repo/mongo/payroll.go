package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/geocoder89/staffhub/internal/domain/payroll"
	"github.com/geocoder89/staffhub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PayrollRepo struct {
	base
}

func NewPayrollRepo(db *mongo.Database, prom *observability.Prom) *PayrollRepo {
	return &PayrollRepo{base{coll: db.Collection(PayrollCollection), prom: prom}}
}

// CreateIfAbsent upserts on (email, month, year). The unique index created by
// EnsureIndexes turns a lost race into a duplicate key error.
func (r *PayrollRepo) CreateIfAbsent(ctx context.Context, req payroll.Request) (payroll.Request, error) {
	var res *mongo.UpdateResult

	err := r.observe("payroll.create_if_absent", func() error {
		var e error
		res, e = r.coll.UpdateOne(ctx,
			bson.M{"email": req.Email, "month": req.Month, "year": req.Year},
			bson.M{"$setOnInsert": bson.M{
				"name":        req.Name,
				"amount":      req.Amount,
				"status":      req.Status,
				"isPaid":      req.IsPaid,
				"paymentDate": req.PaymentDate,
				"posted":      req.Posted,
				"createdAt":   req.CreatedAt,
			}},
			options.Update().SetUpsert(true),
		)
		return e
	})

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return payroll.Request{}, payroll.ErrAlreadyRequested
		}
		return payroll.Request{}, err
	}

	if res.UpsertedCount == 0 {
		return payroll.Request{}, payroll.ErrAlreadyRequested
	}

	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		req.ID = oid.Hex()
	}

	return req, nil
}

func (r *PayrollRepo) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]payroll.Request, error) {
	var out []payroll.Request

	err := r.observe(op, func() error {
		cur, err := r.coll.Find(ctx, filter, opts)
		if err != nil {
			return err
		}

		out, err = decodeAll(ctx, cur, payrollDoc.toDomain)
		return err
	})

	return out, err
}

func (r *PayrollRepo) List(ctx context.Context) ([]payroll.Request, error) {
	return r.find(ctx, "payroll.list", bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
}

func (r *PayrollRepo) ListUnposted(ctx context.Context, limit int) ([]payroll.Request, error) {
	return r.find(ctx, "payroll.list_unposted",
		bson.M{"isPaid": true, "posted": bson.M{"$ne": true}},
		options.Find().SetSort(bson.D{{Key: "paymentDate", Value: 1}, {Key: "_id", Value: 1}}).SetLimit(int64(limit)))
}

func (r *PayrollRepo) MarkPaid(ctx context.Context, id string, at time.Time) (payroll.Request, error) {
	oid, ok := objectID(id)
	if !ok {
		return payroll.Request{}, payroll.ErrNotFound
	}

	var d payrollDoc

	err := r.observe("payroll.mark_paid", func() error {
		return r.coll.FindOneAndUpdate(ctx,
			bson.M{"_id": oid},
			bson.M{"$set": bson.M{"isPaid": true, "status": payroll.StatusPaid, "paymentDate": at.UTC()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&d)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return payroll.Request{}, payroll.ErrNotFound
		}
		return payroll.Request{}, err
	}

	return d.toDomain(), nil
}

func (r *PayrollRepo) MarkPosted(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return payroll.ErrNotFound
	}

	var res *mongo.UpdateResult

	err := r.observe("payroll.mark_posted", func() error {
		var e error
		res, e = r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"posted": true}})
		return e
	})

	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return payroll.ErrNotFound
	}

	return nil
}
