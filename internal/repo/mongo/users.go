package mongo

import (
	"context"
	"errors"

	"github.com/geocoder89/staffhub/internal/domain/user"
	"github.com/geocoder89/staffhub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UsersRepo struct {
	base
}

func NewUsersRepo(db *mongo.Database, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{base{coll: db.Collection(UsersCollection), prom: prom}}
}

func (r *UsersRepo) find(ctx context.Context, op string, filter bson.M) ([]user.User, error) {
	var out []user.User

	err := r.observe(op, func() error {
		cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
		if err != nil {
			return err
		}

		out, err = decodeAll(ctx, cur, userDoc.toDomain)
		return err
	})

	return out, err
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	return r.find(ctx, "users.list", bson.M{})
}

func (r *UsersRepo) ListByRole(ctx context.Context, role string) ([]user.User, error) {
	return r.find(ctx, "users.list_by_role", bson.M{"role": role})
}

func (r *UsersRepo) ListVerified(ctx context.Context) ([]user.User, error) {
	return r.find(ctx, "users.list_verified", bson.M{"isVerified": true, "role": bson.M{"$ne": user.RoleAdmin}})
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var d userDoc

	err := r.observe("users.get_by_email", func() error {
		return r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&d)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return d.toDomain(), nil
}

// CreateIfAbsent upserts on email with $setOnInsert; an existing user is left untouched.
func (r *UsersRepo) CreateIfAbsent(ctx context.Context, u user.User) (user.User, bool, error) {
	var res *mongo.UpdateResult

	err := r.observe("users.create_if_absent", func() error {
		var e error
		res, e = r.coll.UpdateOne(ctx,
			bson.M{"email": u.Email},
			bson.M{"$setOnInsert": bson.M{
				"name":            u.Name,
				"role":            u.Role,
				"photo":           u.Photo,
				"designation":     u.Designation,
				"bank_account_no": u.BankAccountNo,
				"salary":          u.Salary,
				"isVerified":      u.IsVerified,
				"isFired":         u.IsFired,
				"createdAt":       u.CreatedAt,
			}},
			options.Update().SetUpsert(true),
		)
		return e
	})

	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return user.User{}, false, err
	}

	if err == nil && res.UpsertedID != nil {
		if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
			u.ID = oid.Hex()
			return u, true, nil
		}
	}

	existing, err := r.GetByEmail(ctx, u.Email)
	if err != nil {
		return user.User{}, false, err
	}

	return existing, false, nil
}

func (r *UsersRepo) findOneAndUpdate(ctx context.Context, op string, filter, update bson.M) (user.User, error) {
	var d userDoc

	err := r.observe(op, func() error {
		return r.coll.FindOneAndUpdate(ctx, filter, update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&d)
	})

	if err != nil {
		return user.User{}, err
	}

	return d.toDomain(), nil
}

func (r *UsersRepo) updateByID(ctx context.Context, op, id string, set bson.M) (user.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	u, err := r.findOneAndUpdate(ctx, op, bson.M{"_id": oid}, bson.M{"$set": set})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, user.ErrNotFound
	}

	return u, err
}

func (r *UsersRepo) SetVerified(ctx context.Context, id string, verified bool) (user.User, error) {
	return r.updateByID(ctx, "users.set_verified", id, bson.M{"isVerified": verified})
}

func (r *UsersRepo) SetRole(ctx context.Context, id, role string) (user.User, error) {
	return r.updateByID(ctx, "users.set_role", id, bson.M{"role": role})
}

func (r *UsersRepo) PromoteToHR(ctx context.Context, id string) (user.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	u, err := r.findOneAndUpdate(ctx, "users.promote_hr",
		bson.M{"_id": oid, "role": bson.M{"$in": bson.A{user.RoleEmployee, user.RoleHR}}},
		bson.M{"$set": bson.M{"role": user.RoleHR}},
	)

	if err == nil {
		return u, nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, err
	}

	var n int64

	err = r.observe("users.exists", func() error {
		var e error
		n, e = r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
		return e
	})

	if err != nil {
		return user.User{}, err
	}

	if n > 0 {
		return user.User{}, user.ErrRoleTransition
	}

	return user.User{}, user.ErrNotFound
}

func (r *UsersRepo) Fire(ctx context.Context, id string) (user.User, error) {
	return r.updateByID(ctx, "users.fire", id, bson.M{"isFired": true})
}

func (r *UsersRepo) RaiseSalary(ctx context.Context, id string, salary float64) (user.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	u, err := r.findOneAndUpdate(ctx, "users.raise_salary",
		bson.M{"_id": oid, "salary": bson.M{"$lt": salary}},
		bson.M{"$set": bson.M{"salary": salary}},
	)

	if err == nil {
		return u, nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, err
	}

	var n int64

	err = r.observe("users.exists", func() error {
		var e error
		n, e = r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
		return e
	})

	if err != nil {
		return user.User{}, err
	}

	if n > 0 {
		return user.User{}, user.ErrSalaryNotIncreased
	}

	return user.User{}, user.ErrNotFound
}
