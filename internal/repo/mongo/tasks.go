package mongo

import (
	"context"
	"errors"

	"github.com/geocoder89/staffhub/internal/domain/task"
	"github.com/geocoder89/staffhub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TasksRepo struct {
	base
}

func NewTasksRepo(db *mongo.Database, prom *observability.Prom) *TasksRepo {
	return &TasksRepo{base{coll: db.Collection(TasksCollection), prom: prom}}
}

func (r *TasksRepo) find(ctx context.Context, op string, filter bson.M) ([]task.Task, error) {
	var out []task.Task

	err := r.observe(op, func() error {
		cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
		if err != nil {
			return err
		}

		out, err = decodeAll(ctx, cur, taskDoc.toDomain)
		return err
	})

	return out, err
}

func (r *TasksRepo) List(ctx context.Context) ([]task.Task, error) {
	return r.find(ctx, "tasks.list", bson.M{})
}

func (r *TasksRepo) ListByEmail(ctx context.Context, email string) ([]task.Task, error) {
	return r.find(ctx, "tasks.list_by_email", bson.M{"email": email})
}

func (r *TasksRepo) Progress(ctx context.Context, f task.ProgressFilter) ([]task.Task, error) {
	filter := bson.M{}

	if f.Name != "" {
		filter["name"] = f.Name
	}

	if f.Month != "" {
		filter["month"] = f.Month
	}

	return r.find(ctx, "tasks.progress", filter)
}

func (r *TasksRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	var res *mongo.InsertOneResult

	err := r.observe("tasks.create", func() error {
		var e error
		res, e = r.coll.InsertOne(ctx, taskDocFrom(t))
		return e
	})

	if err != nil {
		return task.Task{}, err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid.Hex()
	}

	return t, nil
}

func (r *TasksRepo) Update(ctx context.Context, id string, req task.UpdateRequest) (task.Task, error) {
	oid, ok := objectID(id)
	if !ok {
		return task.Task{}, task.ErrNotFound
	}

	var d taskDoc

	err := r.observe("tasks.update", func() error {
		return r.coll.FindOneAndUpdate(ctx,
			bson.M{"_id": oid},
			bson.M{"$set": bson.M{"task": req.Task, "hours": req.Hours, "date": req.Date}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&d)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, err
	}

	return d.toDomain(), nil
}

func (r *TasksRepo) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return task.ErrNotFound
	}

	var res *mongo.DeleteResult

	err := r.observe("tasks.delete", func() error {
		var e error
		res, e = r.coll.DeleteOne(ctx, bson.M{"_id": oid})
		return e
	})

	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return task.ErrNotFound
	}

	return nil
}
