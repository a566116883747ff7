// Package mongo stores every collection in one MongoDB database.
package mongo

import (
	"context"
	"fmt"

	"github.com/geocoder89/staffhub/internal/observability"
	"github.com/geocoder89/staffhub/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func NewStore(client *mongo.Client, dbName string, prom *observability.Prom) *repo.Store {
	db := client.Database(dbName)

	return repo.NewStore(
		NewUsersRepo(db, prom),
		NewTasksRepo(db, prom),
		NewPayrollRepo(db, prom),
		NewPaymentsRepo(db, prom),
		NewMessagesRepo(db, prom),
		func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
		client.Disconnect,
	)
}

// EnsureIndexes creates the unique keys the repositories rely on for
// idempotent signup, payroll and payment writes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string]mongo.IndexModel{
		UsersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("users_email_uniq"),
		},
		PayrollCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "month", Value: 1}, {Key: "year", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("payroll_email_month_year_uniq"),
		},
		PaymentsCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "year", Value: 1}, {Key: "month", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("payments_email_year_month_uniq"),
		},
		TasksCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("tasks_email_idx"),
		},
	}

	for coll, model := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}

	return nil
}
