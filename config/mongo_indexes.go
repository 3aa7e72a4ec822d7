package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureMongoIndexes() error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}
	db := MongoDatabase()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cvs := db.Collection("cvs")
	_, err := cvs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// newest-first listing
		{
			Keys:    bson.D{{Key: "upload_date", Value: -1}},
			Options: options.Index().SetName("by_upload_date"),
		},
		// nationality tab filter, same ordering
		{
			Keys:    bson.D{{Key: "nationality", Value: 1}, {Key: "upload_date", Value: -1}},
			Options: options.Index().SetName("by_nationality_upload_date"),
		},
	})
	if err != nil {
		return err
	}

	users := db.Collection("users")
	_, err = users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName("uniq_username").
				SetUnique(true),
		},
	})
	return err
}
