package mongo

import (
	"context"
	"errors"

	"github.com/okamel/cvbank/internal/models"
	"github.com/okamel/cvbank/internal/repositories"
	"github.com/okamel/cvbank/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type cvRepo struct {
	col *mongo.Collection
}

func NewCVRepo(db *mongo.Database) repositories.CVRepository {
	return &cvRepo{col: db.Collection("cvs")}
}

func (r *cvRepo) list(ctx context.Context, filter bson.M, limit int) ([]models.CV, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "upload_date", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []models.CV{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *cvRepo) ListAll(ctx context.Context, limit int) ([]models.CV, error) {
	return r.list(ctx, bson.M{}, limit)
}

func (r *cvRepo) ListByNationality(ctx context.Context, nationality string, limit int) ([]models.CV, error) {
	return r.list(ctx, bson.M{"nationality": nationality}, limit)
}

func (r *cvRepo) GetByID(ctx context.Context, id string) (*models.CV, error) {
	var cv models.CV
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&cv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &cv, err
}

func (r *cvRepo) Create(ctx context.Context, cv *models.CV) error {
	_, err := r.col.InsertOne(ctx, cv)
	return err
}

func (r *cvRepo) Update(ctx context.Context, id string, upd models.CVUpdate) (*models.CV, error) {
	vals := upd.Changes()
	if len(vals) == 0 {
		return r.GetByID(ctx, id)
	}

	set := bson.M{}
	for k, v := range vals {
		set[k] = v
	}

	var cv models.CV
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &cv, err
}

func (r *cvRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
