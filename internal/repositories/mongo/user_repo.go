package mongo

import (
	"context"
	"errors"

	"github.com/okamel/cvbank/internal/models"
	"github.com/okamel/cvbank/internal/repositories"
	"github.com/okamel/cvbank/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) repositories.UserRepository {
	return &userRepo{col: db.Collection("users")}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	_, err := r.col.InsertOne(ctx, u)
	return err
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &u, err
}
