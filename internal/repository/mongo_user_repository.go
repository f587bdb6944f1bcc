package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "profilehub/internal/errors"
	"profilehub/internal/model"
)

const usersCollection = "users"

// userDocument is the stored shape of a user in MongoDB.
type userDocument struct {
	ID                 string    `bson:"_id"`
	Username           string    `bson:"username"`
	Email              string    `bson:"email"`
	City               string    `bson:"city"`
	MobileNumber       string    `bson:"mobile_number"`
	PasswordHash       string    `bson:"password_hash,omitempty"`
	ProfilePicturePath string    `bson:"profile_picture,omitempty"`
	CreatedAt          time.Time `bson:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at"`
}

func toDocument(u *model.User) userDocument {
	return userDocument{
		ID:                 u.ID.String(),
		Username:           u.Username,
		Email:              u.Email,
		City:               u.City,
		MobileNumber:       u.MobileNumber,
		PasswordHash:       u.PasswordHash,
		ProfilePicturePath: u.ProfilePicturePath,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (d userDocument) toModel() (*model.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", d.ID, err)
	}
	return &model.User{
		ID:                 id,
		Username:           d.Username,
		Email:              d.Email,
		City:               d.City,
		MobileNumber:       d.MobileNumber,
		PasswordHash:       d.PasswordHash,
		ProfilePicturePath: d.ProfilePicturePath,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}, nil
}

// MongoUserRepository stores users in a MongoDB collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

var _ UserRepository = (*MongoUserRepository)(nil)

// NewMongoUserRepository builds a repository on the users collection of db.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique indexes that enforce username and email uniqueness.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_username"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	if err := user.Validate(); err != nil {
		return uuid.Nil, err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, toDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return uuid.Nil, fmt.Errorf("%w: %v", apperrors.ErrDuplicateUser, err)
		}
		return uuid.Nil, fmt.Errorf("insert user: %w", err)
	}
	return user.ID, nil
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := r.findOne(ctx, bson.M{"_id": id.String()},
		options.FindOne().SetProjection(bson.M{"password_hash": 0}))
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*model.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel()
}
