package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/enhancify/auth-service/internal/core/domain"
)

const usersCollection = "users"

// userDoc is the persisted shape of an identity record. The field name
// "password" holds the bcrypt hash, never a plaintext password.
type userDoc struct {
	ID       bson.ObjectID `bson:"_id,omitempty"`
	Username string        `bson:"username"`
	Password string        `bson:"password"`
}

// MongoUserRepository implements domain.UserRepository on a MongoDB
// collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new MongoUserRepository over the users
// collection of the given database.
func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique index on username. Registration relies on
// this index to reject concurrent inserts of the same username; it must be
// in place before the service starts handling requests.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

// FindByUsername returns the user matching the given username.
// Returns (nil, nil) when no user is found.
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toUser(), nil
}

// FindByID returns the user with the given store-assigned id.
// Returns (nil, nil) when the id does not resolve; a malformed id is treated
// the same as an unknown one.
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc userDoc
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toUser(), nil
}

// Insert persists a new identity record and returns the generated id.
// A unique-index conflict on username is reported as domain.ErrDuplicateKey.
func (r *MongoUserRepository) Insert(ctx context.Context, username, passwordHash string) (string, error) {
	res, err := r.coll.InsertOne(ctx, userDoc{
		Username: username,
		Password: passwordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("insert user %q: %w", username, domain.ErrDuplicateKey)
		}
		return "", err
	}

	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (d *userDoc) toUser() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.Password,
	}
}
