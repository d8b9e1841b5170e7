package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hospitalhq/records-system/internal/core/domain"
)

const (
	usersCollection    = "users"
	countersCollection = "counters"
)

// UserRepository persists user identity records in MongoDB. Login names are
// unique via an index; numeric ids come from a counters document so role
// foreign keys and token subjects stay numeric.
type UserRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		coll:     db.Collection(usersCollection),
		counters: db.Collection(countersCollection),
	}
}

// EnsureIndexes creates the unique index on the login name. Call once at
// startup.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	return nil
}

type mongoUser struct {
	ID           int64      `bson:"_id"`
	Name         string     `bson:"name"`
	FullName     string     `bson:"full_name,omitempty"`
	Email        string     `bson:"email,omitempty"`
	Phone        string     `bson:"phone,omitempty"`
	City         string     `bson:"city,omitempty"`
	Gender       string     `bson:"gender,omitempty"`
	DateOfBirth  *time.Time `bson:"date_of_birth,omitempty"`
	PasswordHash string     `bson:"password_hash"`
	RoleID       int        `bson:"role_id"`
	Role         string     `bson:"role"`
	CreatedAt    int64      `bson:"created_at"`
	UpdatedAt    int64      `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := r.nextID(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoUser{
		ID:           id,
		Name:         user.Name,
		FullName:     user.FullName,
		Email:        user.Email,
		Phone:        user.Phone,
		City:         user.City,
		Gender:       user.Gender,
		DateOfBirth:  user.DateOfBirth,
		PasswordHash: user.PasswordHash,
		RoleID:       user.Role.ID(),
		Role:         user.Role.String(),
		CreatedAt:    user.CreatedAt.Unix(),
		UpdatedAt:    user.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = id
	return &created, nil
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password_hash": hash, "updated_at": time.Now().UTC().Unix()}},
	)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// nextID atomically increments and returns the sequence for the given name.
func (r *UserRepository) nextID(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %w", name, err)
	}
	return counter.Seq, nil
}

func (mu *mongoUser) toDomain() *domain.User {
	role, ok := domain.ParseRole(mu.Role)
	if !ok {
		role = domain.RoleClient
	}
	return &domain.User{
		ID:           mu.ID,
		Name:         mu.Name,
		FullName:     mu.FullName,
		Email:        mu.Email,
		Phone:        mu.Phone,
		City:         mu.City,
		Gender:       mu.Gender,
		DateOfBirth:  mu.DateOfBirth,
		PasswordHash: mu.PasswordHash,
		Role:         role,
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
