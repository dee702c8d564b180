package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuskit/provisioning-system/internal/core/domain"
	"github.com/campuskit/provisioning-system/internal/core/ports"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository and ports.UserStore on a
// MongoDB users collection. Batch imports run inside a session transaction;
// uniqueness is enforced by unique indexes on the lowercased username and
// email fields.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Username      string             `bson:"username"`
	UsernameLower string             `bson:"username_lower"`
	FullName      string             `bson:"full_name"`
	Email         string             `bson:"email"`
	EmailLower    string             `bson:"email_lower"`
	PasswordHash  string             `bson:"password_hash"`
	Role          string             `bson:"role"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

// RunBatch executes fn inside one session transaction. The transaction is
// committed only when fn asks for commit with a nil error; everything else
// aborts, leaving the users collection untouched.
func (r *UserRepository) RunBatch(ctx context.Context, fn func(ctx context.Context, tx ports.BatchTx) (bool, error)) error {
	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	return mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(); err != nil {
			return fmt.Errorf("start transaction: %w", err)
		}

		commit, err := fn(sc, r)
		if err != nil {
			_ = session.AbortTransaction(sc)
			return err
		}
		if !commit {
			if err := session.AbortTransaction(sc); err != nil {
				return fmt.Errorf("abort transaction: %w", err)
			}
			return nil
		}
		if err := session.CommitTransaction(sc); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}

// LoadAllUsers returns the identity snapshot of every persisted user. Called
// with a session context it reads inside the batch transaction.
func (r *UserRepository) LoadAllUsers(ctx context.Context) ([]domain.ExistingUserRef, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	defer cursor.Close(ctx)

	var refs []domain.ExistingUserRef
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		refs = append(refs, domain.ExistingUserRef{
			ID:       mu.ID.Hex(),
			Username: mu.Username,
			Email:    mu.Email,
			FullName: mu.FullName,
			Role:     mu.Role,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return refs, nil
}

// InsertUser stages a new user inside the current transaction. Duplicate key
// errors surface as domain.ErrUserExists.
func (r *UserRepository) InsertUser(ctx context.Context, user *domain.User) (string, error) {
	doc := mongoUser{
		Username:      user.Username,
		UsernameLower: strings.ToLower(user.Username),
		FullName:      user.FullName,
		Email:         user.Email,
		EmailLower:    strings.ToLower(user.Email),
		PasswordHash:  user.PasswordHash,
		Role:          user.Role,
		CreatedAt:     user.CreatedAt.Unix(),
		UpdatedAt:     user.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrUserExists
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var mu mongoUser
	filter := bson.M{"username_lower": strings.ToLower(username)}
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "username_lower", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *mu.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// EnsureIndexes creates the unique indexes that back duplicate detection at
// the storage layer.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username_lower", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email_lower", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		FullName:     mu.FullName,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
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
