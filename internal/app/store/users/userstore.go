package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/vantagesoft/vantagehub/internal/app/system/htmlsanitize"
	"github.com/vantagesoft/vantagehub/internal/app/system/normalize"
	"github.com/vantagesoft/vantagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateEmail is returned when attempting to create or update a
	// user with an email that already belongs to another account.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNotFound is returned when the requested user does not exist.
	ErrNotFound = errors.New("user not found")

	errBadRole = errors.New(`role must be "admin"|"business_developer"|"user"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// EnsureIndexes creates the unique email index that backs duplicate
// detection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_users_email"),
	})
	return err
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns every user sorted by name, then id for a stable order.
// The admin panel holds the full internal-user set, so there is no
// pagination on this path.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create inserts a new user after normalizing and validating fields.
// The plaintext password is hashed here; it is never stored.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = htmlsanitize.PlainText(normalize.Name(u.FullName))
	u.Email = normalize.Email(u.Email)
	u.Role = normalize.Role(u.Role)
	if u.AuthMethod == "" {
		u.AuthMethod = "password"
	}

	if !models.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Update holds the writable fields of a user. A nil Password leaves the
// stored hash untouched; a non-nil Password replaces it wholesale.
type Update struct {
	FullName    string
	Email       string
	Role        string
	IsActive    bool
	Permissions *models.PermissionOverrides
	Password    *string
}

// Apply updates a user's fields and bumps updated_at. Returns
// ErrDuplicateEmail if the new email belongs to another account and
// ErrNotFound if the user vanished.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) error {
	if !models.IsValidRole(normalize.Role(upd.Role)) {
		return errBadRole
	}

	set := bson.M{
		"full_name":  htmlsanitize.PlainText(normalize.Name(upd.FullName)),
		"email":      normalize.Email(upd.Email),
		"role":       normalize.Role(upd.Role),
		"is_active":  upd.IsActive,
		"updated_at": time.Now().UTC(),
	}

	update := bson.M{"$set": set}
	if upd.Permissions != nil {
		set["permissions"] = upd.Permissions
	} else {
		update["$unset"] = bson.M{"permissions": ""}
	}

	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		set["password_hash"] = hash
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user by ID. Returns the number of documents deleted
// (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EmailExistsForOther checks if an email already belongs to a user other
// than the given ID.
func (s *Store) EmailExistsForOther(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"email": normalize.Email(email),
		"_id":   bson.M{"$ne": excludeID},
	}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// CountActiveAdmins returns the number of active admin accounts. The
// delete and deactivate guards use this to keep at least one.
func (s *Store) CountActiveAdmins(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"role": models.RoleAdmin, "is_active": true})
}

// VerifyPassword compares a candidate password against the stored hash.
func VerifyPassword(u *models.User, password string) bool {
	if len(u.PasswordHash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}
