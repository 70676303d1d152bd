package userservice

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sushihentaime/globalaffair/internal/common"
)

var (
	ErrDuplicateEmail = errors.New("duplicate email")
)

func newUserModel(db *mongo.Database) *DBModel {
	return &DBModel{users: db.Collection(usersCollection)}
}

// publicProjection leaves the password out of documents that are shared with other requests.
var publicProjection = bson.M{"password": 0}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	now := time.Now().UTC().Truncate(time.Millisecond)

	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := m.users.InsertOne(ctx, u)
	if err != nil {
		switch {
		case mongo.IsDuplicateKeyError(err):
			return ErrDuplicateEmail
		default:
			return err
		}
	}

	return nil
}

func (m *DBModel) getUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User

	err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getUsersByIDs returns the users that exist among ids. Unknown ids are simply absent.
func (m *DBModel) getUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]User, error) {
	opts := options.Find().SetProjection(publicProjection)

	cursor, err := m.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}
