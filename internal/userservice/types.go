package userservice

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sushihentaime/globalaffair/internal/common"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"

	DefaultProfileImageURL = "/static/images/default.png"

	usersCollection = "users"
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *DBModel
	c      *common.Cache
	tokens *TokenManager
}

type DBModel struct {
	users *mongo.Collection
}

type User struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	FullName        string             `bson:"fullName" json:"full_name"`
	Email           string             `bson:"email" json:"email"`
	Password        Password           `bson:"password" json:"-"`
	ProfileImageURL string             `bson:"profileImageURL" json:"profile_image_url"`
	Role            Role               `bson:"role" json:"role"`
	CreatedAt       time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updated_at"`
}

// Password keeps the bcrypt hash, which carries its own salt.
type Password struct {
	Plain string `bson:"-" json:"-"`
	Hash  []byte `bson:"hash" json:"-"`
}

// Token is a signed identity credential handed to the browser in the token cookie.
type Token struct {
	Plain  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}
