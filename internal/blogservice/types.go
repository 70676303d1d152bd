package blogservice

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sushihentaime/globalaffair/internal/userservice"
)

const (
	blogsCollection    = "blogs"
	commentsCollection = "comments"
)

type Blog struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Title string             `bson:"title" json:"title"`
	// Body is stored in Markdown format.
	Body          string             `bson:"body" json:"body"`
	CoverImageURL string             `bson:"coverImageURL" json:"cover_image_url"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"created_by"`
	Creator       *userservice.User  `bson:"-" json:"creator,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updated_at"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Content   string             `bson:"content" json:"content"`
	BlogID    primitive.ObjectID `bson:"blogId" json:"blog_id"`
	CreatedBy primitive.ObjectID `bson:"createdBy" json:"created_by"`
	Creator   *userservice.User  `bson:"-" json:"creator,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

// BlogDetail is a blog with its creator and comments resolved.
type BlogDetail struct {
	Blog     *Blog     `json:"blog"`
	Comments []Comment `json:"comments"`
}

// UserLookup resolves creator references. Ids naming no user are left out of the result.
type UserLookup interface {
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*userservice.User, error)
}

type BlogModel struct {
	blogs    *mongo.Collection
	comments *mongo.Collection
}

type BlogService struct {
	m     *BlogModel
	users UserLookup
}
