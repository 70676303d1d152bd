package blogservice

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

func newBlogModel(db *mongo.Database) *BlogModel {
	return &BlogModel{
		blogs:    db.Collection(blogsCollection),
		comments: db.Collection(commentsCollection),
	}
}

// now is truncated to what the database stores so that written and read values compare equal.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (m *BlogModel) insertBlog(ctx context.Context, blog *Blog) error {
	t := now()

	blog.ID = primitive.NewObjectID()
	blog.CreatedAt = t
	blog.UpdatedAt = t

	_, err := m.blogs.InsertOne(ctx, blog)
	return err
}

// getBlogs returns the blogs matching filter, newest first.
func (m *BlogModel) getBlogs(ctx context.Context, filter bson.M) ([]Blog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := m.blogs.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	blogs := []Blog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) getBlogByID(ctx context.Context, id primitive.ObjectID) (*Blog, error) {
	var blog Blog

	err := m.blogs.FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

// updateBlog sets only the given fields and returns the document as it is after the update.
func (m *BlogModel) updateBlog(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Blog, error) {
	fields["updatedAt"] = now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var blog Blog
	err := m.blogs.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&blog)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

// deleteBlog removes the blog if it exists. Comments are left alone: they only reference the blog.
func (m *BlogModel) deleteBlog(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := m.blogs.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}

	return res.DeletedCount == 1, nil
}

func (m *BlogModel) insertComment(ctx context.Context, comment *Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = now()

	_, err := m.comments.InsertOne(ctx, comment)
	return err
}

// getCommentsByBlogID returns the comments of one blog, oldest first.
func (m *BlogModel) getCommentsByBlogID(ctx context.Context, blogID primitive.ObjectID) ([]Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := m.comments.Find(ctx, bson.M{"blogId": blogID}, opts)
	if err != nil {
		return nil, err
	}

	comments := []Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}

	return comments, nil
}
