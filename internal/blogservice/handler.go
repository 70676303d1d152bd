package blogservice

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sushihentaime/globalaffair/internal/common"
)

func NewBlogService(db *mongo.Database, users UserLookup) *BlogService {
	return &BlogService{m: newBlogModel(db), users: users}
}

type CreateBlogRequest struct {
	Title         string
	Body          string
	CoverImageURL string
	CreatedBy     primitive.ObjectID
}

// CreateBlog creates a new blog post. The creator and the cover image must be provided.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	title := strings.TrimSpace(req.Title)

	v := common.NewValidator()
	validateTitle(v, title)
	validateBody(v, req.Body)
	validateCoverImageURL(v, req.CoverImageURL)
	validateObjectID(v, req.CreatedBy, "createdBy")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := &Blog{
		Title:         title,
		Body:          sanitizeMarkdown(req.Body),
		CoverImageURL: req.CoverImageURL,
		CreatedBy:     req.CreatedBy,
	}

	err := s.m.insertBlog(ctx, blog)
	if err != nil {
		return nil, err
	}

	return blog, nil
}

// GetBlogs returns every blog post, newest first.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	return s.m.getBlogs(ctx, bson.M{})
}

// GetBlogByID returns a blog post by its ID without resolving references.
func (s *BlogService) GetBlogByID(ctx context.Context, id string) (*Blog, error) {
	oid, err := common.ParseID(id)
	if err != nil {
		return nil, err
	}

	return s.m.getBlogByID(ctx, oid)
}

// GetBlogDetail returns a blog post with its creator, its comments and their creators.
func (s *BlogService) GetBlogDetail(ctx context.Context, id string) (*BlogDetail, error) {
	oid, err := common.ParseID(id)
	if err != nil {
		return nil, err
	}

	blog, err := s.m.getBlogByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	comments, err := s.m.getCommentsByBlogID(ctx, oid)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(comments)+1)
	ids = append(ids, blog.CreatedBy)
	for _, c := range comments {
		ids = append(ids, c.CreatedBy)
	}

	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	blog.Creator = users[blog.CreatedBy]
	for i := range comments {
		comments[i].Creator = users[comments[i].CreatedBy]
	}

	return &BlogDetail{Blog: blog, Comments: comments}, nil
}

// UpdateBlogRequest holds the fields to change. Nil fields are left untouched.
type UpdateBlogRequest struct {
	Title         *string
	Body          *string
	CoverImageURL *string
}

// UpdateBlog applies a partial update and returns the blog as stored afterwards.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, req *UpdateBlogRequest) (*Blog, error) {
	oid, err := common.ParseID(id)
	if err != nil {
		return nil, err
	}

	v := common.NewValidator()
	fields := bson.M{}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		validateTitle(v, title)
		fields["title"] = title
	}

	if req.Body != nil {
		validateBody(v, *req.Body)
		fields["body"] = sanitizeMarkdown(*req.Body)
	}

	if req.CoverImageURL != nil {
		validateCoverImageURL(v, *req.CoverImageURL)
		fields["coverImageURL"] = *req.CoverImageURL
	}

	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if len(fields) == 0 {
		return s.m.getBlogByID(ctx, oid)
	}

	return s.m.updateBlog(ctx, oid, fields)
}

// DeleteBlog deletes a blog post. Deleting a blog that does not exist is not an error.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	oid, err := common.ParseID(id)
	if err != nil {
		return err
	}

	_, err = s.m.deleteBlog(ctx, oid)
	return err
}

type CreateCommentRequest struct {
	Content   string
	BlogID    string
	CreatedBy primitive.ObjectID
}

// AddComment adds a comment to an existing blog post.
func (s *BlogService) AddComment(ctx context.Context, req *CreateCommentRequest) (*Comment, error) {
	blogID, err := common.ParseID(req.BlogID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)

	v := common.NewValidator()
	validateContent(v, content)
	validateObjectID(v, req.CreatedBy, "createdBy")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	// there is no foreign key to lean on, so the blog is looked up first
	if _, err := s.m.getBlogByID(ctx, blogID); err != nil {
		return nil, err
	}

	comment := &Comment{
		Content:   content,
		BlogID:    blogID,
		CreatedBy: req.CreatedBy,
	}

	err = s.m.insertComment(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}
