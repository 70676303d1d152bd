package blogservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sushihentaime/globalaffair/internal/common"
	"github.com/sushihentaime/globalaffair/internal/userservice"
)

// stubUsers resolves creators from memory.
type stubUsers map[primitive.ObjectID]*userservice.User

func (s stubUsers) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*userservice.User, error) {
	users := make(map[primitive.ObjectID]*userservice.User)
	for _, id := range ids {
		if u, ok := s[id]; ok {
			users[id] = u
		}
	}
	return users, nil
}

func strptr(s string) *string {
	return &s
}

func setupTestEnvironment(t *testing.T) (*BlogService, *mongo.Database, func() error, *userservice.User) {
	db := common.TestDB("file://../../migrations", t)

	user := &userservice.User{ID: primitive.NewObjectID(), FullName: "Ada Lovelace"}
	users := stubUsers{user.ID: user}

	cleanup := func() error {
		ctx := context.Background()
		if _, err := db.Collection(blogsCollection).DeleteMany(ctx, bson.M{}); err != nil {
			return err
		}
		_, err := db.Collection(commentsCollection).DeleteMany(ctx, bson.M{})
		return err
	}

	return NewBlogService(db, users), db, cleanup, user
}

func createRandomBlog(t *testing.T, s *BlogService, userID primitive.ObjectID) *Blog {
	t.Helper()

	blog, err := s.CreateBlog(context.Background(), &CreateBlogRequest{
		Title:         "Test Blog",
		Body:          "This is a test blog.",
		CoverImageURL: "/uploads/1700000000000-cover.png",
		CreatedBy:     userID,
	})
	require.NoError(t, err)

	return blog
}

func TestCreateBlog(t *testing.T) {
	s, db, cleanup, user := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		blog        *CreateBlogRequest
		expectedErr error
	}{
		{
			name: "valid blog",
			blog: &CreateBlogRequest{
				Title:         "T blog",
				Body:          "B <script>alert(1)</script>",
				CoverImageURL: "/uploads/1700000000000-cover.png",
				CreatedBy:     user.ID,
			},
		},
		{
			name: "empty title",
			blog: &CreateBlogRequest{
				Title:         "",
				Body:          "This is a test blog.",
				CoverImageURL: "/uploads/1700000000000-cover.png",
				CreatedBy:     user.ID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
		{
			name: "missing cover image",
			blog: &CreateBlogRequest{
				Title:     "Test Blog",
				Body:      "This is a test blog.",
				CreatedBy: user.ID,
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"coverImage": "must be provided"}},
		},
		{
			name: "missing creator",
			blog: &CreateBlogRequest{
				Title:         "Test Blog",
				Body:          "This is a test blog.",
				CoverImageURL: "/uploads/1700000000000-cover.png",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"createdBy": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(func() {
				assert.NoError(t, cleanup())
			})

			ctx := context.Background()

			blog, err := s.CreateBlog(ctx, tc.blog)
			assert.Equal(t, tc.expectedErr, err)

			count, cerr := db.Collection(blogsCollection).CountDocuments(ctx, bson.M{})
			require.NoError(t, cerr)

			if tc.expectedErr != nil {
				assert.Nil(t, blog)
				assert.Equal(t, int64(0), count)
				return
			}

			assert.Equal(t, int64(1), count)

			got, err := s.GetBlogByID(ctx, blog.ID.Hex())
			require.NoError(t, err)
			assert.Equal(t, blog, got)
			assert.Equal(t, "B ", got.Body)
			assert.Equal(t, user.ID, got.CreatedBy)
			assert.Equal(t, tc.blog.CoverImageURL, got.CoverImageURL)
		})
	}
}

func TestCreateBlogStoredAttributes(t *testing.T) {
	s, _, cleanup, user := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	testCases := []struct {
		name      string
		title     string
		body      string
		wantTitle string
		wantBody  string
	}{
		{
			name:      "clean input is kept as submitted",
			title:     "Plain title",
			body:      "# Heading\n\nSome *markdown*.",
			wantTitle: "Plain title",
			wantBody:  "# Heading\n\nSome *markdown*.",
		},
		{
			name:      "crlf body and padded title",
			title:     "  Padded title ",
			body:      "line one\r\nline two\r\n",
			wantTitle: "Padded title",
			wantBody:  "line one\nline two\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blog, err := s.CreateBlog(context.Background(), &CreateBlogRequest{
				Title:         tc.title,
				Body:          tc.body,
				CoverImageURL: "/uploads/1700000000000-cover.png",
				CreatedBy:     user.ID,
			})
			require.NoError(t, err)

			got, err := s.GetBlogByID(context.Background(), blog.ID.Hex())
			require.NoError(t, err)
			assert.Equal(t, tc.wantTitle, got.Title)
			assert.Equal(t, tc.wantBody, got.Body)
			assert.Equal(t, "/uploads/1700000000000-cover.png", got.CoverImageURL)
			assert.Equal(t, user.ID, got.CreatedBy)
		})
	}
}

func TestGetBlogByID(t *testing.T) {
	s, _, cleanup, user := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	blog := createRandomBlog(t, s, user.ID)

	testCases := []struct {
		name        string
		id          string
		expectedErr error
	}{
		{name: "valid ID", id: blog.ID.Hex()},
		{name: "unknown ID", id: primitive.NewObjectID().Hex(), expectedErr: common.ErrRecordNotFound},
		{name: "malformed ID", id: "999", expectedErr: common.ErrInvalidID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.GetBlogByID(context.Background(), tc.id)
			if tc.expectedErr != nil {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, blog.Title, got.Title)
		})
	}
}

func TestUpdateBlog(t *testing.T) {
	s, _, cleanup, user := setupTestEnvironment(t)

	testCases := []struct {
		name           string
		req            *UpdateBlogRequest
		expectedResult *Blog
		expectedErr    error
	}{
		{
			name: "title only",
			req:  &UpdateBlogRequest{Title: strptr("Updated Blog")},
			expectedResult: &Blog{
				Title:         "Updated Blog",
				Body:          "This is a test blog.",
				CoverImageURL: "/uploads/1700000000000-cover.png",
			},
		},
		{
			name: "body and cover",
			req:  &UpdateBlogRequest{Body: strptr("New body"), CoverImageURL: strptr("/uploads/1700000000001-new.png")},
			expectedResult: &Blog{
				Title:         "Test Blog",
				Body:          "New body",
				CoverImageURL: "/uploads/1700000000001-new.png",
			},
		},
		{
			name: "nothing supplied",
			req:  &UpdateBlogRequest{},
			expectedResult: &Blog{
				Title:         "Test Blog",
				Body:          "This is a test blog.",
				CoverImageURL: "/uploads/1700000000000-cover.png",
			},
		},
		{
			name:        "blank title",
			req:         &UpdateBlogRequest{Title: strptr("  ")},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(func() {
				assert.NoError(t, cleanup())
			})

			ctx := context.Background()
			blog := createRandomBlog(t, s, user.ID)

			got, err := s.UpdateBlog(ctx, blog.ID.Hex(), tc.req)
			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedResult.Title, got.Title)
			assert.Equal(t, tc.expectedResult.Body, got.Body)
			assert.Equal(t, tc.expectedResult.CoverImageURL, got.CoverImageURL)
			assert.Equal(t, blog.CreatedBy, got.CreatedBy)
			assert.Equal(t, blog.CreatedAt, got.CreatedAt)
		})
	}

	t.Run("unknown blog", func(t *testing.T) {
		_, err := s.UpdateBlog(context.Background(), primitive.NewObjectID().Hex(), &UpdateBlogRequest{Title: strptr("Updated Blog")})
		assert.ErrorIs(t, err, common.ErrRecordNotFound)
	})
}

func TestDeleteBlog(t *testing.T) {
	s, _, cleanup, user := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	ctx := context.Background()
	blog := createRandomBlog(t, s, user.ID)

	assert.NoError(t, s.DeleteBlog(ctx, blog.ID.Hex()))
	assert.NoError(t, s.DeleteBlog(ctx, blog.ID.Hex()))

	_, err := s.GetBlogByID(ctx, blog.ID.Hex())
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	assert.ErrorIs(t, s.DeleteBlog(ctx, "bad"), common.ErrInvalidID)
}

func TestAddCommentAndDetail(t *testing.T) {
	s, _, cleanup, user := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	ctx := context.Background()
	first := createRandomBlog(t, s, user.ID)
	second := createRandomBlog(t, s, user.ID)

	for _, content := range []string{"first!", "second"} {
		_, err := s.AddComment(ctx, &CreateCommentRequest{Content: content, BlogID: first.ID.Hex(), CreatedBy: user.ID})
		require.NoError(t, err)
	}

	_, err := s.AddComment(ctx, &CreateCommentRequest{Content: "orphan", BlogID: primitive.NewObjectID().Hex(), CreatedBy: user.ID})
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	_, err = s.AddComment(ctx, &CreateCommentRequest{Content: "   ", BlogID: first.ID.Hex(), CreatedBy: user.ID})
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"content": "must be provided"}}, err)

	detail, err := s.GetBlogDetail(ctx, first.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, detail.Blog.Creator)
	assert.Equal(t, "Ada Lovelace", detail.Blog.Creator.FullName)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "first!", detail.Comments[0].Content)
	assert.Equal(t, "second", detail.Comments[1].Content)
	for _, c := range detail.Comments {
		assert.Equal(t, first.ID, c.BlogID)
		assert.Equal(t, user, c.Creator)
	}

	other, err := s.GetBlogDetail(ctx, second.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, other.Comments)

	_, err = s.GetBlogDetail(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}
