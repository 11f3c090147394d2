package blogservice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/blogdocs/internal/common"
	"github.com/sushihentaime/blogdocs/internal/logger"
)

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	args := m.Called(msg, key, exchange)
	return args.Error(0)
}

// failingStore fails every call with err.
type failingStore struct {
	err error
}

func (m *failingStore) Insert(ctx context.Context, blog *Blog) error {
	return m.err
}

func (m *failingStore) FindAll(ctx context.Context) ([]Blog, error) {
	return nil, m.err
}

func (m *failingStore) FindOne(ctx context.Context, blogID string) (*Blog, error) {
	return nil, m.err
}

func (m *failingStore) FindMany(ctx context.Context, field Field, value string) ([]Blog, error) {
	return nil, m.err
}

func (m *failingStore) UpdateByBlogID(ctx context.Context, blogID string, update BlogUpdate) (*UpdateResult, error) {
	return nil, m.err
}

func (m *failingStore) IncrementViews(ctx context.Context, blogID string) (*Blog, error) {
	return nil, m.err
}

func (m *failingStore) DeleteByBlogID(ctx context.Context, blogID string) (*DeleteResult, error) {
	return nil, m.err
}

var fixedNow = time.Date(2024, 7, 1, 12, 30, 0, 123456789, time.UTC)

func setupTestService(t *testing.T) (*BlogService, *MemoryStore, *mockProducer) {
	t.Helper()

	store := NewMemoryStore()
	mb := new(mockProducer)
	mb.On("Publish", mock.Anything, mock.Anything, common.BlogExchange).Return(nil)

	s := NewBlogService(store, mb, logger.NewNop())
	s.now = func() time.Time { return fixedNow }

	return s, store, mb
}

func createRandomBlog(t *testing.T, s *BlogService, author, category string) *Blog {
	t.Helper()

	blog, err := s.CreateBlog(context.Background(), &CreateBlogRequest{
		Title:       "Test Blog",
		Description: "d",
		BodyHTML:    "<p>This is a test blog.</p>",
		Category:    category,
		FullName:    author,
		Tags:        "a,b",
	})
	require.NoError(t, err)

	return blog
}

func TestCreateBlog(t *testing.T) {
	s, store, mb := setupTestService(t)

	testCases := []struct {
		name        string
		req         *CreateBlogRequest
		expectedErr error
	}{
		{
			name: "valid blog",
			req: &CreateBlogRequest{
				Title:       "A",
				Description: "d",
				BodyHTML:    "<p>x</p>",
				Category:    "tech",
				FullName:    "Jo",
				Tags:        "a,b,c",
			},
		},
		{
			name: "without optional fields",
			req: &CreateBlogRequest{
				Title:    "A",
				BodyHTML: "<p>x</p>",
			},
		},
		{
			name: "empty title",
			req: &CreateBlogRequest{
				BodyHTML: "<p>x</p>",
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "is missing"}},
		},
		{
			name:        "empty body",
			req:         &CreateBlogRequest{},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "is missing", "bodyHtml": "is missing"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blog, err := s.CreateBlog(context.Background(), tc.req)
			assert.Equal(t, tc.expectedErr, err)

			if tc.expectedErr != nil {
				assert.Nil(t, blog)
				return
			}

			require.NotNil(t, blog)
			assert.NotEmpty(t, blog.BlogID)
			assert.Equal(t, int64(0), blog.Views)
			assert.True(t, blog.IsPublished)
			assert.Equal(t, tc.req.FullName, blog.Author)
			assert.Equal(t, fixedNow.Truncate(time.Millisecond), blog.Created)
			assert.Equal(t, blog.Created, blog.LastModified)

			stored, err := store.FindOne(context.Background(), blog.BlogID)
			require.NoError(t, err)
			assert.Equal(t, blog, stored)
		})
	}

	mb.AssertNumberOfCalls(t, "Publish", 2)
	mb.AssertCalled(t, "Publish", mock.Anything, common.BlogCreatedKey, common.BlogExchange)
}

func TestCreateBlogSplitsTags(t *testing.T) {
	s, _, _ := setupTestService(t)

	blog, err := s.CreateBlog(context.Background(), &CreateBlogRequest{Title: "A", BodyHTML: "x", Tags: "a,b,c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, blog.Tags)

	blog, err = s.CreateBlog(context.Background(), &CreateBlogRequest{Title: "A", BodyHTML: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, blog.Tags)
}

func TestCreateBlogUniqueIDs(t *testing.T) {
	s, _, _ := setupTestService(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		blog := createRandomBlog(t, s, "Jo", "tech")
		assert.False(t, seen[blog.BlogID], "duplicate blogId %s", blog.BlogID)
		seen[blog.BlogID] = true
	}
}

func TestCreateBlogEventPayload(t *testing.T) {
	store := NewMemoryStore()
	mb := new(mockProducer)

	var payload []byte
	mb.On("Publish", mock.Anything, common.BlogCreatedKey, common.BlogExchange).
		Run(func(args mock.Arguments) { payload = args.Get(0).([]byte) }).
		Return(nil)

	s := NewBlogService(store, mb, logger.NewNop())
	s.now = func() time.Time { return fixedNow }

	blog := createRandomBlog(t, s, "Jo", "tech")

	var event BlogEvent
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, blog.BlogID, event.BlogID)
	assert.Equal(t, "Test Blog", event.Title)
	assert.Equal(t, "Jo", event.Author)
	assert.Equal(t, "tech", event.Category)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	store := NewMemoryStore()
	mb := new(mockProducer)
	mb.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	s := NewBlogService(store, mb, logger.NewNop())

	blog := createRandomBlog(t, s, "Jo", "tech")
	assert.NotEmpty(t, blog.BlogID)

	res, err := s.DeleteBlog(context.Background(), blog.BlogID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedCount)
}

func TestStoreErrorPassesThrough(t *testing.T) {
	storeErr := errors.New("connection reset")

	store := &failingStore{err: storeErr}
	mb := new(mockProducer)

	s := NewBlogService(store, mb, logger.NewNop())
	ctx := context.Background()
	title := "B"

	testCases := []struct {
		name string
		call func() error
	}{
		{"create", func() error {
			_, err := s.CreateBlog(ctx, &CreateBlogRequest{Title: "A", BodyHTML: "<p>a</p>"})
			return err
		}},
		{"get all", func() error { _, err := s.GetAllBlogs(ctx); return err }},
		{"view by id", func() error { _, err := s.ViewByBlogID(ctx, "x"); return err }},
		{"view by author", func() error { _, err := s.ViewByAuthor(ctx, "Jo"); return err }},
		{"edit", func() error { _, err := s.EditBlog(ctx, "x", &EditBlogRequest{Title: &title}); return err }},
		{"increase view", func() error { _, err := s.IncreaseBlogView(ctx, "x"); return err }},
		{"delete", func() error { _, err := s.DeleteBlog(ctx, "x"); return err }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			assert.ErrorIs(t, err, storeErr)
			assert.NotErrorIs(t, err, ErrRecordNotFound)
		})
	}

	mb.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestNilProducer(t *testing.T) {
	s := NewBlogService(NewMemoryStore(), nil, logger.NewNop())

	blog := createRandomBlog(t, s, "Jo", "tech")
	_, err := s.DeleteBlog(context.Background(), blog.BlogID)
	assert.NoError(t, err)
}

func TestGetAllBlogs(t *testing.T) {
	s, _, _ := setupTestService(t)

	blogs, err := s.GetAllBlogs(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, blogs)
	assert.Len(t, blogs, 0)

	createRandomBlog(t, s, "Jo", "tech")
	createRandomBlog(t, s, "Al", "food")

	blogs, err = s.GetAllBlogs(context.Background())
	require.NoError(t, err)
	assert.Len(t, blogs, 2)
}

func TestViewByBlogID(t *testing.T) {
	s, _, _ := setupTestService(t)
	blog := createRandomBlog(t, s, "Jo", "tech")

	testCases := []struct {
		name        string
		blogID      string
		expectedErr error
	}{
		{
			name:   "existing blog",
			blogID: blog.BlogID,
		},
		{
			name:        "unknown blog",
			blogID:      "does-not-exist",
			expectedErr: ErrRecordNotFound,
		},
		{
			name:        "empty blogId",
			blogID:      "",
			expectedErr: common.ValidationError{Errors: map[string]string{"blogId": "is missing"}},
		},
		{
			name:        "blank blogId",
			blogID:      "   ",
			expectedErr: common.ValidationError{Errors: map[string]string{"blogId": "is missing"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ViewByBlogID(context.Background(), tc.blogID)
			if tc.expectedErr != nil {
				assert.Nil(t, got)
				assert.Equal(t, tc.expectedErr, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, blog, got)
			}
		})
	}
}

func TestViewByAuthorAndCategory(t *testing.T) {
	s, _, _ := setupTestService(t)
	createRandomBlog(t, s, "Jo", "tech")
	createRandomBlog(t, s, "Jo", "food")
	createRandomBlog(t, s, "Al", "tech")

	blogs, err := s.ViewByAuthor(context.Background(), "Jo")
	require.NoError(t, err)
	assert.Len(t, blogs, 2)
	for _, b := range blogs {
		assert.Equal(t, "Jo", b.Author)
	}

	blogs, err = s.ViewByCategory(context.Background(), "tech")
	require.NoError(t, err)
	assert.Len(t, blogs, 2)
	for _, b := range blogs {
		assert.Equal(t, "tech", b.Category)
	}

	_, err = s.ViewByAuthor(context.Background(), "Nobody")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.ViewByCategory(context.Background(), "nothing")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.ViewByAuthor(context.Background(), "")
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"author": "is missing"}}, err)

	_, err = s.ViewByCategory(context.Background(), " ")
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"category": "is missing"}}, err)
}

func TestEditBlog(t *testing.T) {
	s, store, _ := setupTestService(t)
	blog := createRandomBlog(t, s, "Jo", "tech")

	later := fixedNow.Add(time.Hour)
	s.now = func() time.Time { return later }

	title := "Updated"
	tags := "x, y"

	testCases := []struct {
		name        string
		blogID      string
		req         *EditBlogRequest
		expected    *UpdateResult
		expectedErr error
	}{
		{
			name:     "existing blog",
			blogID:   blog.BlogID,
			req:      &EditBlogRequest{Title: &title, Tags: &tags},
			expected: &UpdateResult{MatchedCount: 1, ModifiedCount: 1},
		},
		{
			name:        "unknown blog",
			blogID:      "does-not-exist",
			req:         &EditBlogRequest{Title: &title},
			expectedErr: ErrRecordNotFound,
		},
		{
			name:        "empty blogId",
			blogID:      "",
			req:         &EditBlogRequest{Title: &title},
			expectedErr: common.ValidationError{Errors: map[string]string{"blogId": "is missing"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := s.EditBlog(context.Background(), tc.blogID, tc.req)
			assert.Equal(t, tc.expectedErr, err)
			assert.Equal(t, tc.expected, res)
		})
	}

	stored, err := store.FindOne(context.Background(), blog.BlogID)
	require.NoError(t, err)
	assert.Equal(t, "Updated", stored.Title)
	assert.Equal(t, []string{"x", "y"}, stored.Tags)
	assert.Equal(t, blog.BodyHTML, stored.BodyHTML)
	assert.Equal(t, blog.BlogID, stored.BlogID)
	assert.Equal(t, blog.Created, stored.Created)
	assert.Equal(t, later.Truncate(time.Millisecond), stored.LastModified)
}

func TestIncreaseBlogView(t *testing.T) {
	s, _, _ := setupTestService(t)
	blog := createRandomBlog(t, s, "Jo", "tech")

	for i := 1; i <= 3; i++ {
		got, err := s.IncreaseBlogView(context.Background(), blog.BlogID)
		require.NoError(t, err)
		assert.Equal(t, int64(i), got.Views)
	}

	_, err := s.IncreaseBlogView(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.IncreaseBlogView(context.Background(), "")
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"blogId": "is missing"}}, err)
}

func TestDeleteBlog(t *testing.T) {
	s, _, mb := setupTestService(t)
	blog := createRandomBlog(t, s, "Jo", "tech")

	res, err := s.DeleteBlog(context.Background(), blog.BlogID)
	require.NoError(t, err)
	assert.Equal(t, &DeleteResult{DeletedCount: 1}, res)
	mb.AssertCalled(t, "Publish", mock.Anything, common.BlogDeletedKey, common.BlogExchange)

	for i := 0; i < 2; i++ {
		_, err = s.ViewByBlogID(context.Background(), blog.BlogID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	}

	_, err = s.DeleteBlog(context.Background(), blog.BlogID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.DeleteBlog(context.Background(), "")
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"blogId": "is missing"}}, err)
}
