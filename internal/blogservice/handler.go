package blogservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogdocs/internal/common"
	"github.com/sushihentaime/blogdocs/internal/logger"
)

// NewBlogService wires a store and an optional event producer. mb may be nil.
func NewBlogService(m Store, mb common.MessageProducer, logger logger.Logger) *BlogService {
	return &BlogService{
		m:      m,
		mb:     mb,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

type CreateBlogRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	BodyHTML    string `json:"bodyHtml" validate:"required"`
	Category    string `json:"category"`
	FullName    string `json:"fullName"`
	Tags        string `json:"tags"`
}

// EditBlogRequest lists the attributes a client may overwrite. Tags is comma joined like on create.
type EditBlogRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	BodyHTML    *string `json:"bodyHtml"`
	Category    *string `json:"category"`
	Author      *string `json:"author"`
	Tags        *string `json:"tags"`
}

func (s *BlogService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// CreateBlog stores a new published blog with a generated blogId and returns it.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateCreate(v, req)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	now := s.timestamp()
	blog := &Blog{
		BlogID:       s.newID(),
		Title:        req.Title,
		Description:  req.Description,
		BodyHTML:     req.BodyHTML,
		Views:        0,
		IsPublished:  true,
		Category:     req.Category,
		Author:       req.FullName,
		Tags:         splitTags(req.Tags),
		Created:      now,
		LastModified: now,
	}

	if err := s.m.Insert(ctx, blog); err != nil {
		return nil, err
	}

	s.publish(ctx, common.BlogCreatedKey, blog)

	return blog, nil
}

// GetAllBlogs returns every blog. An empty store yields an empty slice, not an error.
func (s *BlogService) GetAllBlogs(ctx context.Context) ([]Blog, error) {
	return s.m.FindAll(ctx)
}

func (s *BlogService) ViewByBlogID(ctx context.Context, blogID string) (*Blog, error) {
	v := common.NewValidator()
	validateBlogID(v, blogID)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.FindOne(ctx, blogID)
}

func (s *BlogService) ViewByAuthor(ctx context.Context, author string) ([]Blog, error) {
	return s.viewBy(ctx, FieldAuthor, author)
}

func (s *BlogService) ViewByCategory(ctx context.Context, category string) ([]Blog, error) {
	return s.viewBy(ctx, FieldCategory, category)
}

// viewBy reports ErrRecordNotFound when nothing matches.
func (s *BlogService) viewBy(ctx context.Context, field Field, value string) ([]Blog, error) {
	v := common.NewValidator()
	validateFilter(v, field, value)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blogs, err := s.m.FindMany(ctx, field, value)
	if err != nil {
		return nil, err
	}

	if len(blogs) == 0 {
		return nil, ErrRecordNotFound
	}

	return blogs, nil
}

// EditBlog overwrites the fields set in req and refreshes lastModified.
func (s *BlogService) EditBlog(ctx context.Context, blogID string, req *EditBlogRequest) (*UpdateResult, error) {
	v := common.NewValidator()
	validateBlogID(v, blogID)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	update := BlogUpdate{
		Title:        req.Title,
		Description:  req.Description,
		BodyHTML:     req.BodyHTML,
		Category:     req.Category,
		Author:       req.Author,
		LastModified: s.timestamp(),
	}
	if req.Tags != nil {
		update.Tags = splitTags(*req.Tags)
	}

	res, err := s.m.UpdateByBlogID(ctx, blogID, update)
	if err != nil {
		return nil, err
	}

	if res.MatchedCount == 0 {
		return nil, ErrRecordNotFound
	}

	return res, nil
}

// IncreaseBlogView adds one view and returns the blog as stored afterwards.
func (s *BlogService) IncreaseBlogView(ctx context.Context, blogID string) (*Blog, error) {
	v := common.NewValidator()
	validateBlogID(v, blogID)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.IncrementViews(ctx, blogID)
}

func (s *BlogService) DeleteBlog(ctx context.Context, blogID string) (*DeleteResult, error) {
	v := common.NewValidator()
	validateBlogID(v, blogID)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	res, err := s.m.DeleteByBlogID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if res.DeletedCount == 0 {
		return nil, ErrRecordNotFound
	}

	s.publish(ctx, common.BlogDeletedKey, &Blog{BlogID: blogID})

	return res, nil
}
