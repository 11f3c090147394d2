package blogservice

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/sushihentaime/blogdocs/internal/common"
)

// MemoryStore keeps blogs in process memory. It backs STORE_DRIVER=memory and the HTTP tests.
type MemoryStore struct {
	// mu covers read-modify-write sequences only. Plain reads rely on the cache's own locking.
	mu sync.Mutex
	c  *common.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: common.NewPersistentCache()}
}

func (m *MemoryStore) Insert(ctx context.Context, blog *Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := common.CacheKeyBlog(blog.BlogID)
	if _, found := m.c.Get(key); found {
		return ErrDuplicateBlogID
	}

	m.c.Set(key, cloneBlog(*blog))
	return nil
}

func (m *MemoryStore) FindAll(ctx context.Context) ([]Blog, error) {
	return m.filter(func(Blog) bool { return true }), nil
}

func (m *MemoryStore) FindOne(ctx context.Context, blogID string) (*Blog, error) {
	blog, found := m.get(blogID)
	if !found {
		return nil, ErrRecordNotFound
	}

	return &blog, nil
}

func (m *MemoryStore) FindMany(ctx context.Context, field Field, value string) ([]Blog, error) {
	switch field {
	case FieldAuthor:
		return m.filter(func(b Blog) bool { return b.Author == value }), nil
	case FieldCategory:
		return m.filter(func(b Blog) bool { return b.Category == value }), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidField, field)
	}
}

func (m *MemoryStore) UpdateByBlogID(ctx context.Context, blogID string, update BlogUpdate) (*UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	blog, found := m.get(blogID)
	if !found {
		return &UpdateResult{}, nil
	}

	before := cloneBlog(blog)
	update.applyTo(&blog)
	m.c.Set(common.CacheKeyBlog(blogID), blog)

	res := &UpdateResult{MatchedCount: 1}
	if !sameBlog(before, blog) {
		res.ModifiedCount = 1
	}

	return res, nil
}

func (m *MemoryStore) IncrementViews(ctx context.Context, blogID string) (*Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	blog, found := m.get(blogID)
	if !found {
		return nil, ErrRecordNotFound
	}

	blog.Views++
	m.c.Set(common.CacheKeyBlog(blogID), blog)

	out := cloneBlog(blog)
	return &out, nil
}

func (m *MemoryStore) DeleteByBlogID(ctx context.Context, blogID string) (*DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := common.CacheKeyBlog(blogID)
	if _, found := m.c.Get(key); !found {
		return &DeleteResult{}, nil
	}

	m.c.Delete(key)
	return &DeleteResult{DeletedCount: 1}, nil
}

func (m *MemoryStore) get(blogID string) (Blog, bool) {
	v, found := m.c.Get(common.CacheKeyBlog(blogID))
	if !found {
		return Blog{}, false
	}

	return cloneBlog(v.(Blog)), true
}

// filter returns matching blogs newest first, the order MongoStore uses.
func (m *MemoryStore) filter(match func(Blog) bool) []Blog {
	blogs := []Blog{}
	for _, v := range m.c.Values() {
		b := v.(Blog)
		if match(b) {
			blogs = append(blogs, cloneBlog(b))
		}
	}

	sort.Slice(blogs, func(i, j int) bool {
		if blogs[i].Created.Equal(blogs[j].Created) {
			return blogs[i].BlogID < blogs[j].BlogID
		}
		return blogs[i].Created.After(blogs[j].Created)
	})

	return blogs
}

func (u BlogUpdate) applyTo(b *Blog) {
	b.LastModified = u.LastModified

	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Description != nil {
		b.Description = *u.Description
	}
	if u.BodyHTML != nil {
		b.BodyHTML = *u.BodyHTML
	}
	if u.Category != nil {
		b.Category = *u.Category
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.Tags != nil {
		b.Tags = append([]string{}, u.Tags...)
	}
}

func cloneBlog(b Blog) Blog {
	b.Tags = append([]string{}, b.Tags...)
	return b
}

func sameBlog(a, b Blog) bool {
	return a.Title == b.Title &&
		a.Description == b.Description &&
		a.BodyHTML == b.BodyHTML &&
		a.Category == b.Category &&
		a.Author == b.Author &&
		slices.Equal(a.Tags, b.Tags) &&
		a.LastModified.Equal(b.LastModified)
}
