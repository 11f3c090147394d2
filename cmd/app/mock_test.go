package main

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sushihentaime/blogdocs/internal/blogservice"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Insert(ctx context.Context, blog *blogservice.Blog) error {
	args := m.Called(blog)
	return args.Error(0)
}

func (m *mockStore) FindAll(ctx context.Context) ([]blogservice.Blog, error) {
	args := m.Called()
	blogs, _ := args.Get(0).([]blogservice.Blog)
	return blogs, args.Error(1)
}

func (m *mockStore) FindOne(ctx context.Context, blogID string) (*blogservice.Blog, error) {
	args := m.Called(blogID)
	blog, _ := args.Get(0).(*blogservice.Blog)
	return blog, args.Error(1)
}

func (m *mockStore) FindMany(ctx context.Context, field blogservice.Field, value string) ([]blogservice.Blog, error) {
	args := m.Called(field, value)
	blogs, _ := args.Get(0).([]blogservice.Blog)
	return blogs, args.Error(1)
}

func (m *mockStore) UpdateByBlogID(ctx context.Context, blogID string, update blogservice.BlogUpdate) (*blogservice.UpdateResult, error) {
	args := m.Called(blogID, update)
	res, _ := args.Get(0).(*blogservice.UpdateResult)
	return res, args.Error(1)
}

func (m *mockStore) IncrementViews(ctx context.Context, blogID string) (*blogservice.Blog, error) {
	args := m.Called(blogID)
	blog, _ := args.Get(0).(*blogservice.Blog)
	return blog, args.Error(1)
}

func (m *mockStore) DeleteByBlogID(ctx context.Context, blogID string) (*blogservice.DeleteResult, error) {
	args := m.Called(blogID)
	res, _ := args.Get(0).(*blogservice.DeleteResult)
	return res, args.Error(1)
}
