package blogservice

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sushihentaime/blogdocs/internal/common"
	"github.com/sushihentaime/blogdocs/internal/logger"
)

const publishTimeout = 5 * time.Second

func newBlogEvent(blog *Blog, at time.Time) BlogEvent {
	return BlogEvent{
		BlogID:     blog.BlogID,
		Title:      blog.Title,
		Author:     blog.Author,
		Category:   blog.Category,
		OccurredAt: at,
	}
}

// publish sends the event to the blog exchange. Failures are logged and dropped.
func (s *BlogService) publish(ctx context.Context, key common.BindingKey, blog *Blog) {
	if s.mb == nil {
		return
	}

	msg, err := json.Marshal(newBlogEvent(blog, s.timestamp()))
	if err != nil {
		s.logger.Error("could not encode blog event", logger.String("key", string(key)), logger.Error(err))
		return
	}

	// the request may finish before the broker confirms
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.mb.Publish(ctx, msg, key, common.BlogExchange); err != nil {
		s.logger.Error("could not publish blog event",
			logger.String("key", string(key)),
			logger.String("blogId", blog.BlogID),
			logger.Error(err),
		)
	}
}
