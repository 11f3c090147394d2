package mailservice

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/exp/rand"

	"github.com/sushihentaime/blogdocs/internal/common"
	"github.com/sushihentaime/blogdocs/internal/logger"
)

const (
	blogPublishedTemplate = "blog_published.html"
	blogDeletedTemplate   = "blog_deleted.html"
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, recipients []string, logger logger.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          NewMailer(host, port, username, password, sender, NewTemplate()),
		logger:     logger,
		recipients: recipients,
		maxRetries: 5,
		baseDelay:  500 * time.Millisecond,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// NotifyBlogPublished consumes blog.created events and mails every recipient about the new post.
// It returns once the consumer is registered; delivery handling runs until Close.
func (s *MailService) NotifyBlogPublished() error {
	return s.notify(common.BlogCreatedKey, common.BlogCreatedQueue, blogPublishedTemplate)
}

// NotifyBlogDeleted does the same for blog.deleted events.
func (s *MailService) NotifyBlogDeleted() error {
	return s.notify(common.BlogDeletedKey, common.BlogDeletedQueue, blogDeletedTemplate)
}

func (s *MailService) notify(key common.BindingKey, queue common.Queue, templateFile string) error {
	msgs, err := s.mb.Consume(key, common.BlogExchange, queue)
	if err != nil {
		s.logger.Error("could not consume message", logger.String("queue", string(queue)), logger.Error(err))
		return err
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var data blogNotice
				err := json.Unmarshal(msg.Body, &data)
				if err != nil {
					s.logger.Error("could not unmarshal message", logger.String("queue", string(queue)), logger.Error(err))
					msg.Ack(false)
					continue
				}

				for _, recipient := range s.recipients {
					s.sendWithRetry(recipient, data, templateFile)
				}

				msg.Ack(false)

			case <-s.ctx.Done():
				s.logger.Info("stopping consumer due to context cancellation", logger.String("queue", string(queue)))
				return
			}
		}
	}()

	return nil
}

// sendWithRetry uses exponential backoff with full jitter and gives up after maxRetries attempts.
func (s *MailService) sendWithRetry(recipient string, data blogNotice, templateFile string) bool {
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.m.send(recipient, data, templateFile)
		if err == nil {
			s.logger.Info("notification email sent",
				logger.String("email", recipient),
				logger.String("blogId", data.BlogID),
				logger.String("template", templateFile),
			)
			return true
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Warn("delaying notification email",
			logger.String("email", recipient),
			logger.Int("attempt", attempt),
			logger.Duration("delay", delay),
			logger.Error(err),
		)

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return false
		}
	}

	s.logger.Error("could not send notification email", logger.String("email", recipient), logger.String("blogId", data.BlogID))
	return false
}

func (s *MailService) Close() {
	s.cancel()
}
