package mailservice

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/go-mail/mail/v2"

	"github.com/sushihentaime/blogdocs/internal/common"
	"github.com/sushihentaime/blogdocs/internal/logger"
)

type MailService struct {
	mb         common.MessageConsumer
	m          Mailer
	logger     logger.Logger
	recipients []string
	maxRetries int
	baseDelay  time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
}

// blogNotice is the subset of a blog event the notifications need. Deletion events carry only BlogID.
type blogNotice struct {
	BlogID   string `json:"blogId"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}
