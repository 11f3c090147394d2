package mailservice

import (
	"bytes"
	"errors"
	"sync"

	"github.com/go-mail/mail/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"

	"github.com/sushihentaime/blogdocs/internal/common"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	args := m.Called(name, data)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(*bytes.Buffer), args.Get(1).(*bytes.Buffer), args.Get(2).(*bytes.Buffer), args.Error(3)
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

// MockMailer errors on its first n sends, then reports each recipient on sent.
type MockMailer struct {
	mu           sync.Mutex
	failures     int
	attempts     int
	lastTemplate string
	sent         chan string
}

func newMockMailer(n int) *MockMailer {
	return &MockMailer{failures: n, sent: make(chan string, 10)}
}

func (m *MockMailer) send(recipient string, data any, templateFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts++
	m.lastTemplate = templateFile
	if m.attempts <= m.failures {
		return errors.New("smtp unavailable")
	}

	m.sent <- recipient
	return nil
}

func (m *MockMailer) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

func (m *MockMailer) LastTemplate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastTemplate
}

type MockMessageConsumer struct {
	mock.Mock
}

func (m *MockMessageConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	args := m.Called(key, exchange, queue)
	if err := args.Error(1); err != nil {
		return nil, err
	}

	bodies := args.Get(0).([]string)
	msgsChan := make(chan amqp.Delivery, len(bodies))
	for _, b := range bodies {
		msgsChan <- amqp.Delivery{Body: []byte(b)}
	}
	close(msgsChan)

	return msgsChan, nil
}
