package common

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Exchange string

type Queue string

type BindingKey string

type MessageProducer interface {
	Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error
}

type MessageConsumer interface {
	Consume(key BindingKey, exchange Exchange, queue Queue) (<-chan amqp.Delivery, error)
}

const (
	BlogExchange     Exchange   = "blog_exchange"
	BlogCreatedQueue Queue      = "blog_created_queue"
	BlogCreatedKey   BindingKey = "blog.created"
	BlogDeletedQueue Queue      = "blog_deleted_queue"
	BlogDeletedKey   BindingKey = "blog.deleted"
)

type MessageBroker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewMessageBroker(URI string) (*MessageBroker, error) {
	conn, ch, err := connectAMQP(URI)
	if err != nil {
		return nil, err
	}

	return &MessageBroker{
		conn: conn,
		ch:   ch,
	}, nil
}

func connectAMQP(URI string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(URI)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("could not open channel: %w", err)
	}

	return conn, ch, nil
}

// Close closes the channel and then the connection of the message broker.
func (mb *MessageBroker) Close() error {
	err := mb.ch.Close()
	if err != nil {
		return err
	}

	return mb.conn.Close()
}

// SetupBlogExchange declares the blog exchange only. Queues are declared by their consumers;
// an event with no bound queue is dropped by the broker.
func SetupBlogExchange(mb *MessageBroker) error {
	return mb.ch.ExchangeDeclare(string(BlogExchange), "direct", true, false, false, false, nil)
}

func (mb *MessageBroker) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	err := mb.ch.PublishWithContext(ctx, string(exchange), string(key), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         msg,
	})
	if err != nil {
		return fmt.Errorf("could not publish message: %w", err)
	}

	return nil
}

// Consume declares queue as durable, binds it to exchange under key and starts a manual-ack consumer on it.
func (mb *MessageBroker) Consume(key BindingKey, exchange Exchange, queue Queue) (<-chan amqp.Delivery, error) {
	_, err := mb.ch.QueueDeclare(string(queue), true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not declare queue %s: %w", queue, err)
	}

	err = mb.ch.QueueBind(string(queue), string(key), string(exchange), false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not bind queue %s: %w", queue, err)
	}

	msgs, err := mb.ch.Consume(string(queue), string(key), false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not consume message: %w", err)
	}

	return msgs, nil
}
