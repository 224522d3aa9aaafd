package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"icms/internal/pkg/config"
	"icms/internal/pkg/errs"
	"icms/internal/usecase/commands"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"
)

const contentTypeJSON = "application/json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrNotifierClosed = errs.New("rabbitmq: notifier closed")

// RequestCompletedMessage is the body published for the mail worker.
type RequestCompletedMessage struct {
	Email           string         `json:"email"`
	Name            string         `json:"name"`
	ReferenceNumber string         `json:"reference_number"`
	CompletedAt     time.Time      `json:"completed_at"`
	Details         map[string]any `json:"details,omitempty"`
}

// RabbitNotifier publishes completion notices to a durable queue. The mail
// worker consuming that queue owns delivery.
type RabbitNotifier struct {
	url   string
	queue string

	mu     sync.Mutex
	conn   *amqp.Connection
	closed bool
}

var _ commands.Notifier = (*RabbitNotifier)(nil)

func NewRabbitNotifier(cfg config.NotifyConfig) *RabbitNotifier {
	return &RabbitNotifier{
		url:   cfg.URL,
		queue: cfg.Queue,
	}
}

func (n *RabbitNotifier) Enabled() bool { return true }

func (n *RabbitNotifier) SendCompletion(ctx context.Context, notice commands.CompletionNotice) error {
	pub, err := buildPublishing(notice, time.Now())
	if err != nil {
		return err
	}

	conn, err := n.connection()
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		n.reset()
		return errs.Wrap(err, "rabbitmq: open channel")
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(n.queue, true, false, false, false, nil); err != nil {
		return errs.Wrap(err, "rabbitmq: declare queue")
	}

	if err := ch.PublishWithContext(ctx, "", n.queue, false, false, pub); err != nil {
		return errs.Wrap(err, "rabbitmq: publish")
	}

	slog.Info("completion notice published",
		"queue", n.queue,
		"reference_number", notice.ReferenceNumber)
	return nil
}

// Close drops the connection. Later sends fail with ErrNotifierClosed.
func (n *RabbitNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	if n.conn == nil || n.conn.IsClosed() {
		return nil
	}
	err := n.conn.Close()
	n.conn = nil
	return err
}

func (n *RabbitNotifier) connection() (*amqp.Connection, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil, ErrNotifierClosed
	}
	if n.conn != nil && !n.conn.IsClosed() {
		return n.conn, nil
	}
	conn, err := amqp.Dial(n.url)
	if err != nil {
		return nil, errs.Wrap(err, "rabbitmq: dial")
	}
	n.conn = conn
	return conn, nil
}

func (n *RabbitNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn != nil {
		_ = n.conn.Close()
		n.conn = nil
	}
}

func buildPublishing(notice commands.CompletionNotice, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(RequestCompletedMessage{
		Email:           notice.Email,
		Name:            notice.Name,
		ReferenceNumber: notice.ReferenceNumber,
		CompletedAt:     notice.CompletedAt.UTC(),
		Details:         notice.Details,
	})
	if err != nil {
		return amqp.Publishing{}, errs.Wrap(err, "rabbitmq: encode notice")
	}

	return amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    now.UTC(),
		MessageId:    notice.ReferenceNumber,
		Body:         body,
	}, nil
}

// Disabled drops every notice.
type Disabled struct{}

var _ commands.Notifier = Disabled{}

func (Disabled) Enabled() bool { return false }

func (Disabled) SendCompletion(context.Context, commands.CompletionNotice) error { return nil }
