package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

type Publisher interface {
	Publish(ctx context.Context, reminder Reminder) error
	Close() error
}

// AmqpPublisher sends reminders as persistent JSON messages to a durable direct exchange.
// The routing key is the queue name.
type AmqpPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	queue    string
	mu       sync.Mutex
}

func NewAmqpPublisher(url, exchange, queue string) (*AmqpPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	publisher := &AmqpPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		queue:    queue,
	}
	if err := publisher.declare(); err != nil {
		publisher.Close()
		return nil, fmt.Errorf("declare exchange and queue: %w", err)
	}
	log.Infof("publishing reminders to exchange %s, queue %s", exchange, queue)
	return publisher, nil
}

func (p *AmqpPublisher) declare() error {
	err := p.channel.ExchangeDeclare(
		p.exchange,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = p.channel.QueueDeclare(
		p.queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := p.channel.QueueBind(p.queue, p.queue, p.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

func (p *AmqpPublisher) Publish(ctx context.Context, reminder Reminder) error {
	body, err := reminder.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal reminder: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp091 channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		p.queue,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    reminder.Id.String(),
			Type:         string(reminder.Kind),
			Timestamp:    time.Now(),
			Headers:      amqp091.Table{"x-scheduled-at": reminder.ScheduledAt.Format(time.RFC3339)},
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish reminder: %w", err)
	}
	log.Debugf("published reminder %s for budget %s, scheduled at %s", reminder.Id, reminder.BudgetId, reminder.ScheduledAt)
	return nil
}

func (p *AmqpPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// LogPublisher only logs reminders. It is used when AMQP is disabled.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, reminder Reminder) error {
	log.WithFields(log.Fields{
		"budget":      reminder.BudgetId,
		"kind":        reminder.Kind,
		"scheduledAt": reminder.ScheduledAt,
	}).Info(reminder.Body())
	return nil
}

func (LogPublisher) Close() error {
	return nil
}
