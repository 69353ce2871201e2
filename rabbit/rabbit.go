package rabbit

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// Rabbit names one queue on a broker. The queue is bound to Exchange with its
// own name as routing key.
type Rabbit struct {
	Url          string
	Exchange     string
	ExchangeType string
	Queue        string
}

func (r *Rabbit) String() string {
	uri, err := amqp.ParseURI(r.Url)
	host := "<invalid url>"
	if err == nil {
		host = fmt.Sprintf("%s:%d%s", uri.Host, uri.Port, uri.Vhost)
	}
	return fmt.Sprintf("amqp{host: %s, exchange: %s(%s), queue: %s}", host, r.Exchange, r.exchangeType(), r.Queue)
}

func (r *Rabbit) validate() error {
	if r.Url == "" {
		return errors.New("rabbit: url is empty")
	}
	if r.Queue == "" {
		return errors.New("rabbit: queue is empty")
	}
	return nil
}

func (r *Rabbit) exchangeType() string {
	if r.ExchangeType == "" {
		return amqp.ExchangeDirect
	}
	return r.ExchangeType
}

func (r *Rabbit) dial() (*amqp.Connection, *amqp.Channel, error) {
	if err := r.validate(); err != nil {
		return nil, nil, err
	}
	conn, err := amqp.Dial(r.Url)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbit: dial %s: %w", r, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("rabbit: open channel: %w", err)
	}
	if err := r.declare(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

func (r *Rabbit) declare(ch *amqp.Channel) error {
	if r.Exchange != "" {
		if err := ch.ExchangeDeclare(r.Exchange, r.exchangeType(), true, false, false, false, nil); err != nil {
			return fmt.Errorf("rabbit: declare exchange %s: %w", r.Exchange, err)
		}
	}
	if _, err := ch.QueueDeclare(r.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbit: declare queue %s: %w", r.Queue, err)
	}
	if r.Exchange != "" {
		if err := ch.QueueBind(r.Queue, r.Queue, r.Exchange, false, nil); err != nil {
			return fmt.Errorf("rabbit: bind queue %s: %w", r.Queue, err)
		}
	}
	return nil
}

// Publish sends body as a persistent JSON message to the queue.
func Publish(r *Rabbit, body string) error {
	conn, ch, err := r.dial()
	if err != nil {
		log.Errorf("Publish message failed: %v", err)
		return err
	}
	defer conn.Close()
	defer ch.Close()

	err = ch.Publish(r.Exchange, r.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         []byte(body),
	})
	if err != nil {
		log.Errorf("Publish message to %s failed: %v", r, err)
		return fmt.Errorf("rabbit: publish: %w", err)
	}
	return nil
}

// Consume delivers every message of the queue to handler, one at a time, and
// acks it afterwards. A panicking handler nacks the message without requeue.
// Consume blocks until ctx is done or the broker closes the channel.
func Consume(ctx context.Context, r *Rabbit, handler func(string)) error {
	conn, ch, err := r.dial()
	if err != nil {
		return err
	}
	defer conn.Close()
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("rabbit: qos: %w", err)
	}
	deliveries, err := ch.Consume(r.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbit: consume %s: %w", r.Queue, err)
	}
	log.Infof("Consumer started on %s", r)

	for {
		select {
		case <-ctx.Done():
			log.Infof("Consumer on %s stopped", r.Queue)
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("rabbit: delivery channel of %s closed", r.Queue)
			}
			if handle(handler, d.Body) {
				_ = d.Ack(false)
			} else {
				_ = d.Nack(false, false)
			}
		}
	}
}

func handle(handler func(string), body []byte) (ok bool) {
	defer func() {
		if p := recover(); p != nil {
			log.Errorf("Message handler panicked: %v", p)
			ok = false
		}
	}()
	handler(string(body))
	return true
}
