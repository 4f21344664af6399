// Package events публикация доменных событий в NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/sirupsen/logrus"
)

const (
	StreamName    = "LUCKYTEN_EVENTS"
	SubjectPrefix = "luckyten.events"

	streamMaxAge = 72 * time.Hour
)

// Envelope формат сообщения в потоке.
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// streamPublisher подмножество jetstream.JetStream, нужное для публикации.
type streamPublisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

type NATSPublisher struct {
	js  streamPublisher
	now func() time.Time
}

func NewNATSPublisher(js streamPublisher) *NATSPublisher {
	return &NATSPublisher{js: js, now: time.Now}
}

// Publish отправляет событие eventType в subject luckyten.events.{eventType}. Идентификатор события
// передается как Nats-Msg-Id, поэтому повторная отправка того же конверта дедуплицируется сервером.
func (p *NATSPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	env := Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: p.now().UTC(),
		Payload:    payload,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("[events] marshal %s: %w", eventType, err)
	}
	if _, err = p.js.Publish(ctx, Subject(eventType), data, jetstream.WithMsgID(env.ID)); err != nil {
		return fmt.Errorf("[events] publish %s: %w", eventType, err)
	}
	return nil
}

func Subject(eventType string) string {
	return SubjectPrefix + "." + eventType
}

// NopPublisher используется, когда NATS не настроен.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error {
	return nil
}

// Connect подключается к NATS, создает (или обновляет) поток событий и возвращает паблишер вместе
// с функцией закрытия соединения.
func Connect(ctx context.Context, url string, l *logrus.Logger) (*NATSPublisher, func(), error) {
	nc, err := nats.Connect(url, nats.Name("lucky-ten"))
	if err != nil {
		return nil, nil, fmt.Errorf("[events] connect %s: %w", url, err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("[events] jetstream: %w", err)
	}
	if err = ensureStream(ctx, js); err != nil {
		nc.Close()
		return nil, nil, err
	}
	l.WithFields(logrus.Fields{
		"component": "events",
		"stream":    StreamName,
	}).Info("event stream ready")

	return NewNATSPublisher(js), func() { _ = nc.Drain() }, nil
}

func ensureStream(ctx context.Context, js jetstream.JetStream) error {
	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{SubjectPrefix + ".>"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    streamMaxAge,
		Replicas:  1,
	})
	if err != nil {
		return fmt.Errorf("[events] create stream %s: %w", StreamName, err)
	}
	return nil
}
