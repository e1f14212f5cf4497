package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"engagement-service/metrics"
	"engagement-service/model"
)

const serviceName = "engagement-service"

// Subjects for engagement events.
const (
	SubjectLiked   = "engagement.article.liked"
	SubjectUnliked = "engagement.article.unliked"
	SubjectViewed  = "engagement.article.viewed"
)

// Publisher fans engagement events out to NATS. Publishing is best effort:
// a failed publish never fails the user operation.
type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name(serviceName),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("Reconnected to NATS at %s", nc.ConnectedUrl())
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS connection lost: %v", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{conn: nc}, nil
}

func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// PublishEngagement publishes one engagement event on the subject matching
// its type.
func (p *Publisher) PublishEngagement(event model.EngagementEvent) error {
	event.Source = serviceName
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	subject := subjectFor(event.Type)

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.conn.Publish(subject, data); err != nil {
		metrics.NatsMessagesPublished.WithLabelValues(subject, "error").Inc()
		return err
	}

	metrics.NatsMessagesPublished.WithLabelValues(subject, "success").Inc()
	return nil
}

func subjectFor(eventType string) string {
	switch eventType {
	case model.EventArticleLiked:
		return SubjectLiked
	case model.EventArticleUnliked:
		return SubjectUnliked
	case model.EventArticleViewed:
		return SubjectViewed
	default:
		return "engagement.article.event"
	}
}
