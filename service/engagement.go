package service

import (
	"context"
	"log"

	"engagement-service/metrics"
	"engagement-service/model"
)

// articleEngagement is the store surface the service needs.
type articleEngagement interface {
	ToggleLike(ctx context.Context, userID, articleID string) (bool, error)
	RecordView(ctx context.Context, articleID string) error
}

// eventSink publishes engagement events. Satisfied by events.Publisher.
type eventSink interface {
	PublishEngagement(event model.EngagementEvent) error
}

// EngagementService coordinates like toggles and view records: the store does
// the write, then the outcome is counted and published. Events are best
// effort and never fail the operation.
type EngagementService struct {
	articles articleEngagement
	events   eventSink
}

// NewEngagementService wires the service. events may be nil when NATS is
// unavailable; the service then skips publishing.
func NewEngagementService(articles articleEngagement, events eventSink) *EngagementService {
	return &EngagementService{articles: articles, events: events}
}

// ToggleLike flips the user's like on the article and reports whether the
// article ended up liked.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, articleID string) (bool, error) {
	liked, err := s.articles.ToggleLike(ctx, userID, articleID)
	if err != nil {
		metrics.LikesToggledTotal.WithLabelValues("toggle", "error").Inc()
		return false, err
	}

	action := model.EventArticleUnliked
	label := "unlike"
	if liked {
		action = model.EventArticleLiked
		label = "like"
	}
	metrics.LikesToggledTotal.WithLabelValues(label, "success").Inc()

	s.publish(model.EngagementEvent{
		Type:      action,
		ArticleID: articleID,
		UserID:    userID,
	})

	return liked, nil
}

// RecordView bumps the article's view counter.
func (s *EngagementService) RecordView(ctx context.Context, articleID string) error {
	if err := s.articles.RecordView(ctx, articleID); err != nil {
		metrics.ViewsRecordedTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.ViewsRecordedTotal.WithLabelValues("success").Inc()
	s.publish(model.EngagementEvent{
		Type:      model.EventArticleViewed,
		ArticleID: articleID,
	})
	return nil
}

func (s *EngagementService) publish(event model.EngagementEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEngagement(event); err != nil {
		log.Printf("Failed to publish engagement event %s for article %s: %v", event.Type, event.ArticleID, err)
	}
}
