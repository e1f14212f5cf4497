package store

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/mongo"

	"engagement-service/metrics"
	"engagement-service/model"
)

// FeedSubscription is a live view of the article feed. Snapshots carries the
// full re-projected list after the initial load and after every collection
// change. The channel is closed when the subscription ends; a cancelled
// subscription is not restartable.
type FeedSubscription struct {
	Snapshots <-chan []model.Article

	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel stops delivery and closes the server-side change stream. Callers
// own the subscription and must call Cancel to avoid leaking the stream.
func (s *FeedSubscription) Cancel() {
	s.cancel()
	<-s.done
}

// changeStream is the slice of *mongo.ChangeStream the feed loop needs.
type changeStream interface {
	Next(ctx context.Context) bool
	Err() error
	Close(ctx context.Context) error
}

// SubscribeFeed opens a change stream on the articles collection and delivers
// a full ordered snapshot for the viewer on every change.
func (s *ArticleStore) SubscribeFeed(ctx context.Context, viewerID string) (*FeedSubscription, error) {
	if viewerID == "" {
		return nil, ErrNotAuthenticated
	}

	streamCtx, cancel := context.WithCancel(ctx)

	cs, err := s.col.Watch(streamCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	out := make(chan []model.Article, 1)
	sub := &FeedSubscription{
		Snapshots: out,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	snapshot := func(ctx context.Context) ([]model.Article, error) {
		return s.List(ctx, viewerID)
	}

	go func() {
		defer close(sub.done)
		runFeed(streamCtx, cs, snapshot, out)
	}()

	return sub, nil
}

// runFeed drives one subscription: initial snapshot, then a fresh snapshot
// per change event. A failed snapshot preserves the last delivered list
// rather than clearing it; the loop only ends on cancellation or a dead
// stream.
func runFeed(ctx context.Context, cs changeStream, snapshot func(context.Context) ([]model.Article, error), out chan []model.Article) {
	defer close(out)
	defer cs.Close(context.Background())

	deliver := func() {
		articles, err := snapshot(ctx)
		if err != nil {
			log.Printf("[WARN] feed snapshot failed, keeping last known list: %v", err)
			return
		}
		// Replace any undelivered snapshot so the consumer always gets
		// the freshest list.
		select {
		case out <- articles:
		default:
			select {
			case <-out:
			default:
			}
			out <- articles
		}
		metrics.FeedSnapshotsTotal.Inc()
	}

	deliver()

	for cs.Next(ctx) {
		deliver()
	}

	if err := cs.Err(); err != nil && ctx.Err() == nil {
		log.Printf("[ERROR] feed change stream ended: %v", err)
	}
}
