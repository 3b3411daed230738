package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/levy-pm/co-moge-zjesc/logger"
	"github.com/levy-pm/co-moge-zjesc/models"
)

// FeedbackCreator is the slice of the repository the worker needs.
type FeedbackCreator interface {
	Create(ctx context.Context, fb *models.Feedback) error
}

// FeedbackWorker persists telemetry rows off the request path. Feedback is
// best-effort: when the queue is full the row is dropped and logged, the
// visitor request is never delayed.
type FeedbackWorker struct {
	jobs chan models.Feedback
	repo FeedbackCreator
	done chan struct{}
}

func NewFeedbackWorker(repo FeedbackCreator) *FeedbackWorker {
	w := &FeedbackWorker{
		jobs: make(chan models.Feedback, 100),
		repo: repo,
		done: make(chan struct{}),
	}
	go w.run()
	logger.Info("Feedback worker started")
	return w
}

// Enqueue adds a feedback row to the queue.
func (w *FeedbackWorker) Enqueue(fb models.Feedback) {
	select {
	case w.jobs <- fb:
	default:
		logger.Warn("Feedback queue full, dropping row", zap.String("action", fb.Action))
	}
}

// Stop drains the queue and stops the worker.
func (w *FeedbackWorker) Stop() {
	close(w.jobs)
	<-w.done
}

func (w *FeedbackWorker) run() {
	defer close(w.done)
	for fb := range w.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := w.repo.Create(ctx, &fb); err != nil {
			logger.Error("Failed to save feedback", zap.Error(err))
		}
		cancel()
	}
}
