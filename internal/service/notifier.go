package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Notification is one fire-and-forget message to a user: a templated
// title/body plus structured data for the delivery channel to render.
type Notification struct {
	RecipientID primitive.ObjectID
	Title       string
	Body        string
	Data        map[string]string
}

// Notifier delivers notifications out-of-band. Implementations live outside
// the core (push/email); delivery failures never affect the write that
// triggered them.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// logNotifier is the in-process Notifier used when no delivery channel is
// configured: it just records the notification.
type logNotifier struct {
	logger *zap.SugaredLogger
}

// NewLogNotifier returns a Notifier that logs instead of delivering.
func NewLogNotifier(logger *zap.SugaredLogger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(_ context.Context, notification Notification) error {
	n.logger.Infow("notification dispatched",
		"recipient", notification.RecipientID.Hex(),
		"title", notification.Title,
	)
	return nil
}

// dispatchAsync sends a notification on its own goroutine with its own
// deadline, detached from the request context so the originating write
// neither waits on nor fails with delivery.
func dispatchAsync(notifier Notifier, logger *zap.SugaredLogger, n Notification) {
	if notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := notifier.Notify(ctx, n); err != nil {
			logger.Warnw("notification delivery failed",
				"recipient", n.RecipientID.Hex(),
				"title", n.Title,
				"error", err,
			)
		}
	}()
}
