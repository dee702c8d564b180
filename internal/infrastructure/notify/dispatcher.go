package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campuskit/provisioning-system/internal/api/metrics"
	"github.com/campuskit/provisioning-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

type message struct {
	email    string
	username string
	password string
}

// Dispatcher fans welcome messages out to a fixed worker pool, decoupled
// from the import transaction. Delivery is best effort with no retry:
// failures are logged and dropped, and a full buffer drops the message
// rather than block the caller.
type Dispatcher struct {
	ch      chan message
	sender  ports.WelcomeSender
	log     zerolog.Logger
	workers int
}

// NewDispatcher creates a Dispatcher with numWorkers delivery workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender ports.WelcomeSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{
		ch:      make(chan message, channelBuffer),
		sender:  sender,
		log:     log,
		workers: numWorkers,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		go d.runWorker(ctx, i)
	}
}

// Notify enqueues one welcome message without blocking the caller.
func (d *Dispatcher) Notify(email, username, password string) {
	select {
	case d.ch <- message{email: email, username: username, password: password}:
	default:
		metrics.WelcomeMailsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("username", username).Msg("welcome queue full, notification dropped")
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-d.ch:
			if !ok {
				return
			}
			if err := d.sender.SendWelcome(ctx, msg.email, msg.username, msg.password); err != nil {
				metrics.WelcomeMailsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("username", msg.username).
					Int("worker_id", id).
					Msg("welcome mail delivery failed")
				continue
			}
			metrics.WelcomeMailsTotal.WithLabelValues("sent").Inc()
		}
	}
}
