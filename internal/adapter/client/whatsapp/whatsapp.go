package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/config"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/port"
	"go.uber.org/zap"
)

const queueSize = 64

type job struct {
	OrderID uint64
	Attempt int
}

// Notifier is the single-consumer queue for outbound WhatsApp template
// messages. One job is in flight at a time; after every attempt the consumer
// waits a fixed delay before the next one, which is the outbound rate limit
// the provider asks for. Failed jobs go back to the tail with a bumped
// attempt counter until the attempt budget is spent, then they are dropped
// and logged.
type Notifier struct {
	logger      *zap.Logger
	apiURL      string
	token       string
	senderID    string
	delay       time.Duration
	maxAttempts int
	client      *http.Client
	jobs        chan job

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewNotifier(cfg *config.WhatsApp, log *zap.Logger) (*Notifier, error) {
	delay := cfg.MessageDelay
	if delay <= 0 {
		delay = 5 * time.Second
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	return &Notifier{
		logger:      log,
		apiURL:      cfg.APIURL,
		token:       cfg.Token,
		senderID:    cfg.SenderID,
		delay:       delay,
		maxAttempts: maxAttempts,
		client:      &http.Client{Timeout: 30 * time.Second},
		jobs:        make(chan job, queueSize),
	}, nil
}

// ScheduleStatusNotification puts an order on the queue and returns
// immediately. A full queue drops the job; delivery is best effort.
func (n *Notifier) ScheduleStatusNotification(orderID uint64) {
	select {
	case n.jobs <- job{OrderID: orderID}:
		n.logger.Debug("queued notification", zap.Uint64("order", orderID))
	default:
		n.logger.Warn("notification queue full, dropping job", zap.Uint64("order", orderID))
	}
}

// Start launches the consumer loop. The source is consulted at send time so
// the message reflects the order's latest state.
func (n *Notifier) Start(ctx context.Context, source port.NotificationSource) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	n.done = make(chan struct{})

	go n.loop(ctx, source)
}

// Stop cancels the consumer and waits for the in-flight job to finish.
func (n *Notifier) Stop() {
	n.mu.Lock()
	cancel, done := n.cancel, n.done
	n.cancel = nil
	n.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (n *Notifier) loop(ctx context.Context, source port.NotificationSource) {
	defer close(n.done)

	for {
		select {
		case <-ctx.Done():
			return
		case j := <-n.jobs:
			if err := n.deliver(ctx, source, j); err != nil {
				n.retry(j, err)
			}

			// Pacing between outbound messages.
			select {
			case <-ctx.Done():
				return
			case <-time.After(n.delay):
			}
		}
	}
}

func (n *Notifier) retry(j job, cause error) {
	if j.Attempt+1 >= n.maxAttempts {
		n.logger.Error("notification dropped after final attempt",
			zap.Uint64("order", j.OrderID),
			zap.Int("attempts", j.Attempt+1),
			zap.Error(cause))
		return
	}

	n.logger.Warn("notification failed, requeueing",
		zap.Uint64("order", j.OrderID),
		zap.Int("attempt", j.Attempt+1),
		zap.Error(cause))

	select {
	case n.jobs <- job{OrderID: j.OrderID, Attempt: j.Attempt + 1}:
	default:
		n.logger.Warn("notification queue full, dropping retry", zap.Uint64("order", j.OrderID))
	}
}

// deliver re-fetches the order, picks the template for its current status
// and sends one message. A status without a template means the order moved
// on before the job ran; the job is skipped silently.
func (n *Notifier) deliver(ctx context.Context, source port.NotificationSource, j job) error {
	order, err := source.ReadOrderWithOwner(ctx, j.OrderID)
	if err != nil {
		return fmt.Errorf("fetch order %d: %w", j.OrderID, err)
	}

	template, ok := statusTemplates[order.Status]
	if !ok {
		n.logger.Debug("no template for current status, skipping",
			zap.Uint64("order", order.ID),
			zap.String("status", string(order.Status)))
		return nil
	}

	if order.Owner == nil || order.Owner.Phone == "" {
		n.logger.Warn("order owner has no phone, skipping",
			zap.Uint64("order", order.ID))
		return nil
	}

	if err := n.send(ctx, order.Owner.Phone, template, templateParams(order)); err != nil {
		return err
	}

	n.logger.Info("notification delivered",
		zap.Uint64("order", order.ID),
		zap.String("template", template))
	return nil
}

type messageRequest struct {
	To         string   `json:"to"`
	From       string   `json:"from"`
	Template   string   `json:"template"`
	Language   string   `json:"language"`
	Parameters []string `json:"parameters"`
}

func (n *Notifier) send(ctx context.Context, to, template string, params []string) error {
	body, err := json.Marshal(messageRequest{
		To:         to,
		From:       n.senderID,
		Template:   template,
		Language:   templateLanguage,
		Parameters: params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.apiURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.token)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("provider request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("provider responded %d", resp.StatusCode)
	}

	return nil
}
