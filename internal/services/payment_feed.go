package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// PaymentFeedChannel is the Redis channel shared by every instance.
const PaymentFeedChannel = "payments:events"

// Payment feed event types.
const (
	PaymentEventRecorded      = "payment.recorded"
	PaymentEventStatusChanged = "payment.status_changed"
)

// PaymentEvent is broadcast over Redis and delivered to admin WebSocket clients.
type PaymentEvent struct {
	Type       string    `json:"type"`
	PaymentID  string    `json:"paymentId"`
	PurchaseID string    `json:"purchaseId,omitempty"`
	Email      string    `json:"email,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	Status     string    `json:"status,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// PaymentFeed fans payment events out to local subscribers. With Redis configured,
// events travel through the shared channel so every instance sees every payment;
// without it, Publish delivers locally only.
type PaymentFeed struct {
	client *redis.Client

	mu   sync.RWMutex
	subs map[chan PaymentEvent]struct{}

	ready     chan struct{}
	readyOnce sync.Once
}

func NewPaymentFeed(client *redis.Client) *PaymentFeed {
	return &PaymentFeed{
		client: client,
		subs:   make(map[chan PaymentEvent]struct{}),
		ready:  make(chan struct{}),
	}
}

// Subscribe registers a local listener. The returned func must be called to release it.
func (f *PaymentFeed) Subscribe() (<-chan PaymentEvent, func()) {
	ch := make(chan PaymentEvent, 16)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, ch)
			f.mu.Unlock()
			close(ch)
		})
	}
}

// Publish sends event to every instance (or only locally without Redis).
func (f *PaymentFeed) Publish(ctx context.Context, event PaymentEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if f.client == nil {
		f.fanOut(event)
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, PaymentFeedChannel, data).Err()
}

// fanOut never blocks: a subscriber whose buffer is full misses the event.
func (f *PaymentFeed) fanOut(event PaymentEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for ch := range f.subs {
		select {
		case ch <- event:
		default:
			slog.Warn("payment feed subscriber is slow; dropping event", "type", event.Type, "payment_id", event.PaymentID)
		}
	}
}

// Ready is closed once the Redis subscription is active (immediately without Redis).
func (f *PaymentFeed) Ready() <-chan struct{} {
	return f.ready
}

func (f *PaymentFeed) markReady() {
	f.readyOnce.Do(func() { close(f.ready) })
}

// Run relays Redis messages to local subscribers until ctx is done, reconnecting with
// backoff on errors.
func (f *PaymentFeed) Run(ctx context.Context) {
	if f.client == nil {
		f.markReady()
		return
	}

	backoff := time.Second
	for ctx.Err() == nil {
		err := f.relay(ctx, &backoff)
		if ctx.Err() != nil {
			return
		}
		slog.Error("payment feed subscriber error", "error", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
	}
}

func (f *PaymentFeed) relay(ctx context.Context, backoff *time.Duration) error {
	pubsub := f.client.Subscribe(ctx, PaymentFeedChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	slog.Info("✅ Payment feed subscriber started", "channel", PaymentFeedChannel)
	f.markReady()
	*backoff = time.Second

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			return err
		}

		var event PaymentEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			slog.Warn("failed to unmarshal payment event", "error", err)
			continue
		}
		f.fanOut(event)
	}
}
