package whatsapp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/client/whatsapp"
	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/config"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSource struct {
	order *domain.Order
}

func (s *stubSource) ReadOrderWithOwner(_ context.Context, _ uint64) (*domain.Order, error) {
	return s.order, nil
}

func testOrder(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:     42,
		UserID: 7,
		Title:  "Sneakers",
		Status: status,
		Owner: &domain.User{
			ID:    7,
			Name:  "Dana",
			Phone: "+9647501234567",
		},
	}
}

func newTestNotifier(t *testing.T, apiURL string) *whatsapp.Notifier {
	t.Helper()
	n, err := whatsapp.NewNotifier(&config.WhatsApp{
		APIURL:       apiURL,
		Token:        "secret",
		SenderID:     "15550001111",
		MessageDelay: 5 * time.Millisecond,
		MaxAttempts:  3,
	}, zap.NewNop())
	require.NoError(t, err)
	return n
}

func TestNotifier_DeliversTemplateMessage(t *testing.T) {
	var calls atomic.Int32
	var got struct {
		To         string   `json:"to"`
		From       string   `json:"from"`
		Template   string   `json:"template"`
		Language   string   `json:"language"`
		Parameters []string `json:"parameters"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := newTestNotifier(t, server.URL)
	n.Start(context.Background(), &stubSource{order: testOrder(domain.StatusCancelled)})
	defer n.Stop()

	n.ScheduleStatusNotification(42)

	assert.Eventually(t, func() bool { return calls.Load() == 1 },
		time.Second, 5*time.Millisecond)

	assert.Equal(t, "+9647501234567", got.To)
	assert.Equal(t, "15550001111", got.From)
	assert.Equal(t, "order_cancelled", got.Template)
	assert.Equal(t, "en", got.Language)
	assert.Equal(t, []string{"Dana", "42", "Sneakers"}, got.Parameters)
}

func TestNotifier_RetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := newTestNotifier(t, server.URL)
	n.Start(context.Background(), &stubSource{order: testOrder(domain.StatusProcessing)})
	defer n.Stop()

	n.ScheduleStatusNotification(42)

	assert.Eventually(t, func() bool { return calls.Load() == 3 },
		time.Second, 5*time.Millisecond)
}

func TestNotifier_DropsAfterAttemptBudget(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := newTestNotifier(t, server.URL)
	n.Start(context.Background(), &stubSource{order: testOrder(domain.StatusDeliveredToWarehouse)})
	defer n.Stop()

	n.ScheduleStatusNotification(42)

	assert.Eventually(t, func() bool { return calls.Load() == 3 },
		time.Second, 5*time.Millisecond)

	// Long enough for another cycle; the job must stay dropped.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(3), calls.Load())
}

func TestNotifier_SkipsStatusWithoutTemplate(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := newTestNotifier(t, server.URL)
	// The order moved to SHIPPED before the job ran.
	n.Start(context.Background(), &stubSource{order: testOrder(domain.StatusShipped)})

	n.ScheduleStatusNotification(42)

	time.Sleep(50 * time.Millisecond)
	n.Stop()
	assert.Zero(t, calls.Load())
}

func TestNotifier_ScheduleNeverBlocks(t *testing.T) {
	n := newTestNotifier(t, "http://127.0.0.1:0")

	// Never started; the queue fills and the rest is dropped.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			n.ScheduleStatusNotification(uint64(i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("schedule blocked on a full queue")
	}
}
