// Package notify provides the per-tenant publish/subscribe hub used to fan
// out real-time alerts to whatever transport is subscribed.
package notify

import (
	"sync"
	"time"

	"github.com/pratik-mahalle/cloudspend/internal/domain/notification"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/metrics"
)

// DefaultCapacity is the per-subscriber message buffer size
const DefaultCapacity = 256

// Subscriber is one live receiver of a tenant's messages
type Subscriber struct {
	ch       chan notification.Message
	tenantID string
	hub      *Hub
	once     sync.Once
}

// C returns the subscriber's receive channel
func (s *Subscriber) C() <-chan notification.Message {
	return s.ch
}

// Close detaches the subscriber from the hub and closes its channel
func (s *Subscriber) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
	})
}

// Hub maps tenant IDs to their live subscribers. Delivery is at-most-once:
// there is no persistence, no replay and no backpressure on publishers.
// Slow subscribers that fall behind the buffer lose their oldest messages.
type Hub struct {
	mu       sync.RWMutex
	tenants  map[string][]*Subscriber
	capacity int
	logger   *logger.Logger
}

// NewHub creates a hub with the default per-subscriber capacity
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		tenants:  make(map[string][]*Subscriber),
		capacity: DefaultCapacity,
		logger:   log,
	}
}

// Subscribe registers a new receiver for a tenant. The tenant's subscriber
// list is created lazily; creation and registration happen in one critical
// section so concurrent first-subscribes cannot race.
func (h *Hub) Subscribe(tenantID string) *Subscriber {
	s := &Subscriber{
		ch:       make(chan notification.Message, h.capacity),
		tenantID: tenantID,
		hub:      h,
	}

	h.mu.Lock()
	h.tenants[tenantID] = append(h.tenants[tenantID], s)
	n := len(h.tenants[tenantID])
	h.mu.Unlock()

	metrics.HubSubscribers.Inc()
	h.logger.WithFields(map[string]interface{}{
		"tenant_id":   tenantID,
		"subscribers": n,
	}).Debug("Subscriber registered")

	return s
}

// Publish delivers msg to every subscriber of msg.TenantID registered at the
// time of the call. Publishing to a tenant with no subscribers is a no-op,
// not an error. A subscriber whose buffer is full has its oldest buffered
// message dropped to make room.
func (h *Hub) Publish(msg notification.Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	subs := h.tenants[msg.TenantID]
	if len(subs) == 0 {
		return
	}

	for _, s := range subs {
		select {
		case s.ch <- msg:
		default:
			// Buffer full: evict the oldest message, then retry once.
			select {
			case <-s.ch:
				metrics.HubDroppedTotal.Inc()
			default:
			}
			select {
			case s.ch <- msg:
			default:
			}
		}
	}

	metrics.AlertsPublishedTotal.WithLabelValues(string(msg.Kind)).Inc()
}

// PublishAnomalyAlert publishes an anomaly_alert for a tenant
func (h *Hub) PublishAnomalyAlert(tenantID string, data map[string]interface{}) {
	h.Publish(notification.Message{Kind: notification.KindAnomalyAlert, TenantID: tenantID, Data: data})
}

// PublishBudgetAlert publishes a budget_alert for a tenant
func (h *Hub) PublishBudgetAlert(tenantID string, data map[string]interface{}) {
	h.Publish(notification.Message{Kind: notification.KindBudgetAlert, TenantID: tenantID, Data: data})
}

// PublishCostUpdate publishes a cost_update for a tenant
func (h *Hub) PublishCostUpdate(tenantID string, data map[string]interface{}) {
	h.Publish(notification.Message{Kind: notification.KindCostUpdate, TenantID: tenantID, Data: data})
}

// PublishRecommendation publishes a recommendation event for a tenant
func (h *Hub) PublishRecommendation(tenantID string, data map[string]interface{}) {
	h.Publish(notification.Message{Kind: notification.KindRecommendation, TenantID: tenantID, Data: data})
}

// PublishRemediationUpdate publishes a remediation_update for a tenant
func (h *Hub) PublishRemediationUpdate(tenantID string, data map[string]interface{}) {
	h.Publish(notification.Message{Kind: notification.KindRemediationUpdate, TenantID: tenantID, Data: data})
}

// PublishPolicyViolation publishes a policy_violation event for a tenant
func (h *Hub) PublishPolicyViolation(tenantID string, data map[string]interface{}) {
	h.Publish(notification.Message{Kind: notification.KindPolicyViolation, TenantID: tenantID, Data: data})
}

// remove detaches a subscriber and closes its channel. Runs under the write
// lock so it never races a Publish send.
func (h *Hub) remove(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.tenants[sub.tenantID]
	for i, s := range subs {
		if s == sub {
			h.tenants[sub.tenantID] = append(subs[:i], subs[i+1:]...)
			close(sub.ch)
			metrics.HubSubscribers.Dec()
			return
		}
	}
}
