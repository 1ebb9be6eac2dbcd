package events

import (
	"time"

	"github.com/shopfleet/order-service/internal/domain"
)

// Topic and routing-key pairs this service produces and consumes.
const (
	TopicOrders        = "order.events"
	RoutingKeyNewOrder = "order.events.new"

	TopicUsers            = "user.events"
	RoutingKeyUserDeleted = "user.deleted"
)

// OrderCreatedEvent announces a persisted order. It carries the full
// creation payload so consumers never need to call back.
type OrderCreatedEvent struct {
	EventID   string          `json:"event_id"`
	OrderID   int             `json:"order_id"`
	Order     domain.NewOrder `json:"order"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"request_id"`
}

// UserDeletedEvent arrives from the users service when an account is
// removed; the order service drops the user's orders in response.
type UserDeletedEvent struct {
	ID int `json:"id"`
}
