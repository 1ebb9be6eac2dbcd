package service

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopfleet/order-service/internal/domain"
	"github.com/shopfleet/order-service/internal/events"
	"github.com/shopfleet/order-service/internal/users"
	"github.com/shopfleet/order-service/pkg/apperror"
	"github.com/shopfleet/order-service/pkg/config"
)

// Collaborator contracts. Tests inject fakes implementing these instead of
// patching shared instances.

type UserVerifier interface {
	Verify(ctx context.Context, userID int, timeout time.Duration) (*users.User, error)
}

type Notifier interface {
	Send(ctx context.Context, subject, body, recipient string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic, routingKey string, payload any) error
}

type OrderService struct {
	orderRepo  domain.OrderRepository
	verifier   UserVerifier
	notifier   Notifier
	publisher  EventPublisher
	adminEmail string
	logger     *zap.Logger
}

func NewOrderService(
	orderRepo domain.OrderRepository,
	verifier UserVerifier,
	notifier Notifier,
	publisher EventPublisher,
	adminEmail string,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		verifier:   verifier,
		notifier:   notifier,
		publisher:  publisher,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// CreateOrder runs the creation workflow in strict sequence: validate,
// verify the user, apply the premium discount, persist, notify when mails
// are enabled, publish the new-order event. There is no rollback: once
// persistence committed, later failures surface to the caller while the
// order remains stored. Notifier and publisher failures propagate like any
// other step failure.
func (s *OrderService) CreateOrder(ctx context.Context, req domain.NewOrder, requestID string) (*domain.Order, error) {
	if req.ProductID == nil {
		return nil, apperror.New(apperror.KindInvalidOrder,
			"no product-id specified", http.StatusBadRequest)
	}

	user, err := s.verifier.Verify(ctx, req.UserID, config.VerifyTimeout())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.New(apperror.KindUserDoesntExist,
			fmt.Sprintf("the user %d doesnt exist", req.UserID),
			http.StatusNotFound)
	}

	// Applied once per creation; reapplying would compound the discount.
	if req.IsPremiumUser {
		req.TotalPrice = int(math.Ceil(float64(req.TotalPrice) * 0.9))
	}

	now := time.Now()
	order := &domain.Order{
		ExternalIdentifier: req.ExternalIdentifier,
		Mode:               req.Mode,
		UserID:             req.UserID,
		ProductID:          req.ProductID,
		TotalPrice:         req.TotalPrice,
		IsPremiumUser:      req.IsPremiumUser,
		ContactEmail:       req.ContactEmail,
		PaymentMethod:      req.PaymentMethod,
		Currency:           req.Currency,
		Quantity:           req.Quantity,
		DeliveryAddress:    req.DeliveryAddress,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	saved, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		if config.SendMailsEnabled() {
			// Best effort: the persistence error is the one the caller
			// must see even if the failure mail cannot be delivered.
			if mailErr := s.notifier.Send(ctx, "Order save failed",
				fmt.Sprintf("saving order for user %d failed: %v", req.UserID, err),
				s.adminEmail); mailErr != nil {
				s.logger.Error("failed to send order-failure mail", zap.Error(mailErr))
			}
		}
		return nil, err
	}

	if config.SendMailsEnabled() {
		body := fmt.Sprintf("user %d ordered %d", saved.UserID, *saved.ProductID)
		if err := s.notifier.Send(ctx, "New order was placed", body, s.adminEmail); err != nil {
			return nil, err
		}
	}

	event := events.OrderCreatedEvent{
		EventID:   uuid.New().String(),
		OrderID:   saved.ID,
		Order:     req,
		Timestamp: time.Now(),
		RequestID: requestID,
	}
	if err := s.publisher.Publish(ctx, events.TopicOrders, events.RoutingKeyNewOrder, event); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.Int("order_id", saved.ID),
		zap.Int("user_id", saved.UserID),
		zap.Int("total_price", saved.TotalPrice),
		zap.String("request_id", requestID))

	return saved, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// DeleteOrder removes the order; deleting an absent id succeeds.
func (s *OrderService) DeleteOrder(ctx context.Context, id int) error {
	return s.orderRepo.DeleteByID(ctx, id)
}
