package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopfleet/order-service/internal/domain"
)

// MemoryRepository implements domain.OrderRepository with in-process maps.
// Used by tests and local runs without a DynamoDB endpoint.
type MemoryRepository struct {
	mu       sync.RWMutex
	orders   map[int]*domain.Order
	external map[string]int
	nextID   int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders:   make(map[int]*domain.Order),
		external: make(map[string]int),
	}
}

func (r *MemoryRepository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ExternalIdentifier != nil {
		if _, taken := r.external[*order.ExternalIdentifier]; taken {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateExternalID, *order.ExternalIdentifier)
		}
	}

	r.nextID++
	stored := *order
	stored.ID = r.nextID
	r.orders[stored.ID] = &stored

	if stored.ExternalIdentifier != nil {
		r.external[*stored.ExternalIdentifier] = stored.ID
	}

	result := stored
	return &result, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id int) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, domain.ErrOrderNotFound
	}
	result := *order
	return &result, nil
}

func (r *MemoryRepository) FindByUserID(_ context.Context, userID int) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			result := *order
			orders = append(orders, &result)
		}
	}
	return orders, nil
}

func (r *MemoryRepository) DeleteByID(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists {
		return nil
	}
	if order.ExternalIdentifier != nil {
		delete(r.external, *order.ExternalIdentifier)
	}
	delete(r.orders, id)
	return nil
}
