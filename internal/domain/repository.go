package domain

import (
	"context"
	"errors"
)

var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrDuplicateExternalID is returned when an order carries an
	// external identifier that another order already owns.
	ErrDuplicateExternalID = errors.New("external identifier already exists")
)

// OrderRepository is the storage contract consumed by the workflow. Create
// assigns the numeric identifier and enforces external-identifier
// uniqueness. DeleteByID is idempotent: deleting an absent id is not an
// error.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) (*Order, error)
	FindByID(ctx context.Context, id int) (*Order, error)
	FindByUserID(ctx context.Context, userID int) ([]*Order, error)
	DeleteByID(ctx context.Context, id int) error
}
