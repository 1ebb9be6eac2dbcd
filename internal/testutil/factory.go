// Package testutil provides test data factories shared by the test suites.
package testutil

import (
	"github.com/google/uuid"

	"github.com/shopfleet/order-service/internal/domain"
)

func IntPtr(v int) *int { return &v }

func StrPtr(v string) *string { return &v }

// BuildOrder crafts a full creation payload with sensible defaults; tests
// override only the fields that drive the outcome under test.
func BuildOrder(override func(*domain.NewOrder)) domain.NewOrder {
	externalID := uuid.New().String()
	order := domain.NewOrder{
		ExternalIdentifier: &externalID,
		Mode:               domain.OrderModeApproved,
		UserID:             1,
		ProductID:          IntPtr(2),
		TotalPrice:         59,
		IsPremiumUser:      true,
		ContactEmail:       "user@example.com",
		PaymentMethod:      "credit_card",
		Currency:           "USD",
		Quantity:           1,
		DeliveryAddress: &domain.Address{
			Street:     "123 Main St",
			City:       "New York",
			State:      "NY",
			PostalCode: "10001",
			Country:    "USA",
		},
	}
	if override != nil {
		override(&order)
	}
	return order
}
