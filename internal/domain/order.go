package domain

import (
	"time"
)

type OrderMode string

const (
	OrderModeDraft     OrderMode = "draft"
	OrderModePending   OrderMode = "pending"
	OrderModeApproved  OrderMode = "approved"
	OrderModeCancelled OrderMode = "cancelled"
)

// Order is the persisted entity. ID is assigned by the repository at
// creation time; ExternalIdentifier is an optional caller-supplied key that
// must be unique across all orders.
type Order struct {
	ID                 int       `json:"id"`
	ExternalIdentifier *string   `json:"externalIdentifier,omitempty"`
	Mode               OrderMode `json:"mode,omitempty"`
	UserID             int       `json:"userId"`
	ProductID          *int      `json:"productId"`
	TotalPrice         int       `json:"totalPrice"`
	IsPremiumUser      bool      `json:"isPremiumUser"`
	ContactEmail       string    `json:"contactEmail,omitempty"`
	PaymentMethod      string    `json:"paymentMethod,omitempty"`
	Currency           string    `json:"currency,omitempty"`
	Quantity           int       `json:"quantity,omitempty"`
	DeliveryAddress    *Address  `json:"deliveryAddress,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// NewOrder is the creation payload. ProductID stays a pointer so the
// workflow can tell an absent product reference from product zero. The
// descriptive fields are opaque to the workflow and pass through unchanged.
type NewOrder struct {
	ExternalIdentifier *string   `json:"externalIdentifier,omitempty"`
	Mode               OrderMode `json:"mode,omitempty"`
	UserID             int       `json:"userId"`
	ProductID          *int      `json:"productId"`
	TotalPrice         int       `json:"totalPrice"`
	IsPremiumUser      bool      `json:"isPremiumUser"`
	ContactEmail       string    `json:"contactEmail,omitempty"`
	PaymentMethod      string    `json:"paymentMethod,omitempty"`
	Currency           string    `json:"currency,omitempty"`
	Quantity           int       `json:"quantity,omitempty"`
	DeliveryAddress    *Address  `json:"deliveryAddress,omitempty"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}
