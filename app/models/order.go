package models

import "time"

const (
	OrderPending = "payment pending"
	OrderPaid    = "paid"
)

// OrderLine snapshots a cart line at checkout. Price is in cents.
type OrderLine struct {
	ItemCode int    `json:"itemCode"`
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// Order is stored under orders/<id>.json. Amount is in cents.
type Order struct {
	ID              string      `json:"id"`
	Email           string      `json:"email"`
	DeliveryAddress string      `json:"deliveryAddress"`
	CartID          string      `json:"cartId"`
	Items           []OrderLine `json:"items"`
	Amount          int64       `json:"amount"`
	Currency        string      `json:"currency"`
	Status          string      `json:"status"`
	StripeID        string      `json:"stripeId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	PaidAt          *time.Time  `json:"paidAt,omitempty"`
}

func (o *Order) Paid() bool { return o.Status == OrderPaid }
