package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid reports membership in the fixed status set. Any status may follow any other.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// DefaultTrackingStatus is the shipment status of a freshly created order.
const DefaultTrackingStatus = "pending"

type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

type TrackingEntry struct {
	Date     time.Time `bson:"date" json:"date"`
	Location string    `bson:"location" json:"location"`
	Status   string    `bson:"status" json:"status"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Customer        primitive.ObjectID `bson:"customer" json:"customer"`
	Artisan         primitive.ObjectID `bson:"artisan" json:"artisan"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	Status          OrderStatus        `bson:"status" json:"status"`
	TrackingNumber  string             `bson:"trackingNumber" json:"trackingNumber"`
	Carrier         string             `bson:"carrier" json:"carrier"`
	TrackingStatus  string             `bson:"trackingStatus" json:"trackingStatus"`
	TrackingURL     string             `bson:"trackingUrl" json:"trackingUrl"`
	TrackingHistory []TrackingEntry    `bson:"trackingHistory" json:"trackingHistory"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// TrackingPatch is a partial update of an order's tracking snapshot and status.
// Nil fields are left untouched.
type TrackingPatch struct {
	TrackingNumber *string
	Carrier        *string
	TrackingStatus *string
	TrackingURL    *string
	Status         *OrderStatus
}

// OrderFilter selects orders; nil references match everything.
type OrderFilter struct {
	Customer    *primitive.ObjectID
	Artisan     *primitive.ObjectID
	NewestFirst bool
}

type OrderAnalytics struct {
	TotalOrders  int64   `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// OrderItemView is a line item with its product resolved when it still exists.
type OrderItemView struct {
	ProductID primitive.ObjectID `json:"productId"`
	Product   *Product           `json:"product,omitempty"`
	Quantity  int                `json:"quantity"`
}

// OrderView is the display shape of an order with customer and products resolved.
type OrderView struct {
	ID              primitive.ObjectID `json:"id"`
	Customer        UserSummary        `json:"customer"`
	Artisan         primitive.ObjectID `json:"artisan"`
	Items           []OrderItemView    `json:"items"`
	TotalPrice      float64            `json:"totalPrice"`
	Status          OrderStatus        `json:"status"`
	TrackingNumber  string             `json:"trackingNumber"`
	Carrier         string             `json:"carrier"`
	TrackingStatus  string             `json:"trackingStatus"`
	TrackingURL     string             `json:"trackingUrl"`
	TrackingHistory []TrackingEntry    `json:"trackingHistory"`
	CreatedAt       time.Time          `json:"createdAt"`
}
