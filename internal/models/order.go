package models

// OrderStatus enumerates the order lifecycle states the platform understands.
// The gateway never validates transitions; the backend is the source of truth
// for which moves are legal.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPickedUp       OrderStatus = "picked_up"
	StatusReceived       OrderStatus = "received"
	StatusInProgress     OrderStatus = "in_progress"
	StatusWashing        OrderStatus = "washing"
	StatusDrying         OrderStatus = "drying"
	StatusFolding        OrderStatus = "folding"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCompleted      OrderStatus = "completed"
	StatusCancelled      OrderStatus = "cancelled"
)

// IsValid reports whether the status belongs to the known enumeration.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPickedUp, StatusReceived,
		StatusInProgress, StatusWashing, StatusDrying, StatusFolding,
		StatusReady, StatusOutForDelivery, StatusDelivered, StatusCompleted,
		StatusCancelled:
		return true
	}
	return false
}

// Order mirrors the backend order record.
type Order struct {
	ID                int64       `json:"id"`
	OrderNumber       string      `json:"order_number"`
	CustomerID        int64       `json:"customer_id"`
	PickupAddressID   int64       `json:"pickup_address_id"`
	DeliveryAddressID int64       `json:"delivery_address_id"`
	Status            OrderStatus `json:"status"`
	TotalAmount       float64     `json:"total_amount"`
	CreatedAt         string      `json:"created_at"`
	Items             []OrderItem `json:"items,omitempty"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID         int64   `json:"id,omitempty"`
	OrderID    int64   `json:"order_id,omitempty"`
	ServiceID  int64   `json:"service_id"`
	ItemName   string  `json:"item_name"`
	ItemType   string  `json:"item_type"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// OrderCreateRequest is the payload accepted on order creation and forwarded
// to the backend.
type OrderCreateRequest struct {
	CustomerID        int64       `json:"customer_id"`
	PickupAddressID   int64       `json:"pickup_address_id"`
	DeliveryAddressID int64       `json:"delivery_address_id"`
	PickupDate        string      `json:"pickup_date"`
	PickupTimeSlot    string      `json:"pickup_time_slot"`
	DeliveryDate      string      `json:"delivery_date"`
	DeliveryTimeSlot  string      `json:"delivery_time_slot"`
	Items             []OrderItem `json:"items"`
}

// FillItemTotals computes missing line totals from quantity and unit price.
func (r *OrderCreateRequest) FillItemTotals() {
	for i := range r.Items {
		if r.Items[i].TotalPrice == 0 {
			r.Items[i].TotalPrice = r.Items[i].UnitPrice * float64(r.Items[i].Quantity)
		}
	}
}
