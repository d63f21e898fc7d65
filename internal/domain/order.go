package domain

import "time"

// Order mirrors one row of the dashboard's orders table. Rows originate from
// storefront CSV exports, so order numbers can repeat across re-imports; ID is
// the only unique key.
type Order struct {
	ID             uint
	OrderSource    string
	OrderNumber    string
	Subtotal       float64
	Shipping       float64
	Total          float64
	DiscountCode   string
	DiscountAmount float64
	Quantity       int
	ItemName       string
	BillingName    string
	BillingPhone   string
	BillingStreet  string
	BillingCity    string
	Status         string
	ShippingStatus string
	CustomerType   string
	CODAmount      float64
	Courier        string
	TrackingNumber string
	CreatedAt      time.Time
}

const (
	OrderStatusToProcess     = "To Process"
	OrderStatusNotResponding = "Not Responding"
	OrderStatusPending       = "Pending"
	OrderStatusConfirmed     = "Confirmed"
	OrderStatusCancelled     = "Cancelled"
)

const (
	ShippingStatusShipped        = "Shipped"
	ShippingStatusFailedDelivery = "Failed Delivery"
)

const CustomerTypeValued = "Valued"
