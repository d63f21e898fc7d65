package domain

// Recipient is the per-run projection of one order used to compose and
// deliver a single message. It is an immutable snapshot for the duration of
// a campaign run and is never persisted.
type Recipient struct {
	OrderID        uint
	OrderNumber    string
	Name           string
	Phone          string
	Product        string
	Total          float64
	TrackingNumber string
}

// DisplayName falls back to a generic salutation when the billing name was
// blank in the imported row.
func (r Recipient) DisplayName() string {
	if r.Name == "" {
		return "Customer"
	}
	return r.Name
}

// ProductName falls back to a generic product reference when the line item
// name was blank in the imported row.
func (r Recipient) ProductName() string {
	if r.Product == "" {
		return "your product"
	}
	return r.Product
}
