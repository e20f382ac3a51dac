package types

// ShippingAddress is the destination recorded on an order. It is a frozen
// copy of whatever the customer submitted at checkout.
type ShippingAddress struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	District    string `json:"district"`
	City        string `json:"city"`
}

// ShippingSnapshot freezes the zone name and fee that applied at checkout so
// later zone edits never change historical orders.
type ShippingSnapshot struct {
	ZoneName string          `json:"zone_name"`
	Fee      int64           `json:"fee"`
	Address  ShippingAddress `json:"address"`
}
