package cart

// SelectionRecord is one selected menu item inside a cart.
// OrderNumber is carried for snapshot compatibility only and stays 0.
type SelectionRecord struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	OrderNumber int    `json:"orderNumber"`
}

// Subtotal is price * quantity, no rounding.
func (r SelectionRecord) Subtotal() int64 {
	return r.Price * int64(r.Quantity)
}

// Entry pairs a record with its item id, used for ordered iteration.
type Entry struct {
	ItemID string
	SelectionRecord
}
