package cart

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Cart maps item ids to selection records and remembers insertion order.
// A Cart is not safe for concurrent use; the owner serializes access.
type Cart struct {
	records map[string]*SelectionRecord
	order   []string
}

func New() *Cart {
	return &Cart{
		records: make(map[string]*SelectionRecord),
	}
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

// SelectItem adds one unit of itemID. The first call creates the record;
// name and price given on later calls are ignored.
func (c *Cart) SelectItem(itemID, name string, price int64) error {
	if strings.TrimSpace(itemID) == "" {
		return fmt.Errorf("%w: empty item id", ErrInvalidItem)
	}
	if price < 0 {
		return fmt.Errorf("%w: negative price %d for %q", ErrInvalidItem, price, itemID)
	}

	if c.records == nil {
		c.records = make(map[string]*SelectionRecord)
	}

	record, ok := c.records[itemID]
	if ok {
		price = record.Price
	}
	if !c.canAdd(record, price, 1) {
		return fmt.Errorf("%w: total limit reached for %q", ErrInvalidItem, itemID)
	}

	if !ok {
		record = &SelectionRecord{Name: name, Price: price, Quantity: 0}
		c.records[itemID] = record
		c.order = append(c.order, itemID)
	}
	record.Quantity++
	return nil
}

// UpdateQuantity adds delta to the quantity of itemID and removes the
// record once the quantity drops to zero or below.
func (c *Cart) UpdateQuantity(itemID string, delta int) error {
	record, ok := c.records[itemID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotSelected, itemID)
	}
	if delta > 0 && !c.canAdd(record, record.Price, delta) {
		return fmt.Errorf("%w: quantity limit reached for %q", ErrInvalidItem, itemID)
	}

	record.Quantity += delta
	if record.Quantity <= 0 {
		c.remove(itemID)
	}
	return nil
}

// Reset drops every record.
func (c *Cart) Reset() {
	c.records = make(map[string]*SelectionRecord)
	c.order = nil
}

// canAdd reports whether n more units at price keep the record quantity
// within int and the cart total within int64. record may be nil.
func (c *Cart) canAdd(record *SelectionRecord, price int64, n int) bool {
	if record != nil && record.Quantity > math.MaxInt-n {
		return false
	}
	if price == 0 {
		return true
	}
	return int64(n) <= (math.MaxInt64-c.Total())/price
}

func (c *Cart) remove(itemID string) {
	delete(c.records, itemID)
	if i := slices.Index(c.order, itemID); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (c *Cart) Get(itemID string) (SelectionRecord, bool) {
	record, ok := c.records[itemID]
	if !ok {
		return SelectionRecord{}, false
	}
	return *record, true
}

func (c *Cart) Len() int {
	return len(c.order)
}

// Entries returns copies of the records in insertion order.
func (c *Cart) Entries() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		entries = append(entries, Entry{ItemID: id, SelectionRecord: *c.records[id]})
	}
	return entries
}

// Total sums the subtotals of every record.
func (c *Cart) Total() int64 {
	var total int64
	for _, record := range c.records {
		total += record.Subtotal()
	}
	return total
}
