package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// MarshalJSON writes the cart as {"<itemId>": {name, price, quantity, orderNumber}}
// keeping insertion order, so a restored cart renders in the same order.
func (c *Cart) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(c.records[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the cart contents with a snapshot.
// Records with a non-positive quantity are dropped.
func (c *Cart) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if tok == nil {
		c.Reset()
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("snapshot must be a JSON object")
	}

	restored := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read snapshot key: %w", err)
		}
		id, _ := tok.(string)

		var record SelectionRecord
		if err := dec.Decode(&record); err != nil {
			return fmt.Errorf("read snapshot record %q: %w", id, err)
		}
		if id == "" || record.Quantity <= 0 || record.Price < 0 {
			continue
		}
		if _, dup := restored.records[id]; dup {
			restored.remove(id)
		}
		if !restored.canAdd(nil, record.Price, record.Quantity) {
			continue
		}
		restored.order = append(restored.order, id)
		restored.records[id] = &record
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	c.records = restored.records
	c.order = restored.order
	return nil
}
