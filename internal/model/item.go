package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Item is a catalog item as the backend serves it. The backend uses
// itemName/itemCategory/itemPrice on reads and creates, but plain
// name/category/price on partial updates; the update payload lives in
// the backend client, not here.
type Item struct {
	ID       string `json:"_id"`
	Name     string `json:"itemName"`
	Category string `json:"itemCategory"`
	Price    Price  `json:"itemPrice"`
}

// Item categories (fixed set).
const (
	CategoryStationary  = "Stationary"
	CategoryKitchenware = "Kitchenware"
	CategoryAppliance   = "Appliance"
)

// Categories lists all item categories in display order.
var Categories = []string{
	CategoryStationary,
	CategoryKitchenware,
	CategoryAppliance,
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Price is a display-only price value. The backend has historically
// returned prices both as JSON numbers and as strings (they originate
// from free-form inputs), so decoding accepts either. The front end
// never computes with prices.
type Price string

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding price: %w", err)
		}
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding price: %w", err)
	}
	*p = Price(n.String())
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

func (p Price) String() string {
	return string(p)
}
