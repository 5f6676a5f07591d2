package model

import (
	"encoding/json"
	"testing"
)

func TestItemDecodePriceVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string price", `{"_id":"a1","itemName":"Pen","itemCategory":"Stationary","itemPrice":"10"}`, "10"},
		{"numeric price", `{"_id":"a2","itemName":"Pot","itemCategory":"Kitchenware","itemPrice":12.5}`, "12.5"},
		{"integer price", `{"_id":"a3","itemName":"Fan","itemCategory":"Appliance","itemPrice":40}`, "40"},
		{"null price", `{"_id":"a4","itemName":"Mug","itemCategory":"Kitchenware","itemPrice":null}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item Item
			if err := json.Unmarshal([]byte(tt.body), &item); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if item.Price.String() != tt.want {
				t.Errorf("expected price %q, got %q", tt.want, item.Price)
			}
		})
	}
}

func TestPriceMarshalsAsString(t *testing.T) {
	data, err := json.Marshal(Price("10"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"10"` {
		t.Errorf(`expected "10", got %s`, data)
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("expected %q to be valid", c)
		}
	}
	if ValidCategory("Furniture") {
		t.Error("expected 'Furniture' to be invalid")
	}
	if ValidCategory("") {
		t.Error("expected empty category to be invalid")
	}
}

func TestUserInitial(t *testing.T) {
	tests := []struct {
		user User
		want string
	}{
		{User{FirstName: "alice", Username: "a"}, "A"},
		{User{Username: "bob"}, "B"},
		{User{}, "U"},
	}
	for _, tt := range tests {
		if got := tt.user.Initial(); got != tt.want {
			t.Errorf("Initial(%+v) = %q, want %q", tt.user, got, tt.want)
		}
	}
}

func TestUserFullName(t *testing.T) {
	u := User{FirstName: " Ada ", LastName: " Lovelace "}
	if got := u.FullName(); got != "Ada Lovelace" {
		t.Errorf("expected 'Ada Lovelace', got %q", got)
	}
	if got := (User{}).FullName(); got != "" {
		t.Errorf("expected empty full name, got %q", got)
	}
}
