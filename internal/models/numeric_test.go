package models

import (
	"encoding/json"
	"testing"
)

func TestNumericTextUnmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  NumericText
	}{
		{`2`, "2"},
		{`12.50`, "12.50"},
		{`"12.50"`, "12.50"},
		{`"abc"`, "abc"},
		{`"1."`, "1."},
		{`null`, ""},
		{`-3e2`, "-3e2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got NumericText
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNumericTextMarshal(t *testing.T) {
	tests := []struct {
		value NumericText
		want  string
	}{
		{"2", `2`},
		{"0.00", `0.00`},
		{"abc", `"abc"`},
		{"1.", `"1."`},
		{"", `""`},
		{" 5", `" 5"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			got, err := json.Marshal(tt.value)
			if err != nil {
				t.Fatalf("Marshal(%q) error = %v", tt.value, err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal(%q) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestInvoiceJSONKeepsRawItemText(t *testing.T) {
	inv := Invoice{
		InvoiceNumber: "INV-000001",
		Items: []LineItem{
			{ID: "a", Description: "Design", Quantity: "abc", UnitPrice: "50"},
		},
		TaxPercent:     "10",
		DiscountAmount: "",
		Status:         StatusUnpaid,
	}

	data, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Invoice
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded.ID != "" {
		t.Errorf("expected unsaved invoice to stay unsaved, got ID %q", decoded.ID)
	}
	if decoded.Items[0].Quantity != "abc" {
		t.Errorf("quantity = %q, want %q", decoded.Items[0].Quantity, "abc")
	}
	if decoded.Items[0].UnitPrice != "50" {
		t.Errorf("unit price = %q, want %q", decoded.Items[0].UnitPrice, "50")
	}
}

func TestInvoiceClone(t *testing.T) {
	original := Invoice{Items: []LineItem{{ID: "a", Description: "one"}}}
	clone := original.Clone()
	clone.Items[0].Description = "changed"

	if original.Items[0].Description != "one" {
		t.Error("Clone shares the items slice with the original")
	}
}
