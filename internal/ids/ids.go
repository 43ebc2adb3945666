// Package ids generates identifiers for invoices and line items.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator hands out collision-resistant identifiers.
type Generator interface {
	// InvoiceID returns a new identifier for a saved invoice.
	InvoiceID() string

	// ItemID returns a new identifier for a line item.
	ItemID() string
}

// Random generates ULIDs for invoices (lexically sortable by creation time)
// and random UUIDs for line items.
type Random struct{}

func (Random) InvoiceID() string {
	return ulid.Make().String()
}

func (Random) ItemID() string {
	return uuid.New().String()
}

// Sequence generates predictable identifiers ("inv-1", "item-1", ...).
// Intended for tests.
type Sequence struct {
	invoices atomic.Int64
	items    atomic.Int64
}

func (s *Sequence) InvoiceID() string {
	return fmt.Sprintf("inv-%d", s.invoices.Add(1))
}

func (s *Sequence) ItemID() string {
	return fmt.Sprintf("item-%d", s.items.Add(1))
}
