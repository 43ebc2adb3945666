package invoice

import (
	"errors"
	"fmt"

	"github.com/mmynk/invoicer/internal/ids"
	"github.com/mmynk/invoicer/internal/models"
)

var (
	// ErrInvalidIndex is returned by ReorderItem when an index is out of range.
	ErrInvalidIndex = errors.New("invalid item index")

	// ErrUnknownField is returned by UpdateItemField for a field that is not editable.
	ErrUnknownField = errors.New("unknown item field")
)

// Field names an editable line-item field.
type Field string

const (
	FieldDescription Field = "description"
	FieldQuantity    Field = "quantity"
	FieldUnitPrice   Field = "unitPrice"
)

// Direction is the way MoveItem shifts an item.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// AddItem appends an empty line item with a fresh ID.
func AddItem(inv models.Invoice, gen ids.Generator) models.Invoice {
	out := inv.Clone()
	out.Items = append(out.Items, newItem(gen))
	return out
}

// RemoveItem drops the item with the given ID. The boolean is false when no
// such item exists; the returned invoice is then equal to the input.
func RemoveItem(inv models.Invoice, itemID string) (models.Invoice, bool) {
	idx := inv.ItemIndex(itemID)
	if idx < 0 {
		return inv.Clone(), false
	}

	out := inv.Clone()
	out.Items = append(out.Items[:idx], out.Items[idx+1:]...)
	return out, true
}

// UpdateItemField sets one field of an item to value. Numeric fields keep the
// raw text; coercion happens only when totals are computed.
// The boolean is false when the item does not exist.
func UpdateItemField(inv models.Invoice, itemID string, field Field, value string) (models.Invoice, bool, error) {
	switch field {
	case FieldDescription, FieldQuantity, FieldUnitPrice:
	default:
		return inv.Clone(), false, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	idx := inv.ItemIndex(itemID)
	if idx < 0 {
		return inv.Clone(), false, nil
	}

	out := inv.Clone()
	item := &out.Items[idx]
	switch field {
	case FieldDescription:
		item.Description = value
	case FieldQuantity:
		item.Quantity = models.NumericText(value)
	case FieldUnitPrice:
		item.UnitPrice = models.NumericText(value)
	}
	return out, true, nil
}

// MoveItem swaps an item with its neighbour. Moving the first item up or the
// last item down leaves the order unchanged; the list never wraps.
// Unknown IDs and directions are no-ops.
func MoveItem(inv models.Invoice, itemID string, dir Direction) models.Invoice {
	out := inv.Clone()
	idx := out.ItemIndex(itemID)
	if idx < 0 {
		return out
	}

	target := idx
	switch dir {
	case Up:
		target = idx - 1
	case Down:
		target = idx + 1
	}
	if target < 0 || target >= len(out.Items) || target == idx {
		return out
	}

	out.Items[idx], out.Items[target] = out.Items[target], out.Items[idx]
	return out
}

// ReorderItem moves the item at from to position to, shifting the items in
// between. Both indices must address existing items.
func ReorderItem(inv models.Invoice, from, to int) (models.Invoice, error) {
	n := len(inv.Items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return inv.Clone(), fmt.Errorf("%w: from=%d to=%d with %d items", ErrInvalidIndex, from, to, n)
	}

	out := inv.Clone()
	if from == to {
		return out, nil
	}

	moved := out.Items[from]
	items := append(out.Items[:from:from], out.Items[from+1:]...)
	items = append(items[:to], append([]models.LineItem{moved}, items[to:]...)...)
	out.Items = items
	return out, nil
}
