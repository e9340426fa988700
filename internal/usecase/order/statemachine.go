package order

const (
	StatusDraft  = "draft"  // quote, no inventory consumed
	StatusOnHold = "onhold" // goods set aside for the customer
	StatusPaid   = "paid"   // paid in full
	StatusReturn = "return" // return/exchange referencing an original order
)

// InventoryEffect says what a transition does to per-location balances.
type InventoryEffect int

const (
	EffectNone InventoryEffect = iota
	EffectDecrement
	EffectIncrement
)

// Decision is the outcome of the status decision table: whether each order
// line's Amount is applied to its (product, location) balance, and whether a
// payment record for the order's full Total must be appended. Pure data, no
// I/O; the store applies it atomically.
type Decision struct {
	Inventory     InventoryEffect
	RecordPayment bool
}

func isValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusOnHold, StatusPaid, StatusReturn:
		return true
	default:
		return false
	}
}

// DecideTransition resolves the decision table for a status change on an
// existing order. The onhold->draft rule is checked before the generic
// draft rule: goods that were set aside go back on the shelf.
func DecideTransition(prev, next string) Decision {
	switch {
	case prev == StatusOnHold && next == StatusDraft:
		return Decision{Inventory: EffectIncrement}
	case next == StatusDraft:
		// draft orders never consumed inventory
		return Decision{Inventory: EffectNone}
	case next == StatusPaid:
		return Decision{Inventory: EffectDecrement, RecordPayment: true}
	default:
		return Decision{Inventory: EffectDecrement}
	}
}

// DecideCreation resolves the decision table for an order inserted directly
// in a given status. A return only restocks and records a payment when the
// original order it references was paid; otherwise it is a no-op until staff
// sort it out manually.
func DecideCreation(status string, returnOfPaidOriginal bool) Decision {
	switch {
	case status == StatusDraft:
		return Decision{Inventory: EffectNone}
	case status == StatusPaid:
		return Decision{Inventory: EffectDecrement, RecordPayment: true}
	case status == StatusReturn && returnOfPaidOriginal:
		return Decision{Inventory: EffectIncrement, RecordPayment: true}
	case status == StatusReturn:
		return Decision{Inventory: EffectNone}
	default:
		return Decision{Inventory: EffectDecrement}
	}
}
