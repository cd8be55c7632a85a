package domain

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPaid       OrderStatus = "paid"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type OrderItem struct {
	ID             uint   `json:"id"`
	OrderID        uint   `json:"order_id"`
	PartID         uint   `json:"part_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

type Order struct {
	ID            uint        `json:"id"`
	Number        string      `json:"number"`
	UserID        uint        `json:"user_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	ShippingLine  string      `json:"shipping_line"`
	City          string      `json:"city"`
	PostalCode    string      `json:"postal_code"`
	SubtotalCents int64       `json:"subtotal_cents"`
	TaxCents      int64       `json:"tax_cents"`
	TotalCents    int64       `json:"total_cents"`
	Status        OrderStatus `json:"status"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// StatusMutationState tags the phases of an optimistic status update on a
// cached order list.
type StatusMutationState string

const (
	MutationIdle       StatusMutationState = "idle"
	MutationPending    StatusMutationState = "pending"
	MutationCommitted  StatusMutationState = "committed"
	MutationRolledBack StatusMutationState = "rolled_back"
)

// StatusMutation drives one optimistic order-status change. The cached
// list is patched before the database write; the pre-patch snapshot is
// retained so a rejected write restores it verbatim.
type StatusMutation struct {
	OrderID  uint
	From     OrderStatus
	To       OrderStatus
	State    StatusMutationState
	snapshot []Order
}

func NewStatusMutation(orderID uint, from, to OrderStatus) *StatusMutation {
	return &StatusMutation{
		OrderID: orderID,
		From:    from,
		To:      to,
		State:   MutationIdle,
	}
}

// Apply patches the given order list with the new status and records the
// untouched snapshot. Only legal from the idle state.
func (m *StatusMutation) Apply(orders []Order) []Order {
	if m.State != MutationIdle {
		return orders
	}

	m.snapshot = make([]Order, len(orders))
	copy(m.snapshot, orders)

	patched := make([]Order, len(orders))
	copy(patched, orders)
	for i := range patched {
		if patched[i].ID == m.OrderID {
			patched[i].Status = m.To
		}
	}

	m.State = MutationPending
	return patched
}

// Commit marks the mutation confirmed. The caller is expected to invalidate
// the affected cache keys so ground truth supersedes the optimistic value.
func (m *StatusMutation) Commit() {
	if m.State == MutationPending {
		m.State = MutationCommitted
		m.snapshot = nil
	}
}

// Rollback returns the retained snapshot. Nil when there is nothing to
// restore.
func (m *StatusMutation) Rollback() []Order {
	if m.State != MutationPending {
		return nil
	}
	m.State = MutationRolledBack
	return m.snapshot
}
