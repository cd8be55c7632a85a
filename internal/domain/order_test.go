package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trottiparts/trottiparts-api/internal/domain"
)

func TestOrderStatus(t *testing.T) {
	assert.True(t, domain.OrderPending.IsValid())
	assert.True(t, domain.OrderCancelled.IsValid())
	assert.False(t, domain.OrderStatus("mystery").IsValid())

	assert.True(t, domain.OrderDelivered.IsTerminal())
	assert.True(t, domain.OrderCancelled.IsTerminal())
	assert.False(t, domain.OrderShipped.IsTerminal())
}

func TestStatusMutation_ApplyPatchesOnlyTarget(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, Status: domain.OrderPending},
		{ID: 2, Status: domain.OrderPaid},
	}

	m := domain.NewStatusMutation(2, domain.OrderPaid, domain.OrderShipped)
	patched := m.Apply(orders)

	assert.Equal(t, domain.MutationPending, m.State)
	assert.Equal(t, domain.OrderPending, patched[0].Status)
	assert.Equal(t, domain.OrderShipped, patched[1].Status)

	// The input list is untouched.
	assert.Equal(t, domain.OrderPaid, orders[1].Status)
}

func TestStatusMutation_RollbackRestoresSnapshotVerbatim(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, Number: "TP-AAAA0001", Status: domain.OrderPending},
		{ID: 2, Number: "TP-BBBB0002", Status: domain.OrderPaid},
	}

	m := domain.NewStatusMutation(1, domain.OrderPending, domain.OrderProcessing)
	m.Apply(orders)

	restored := m.Rollback()

	assert.Equal(t, domain.MutationRolledBack, m.State)
	assert.Equal(t, orders, restored)
}

func TestStatusMutation_CommitDropsSnapshot(t *testing.T) {
	m := domain.NewStatusMutation(1, domain.OrderPending, domain.OrderPaid)
	m.Apply([]domain.Order{{ID: 1, Status: domain.OrderPending}})

	m.Commit()

	assert.Equal(t, domain.MutationCommitted, m.State)
	assert.Nil(t, m.Rollback())
}

func TestStatusMutation_ApplyOnlyFromIdle(t *testing.T) {
	orders := []domain.Order{{ID: 1, Status: domain.OrderPending}}

	m := domain.NewStatusMutation(1, domain.OrderPending, domain.OrderPaid)
	m.Apply(orders)

	// A second Apply is a no-op and returns the input unchanged.
	again := m.Apply(orders)
	assert.Equal(t, orders, again)
	assert.Equal(t, domain.MutationPending, m.State)
}

func TestStatusMutation_RollbackOnlyFromPending(t *testing.T) {
	m := domain.NewStatusMutation(1, domain.OrderPending, domain.OrderPaid)

	assert.Nil(t, m.Rollback())
	assert.Equal(t, domain.MutationIdle, m.State)
}
