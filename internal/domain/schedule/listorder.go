package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// OrderManager mutates case ordering within a single theatre-day while
// keeping the list-order set exactly {1..N}. It never touches start times
// or staff: list order is priority semantics (order 1 is the "gold"
// patient), not clock time.
type OrderManager struct {
	repo Repository
}

func NewOrderManager(repo Repository) *OrderManager {
	return &OrderManager{repo: repo}
}

// SwapOrder exchanges the list orders of two cases on the same theatre-day.
// Applying it twice restores the original ordering.
func (m *OrderManager) SwapOrder(ctx context.Context, caseA, caseB uuid.UUID) error {
	if caseA == caseB {
		return fmt.Errorf("%w: a case cannot be swapped with itself", ErrInvalidReorder)
	}
	a, err := m.repo.GetByID(ctx, caseA)
	if err != nil {
		return err
	}
	b, err := m.repo.GetByID(ctx, caseB)
	if err != nil {
		return err
	}
	if a.TheatreID != b.TheatreID || !a.Date.Equal(b.Date) {
		return ErrInvalidReorder
	}
	return m.repo.CompareAndSwapOrders(ctx, a.TheatreID, a.Date, []OrderUpdate{
		{CaseID: a.ID, FromOrder: a.ListOrder, ToOrder: b.ListOrder},
		{CaseID: b.ID, FromOrder: b.ListOrder, ToOrder: a.ListOrder},
	})
}

// MoveToPosition moves a case to targetOrder within its theatre-day,
// shifting every intervening case by one so the sequence stays contiguous.
func (m *OrderManager) MoveToPosition(ctx context.Context, caseID uuid.UUID, targetOrder int) error {
	c, err := m.repo.GetByID(ctx, caseID)
	if err != nil {
		return err
	}
	siblings, err := m.repo.ListByTheatreDate(ctx, c.TheatreID, c.Date)
	if err != nil {
		return err
	}
	if targetOrder < 1 || targetOrder > len(siblings) {
		return fmt.Errorf("%w: position %d not in 1..%d", ErrBadPosition, targetOrder, len(siblings))
	}
	if targetOrder == c.ListOrder {
		return nil
	}

	var updates []OrderUpdate
	if targetOrder < c.ListOrder {
		// Moving up: everything in [target, current) shifts down one.
		for _, s := range siblings {
			if s.ListOrder >= targetOrder && s.ListOrder < c.ListOrder {
				updates = append(updates, OrderUpdate{CaseID: s.ID, FromOrder: s.ListOrder, ToOrder: s.ListOrder + 1})
			}
		}
	} else {
		// Moving down: everything in (current, target] shifts up one.
		for _, s := range siblings {
			if s.ListOrder > c.ListOrder && s.ListOrder <= targetOrder {
				updates = append(updates, OrderUpdate{CaseID: s.ID, FromOrder: s.ListOrder, ToOrder: s.ListOrder - 1})
			}
		}
	}
	updates = append(updates, OrderUpdate{CaseID: c.ID, FromOrder: c.ListOrder, ToOrder: targetOrder})
	return m.repo.CompareAndSwapOrders(ctx, c.TheatreID, c.Date, updates)
}
