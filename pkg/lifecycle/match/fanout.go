package match

import (
	"context"

	"campusfound/beacon/pkg/docstore"
	"campusfound/beacon/pkg/lifecycle/normalize"
)

// Dispatch is the ItemCreated subscriber. It normalizes the raw item
// record and runs the fan-out on a detached goroutine.
//
// The contract toward the caller is strictly non-blocking and
// best-effort: item creation is already durable by the time Dispatch
// runs, so nothing here may fail, block, or cancel the upstream
// operation. Errors are logged and counted, never returned, and the
// fan-out keeps running after the caller's context is released.
func (m *Matcher) Dispatch(ctx context.Context, itemID string, fields docstore.Fields) {
	item := normalize.Item(itemID, fields)

	// Detach from the caller's cancellation: the item-creation request
	// finishing must not abort an in-flight fan-out.
	fanCtx := context.WithoutCancel(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("fan-out panicked",
					"item_id", item.ID,
					"panic", r,
				)
			}
		}()

		if _, err := m.Notify(fanCtx, item); err != nil {
			m.logger.Error("fan-out failed",
				"item_id", item.ID,
				"error", err,
			)
		}
	}()
}
