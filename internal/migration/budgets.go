package migration

import (
	"context"
	"fmt"

	"github.com/cityvizor/pg-migrate/internal/engine"
	"github.com/cityvizor/pg-migrate/internal/logger"
)

// CopyBudgets clears data.accounting and loads the decomposed ledger entries
// for every budget document. Runs last: it consumes both the profile ids and
// the event ids recorded by the earlier stages. Returns the number of budget
// documents iterated and the number of entries emitted.
func (c *Copier) CopyBudgets(ctx context.Context) (int, int, error) {
	log := logger.FromContext(ctx)
	log.Info().Msg("Decomposing budgets")

	if err := c.writer.ClearAccounting(ctx); err != nil {
		return 0, 0, err
	}

	budgets, err := c.source.ListBudgets(ctx)
	if err != nil {
		return 0, 0, err
	}

	var emitted int
	for _, b := range budgets {
		profileID, err := c.ids.Profile(b.Profile.Hex())
		if err != nil {
			return 0, 0, fmt.Errorf("budget %s year %d: %w", b.ID.Hex(), b.Year, err)
		}

		entries := engine.Decompose(b, profileID, c.ids)
		for _, e := range entries {
			if err := c.writer.InsertAccounting(ctx, e); err != nil {
				return 0, 0, err
			}
		}
		emitted += len(entries)
	}

	log.Info().Int("budgets", len(budgets)).Int("entries", emitted).Msg("Budgets decomposed")
	return len(budgets), emitted, nil
}
