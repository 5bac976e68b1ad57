// Package migration orchestrates the one-shot transfer of profiles, fiscal
// years, events, payments and budget ledgers from the source document store
// into the relational schema. Stages run strictly in dependency order because
// each later stage resolves identifiers assigned by an earlier one.
package migration

import (
	"context"

	"github.com/cityvizor/pg-migrate/internal/idmap"
	"github.com/cityvizor/pg-migrate/internal/logger"
)

// Options configures a migration run.
type Options struct {
	// AvatarDir is the directory avatar images are exported into. It is
	// removed and recreated at the start of the run.
	AvatarDir string
	// DryRun disables every mutation of the destination store and the
	// filesystem while leaving iteration and bookkeeping unchanged.
	DryRun bool
}

// Summary reports per-stage iteration counts and the number of destination
// writes performed. In dry-run mode the counts match a real run while Writes
// stays zero.
type Summary struct {
	Profiles int
	Years    int
	Events   int
	Payments int
	Budgets  int
	Entries  int
	Writes   int
	DryRun   bool
}

// Run executes the full migration: profiles, fiscal years, events, payments,
// then budget decomposition. A failed stage aborts the run; the destination
// is left in whatever state the clears and inserts reached, and the operator
// reruns the full delete-and-reload.
func Run(ctx context.Context, source Source, target Target, opts Options) (*Summary, error) {
	log := logger.FromContext(ctx)

	writer := NewWriter(target, opts.DryRun)
	avatars := NewAvatarDir(opts.AvatarDir, opts.DryRun)
	copier := NewCopier(source, writer, avatars, idmap.New())

	summary := &Summary{DryRun: opts.DryRun}
	var err error

	if summary.Profiles, err = copier.CopyProfiles(ctx); err != nil {
		return nil, err
	}
	if summary.Years, err = copier.CopyYears(ctx); err != nil {
		return nil, err
	}
	if summary.Events, err = copier.CopyEvents(ctx); err != nil {
		return nil, err
	}
	if summary.Payments, err = copier.CopyPayments(ctx); err != nil {
		return nil, err
	}
	if summary.Budgets, summary.Entries, err = copier.CopyBudgets(ctx); err != nil {
		return nil, err
	}

	summary.Writes = writer.Writes()

	log.Info().
		Int("profiles", summary.Profiles).
		Int("years", summary.Years).
		Int("events", summary.Events).
		Int("payments", summary.Payments).
		Int("budgets", summary.Budgets).
		Int("entries", summary.Entries).
		Int("writes", summary.Writes).
		Bool("dry_run", summary.DryRun).
		Msg("Migration completed")

	return summary, nil
}
