package migration

import (
	"context"

	"github.com/cityvizor/pg-migrate/internal/domain"
)

// Writer sequences destination writes and suppresses every mutation in dry-run
// mode while keeping the caller's control flow identical. It counts performed
// writes so a dry run can be verified to have performed none.
//
// Generated identifiers are never obtained in dry-run mode; InsertProfile
// returns 0 and identifier resolution downstream is undefined. Dry-run output
// exists for iteration counts and write auditing, not for realistic ids.
type Writer struct {
	target Target
	dryRun bool
	writes int
}

// NewWriter wraps a destination store. With dryRun set, all calls become
// no-ops that still report success.
func NewWriter(target Target, dryRun bool) *Writer {
	return &Writer{target: target, dryRun: dryRun}
}

// DryRun reports whether the writer suppresses mutations.
func (w *Writer) DryRun() bool { return w.dryRun }

// Writes reports the number of mutations performed against the target.
func (w *Writer) Writes() int { return w.writes }

func (w *Writer) ClearProfiles(ctx context.Context) error {
	if w.dryRun {
		return nil
	}
	w.writes++
	return w.target.ClearProfiles(ctx)
}

func (w *Writer) InsertProfile(ctx context.Context, row domain.ProfileRow) (int64, error) {
	if w.dryRun {
		return 0, nil
	}
	w.writes++
	return w.target.InsertProfile(ctx, row)
}

func (w *Writer) ClearYears(ctx context.Context) error {
	if w.dryRun {
		return nil
	}
	w.writes++
	return w.target.ClearYears(ctx)
}

func (w *Writer) InsertYear(ctx context.Context, row domain.YearRow) error {
	if w.dryRun {
		return nil
	}
	w.writes++
	return w.target.InsertYear(ctx, row)
}

func (w *Writer) ClearEvents(ctx context.Context) error {
	if w.dryRun {
		return nil
	}
	w.writes++
	return w.target.ClearEvents(ctx)
}

func (w *Writer) InsertEvent(ctx context.Context, row domain.EventRow) error {
	if w.dryRun {
		return nil
	}
	w.writes++
	return w.target.InsertEvent(ctx, row)
}

func (w *Writer) ClearPayments(ctx context.Context) error {
	if w.dryRun {
		return nil
	}
	w.writes++
	return w.target.ClearPayments(ctx)
}

func (w *Writer) InsertPayment(ctx context.Context, row domain.PaymentRow) error {
	if w.dryRun {
		return nil
	}
	w.writes++
	return w.target.InsertPayment(ctx, row)
}

func (w *Writer) ClearAccounting(ctx context.Context) error {
	if w.dryRun {
		return nil
	}
	w.writes++
	return w.target.ClearAccounting(ctx)
}

func (w *Writer) InsertAccounting(ctx context.Context, e domain.AccountingEntry) error {
	if w.dryRun {
		return nil
	}
	w.writes++
	return w.target.InsertAccounting(ctx, e)
}
