package migration

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cityvizor/pg-migrate/internal/domain"
)

// Source is the document-store surface the migration reads from.
// *mongosrc.Store satisfies this; tests substitute fakes.
type Source interface {
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	ProfileAvatar(ctx context.Context, id primitive.ObjectID) (*domain.Avatar, error)
	ListEtls(ctx context.Context) ([]domain.Etl, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
	ListBudgets(ctx context.Context) ([]domain.Budget, error)
}

// Target is the relational-store surface the migration writes through.
// *pgstore.Store satisfies this; tests substitute fakes.
type Target interface {
	ClearProfiles(ctx context.Context) error
	InsertProfile(ctx context.Context, row domain.ProfileRow) (int64, error)
	ClearYears(ctx context.Context) error
	InsertYear(ctx context.Context, row domain.YearRow) error
	ClearEvents(ctx context.Context) error
	InsertEvent(ctx context.Context, row domain.EventRow) error
	ClearPayments(ctx context.Context) error
	InsertPayment(ctx context.Context, row domain.PaymentRow) error
	ClearAccounting(ctx context.Context) error
	InsertAccounting(ctx context.Context, e domain.AccountingEntry) error
}
