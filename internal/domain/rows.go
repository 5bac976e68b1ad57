package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tags an accounting entry as actual/realized or planned/budgeted.
type EntryType string

const (
	// EntryActual marks realized amounts ("UCT" in the upstream accounting system).
	EntryActual EntryType = "UCT"
	// EntryPlanned marks budgeted amounts ("ROZ").
	EntryPlanned EntryType = "ROZ"
)

// ProfileRow maps to app.profiles. The id column is assigned by the database
// sequence and returned on insert.
type ProfileRow struct {
	Name           string
	Status         string
	URL            string
	Email          string
	ICO            string
	Edesky         *int64
	Mapasamospravy *int64
	GpsX           *float64
	GpsY           *float64
	AvatarType     *string
}

// YearRow maps to app.years.
type YearRow struct {
	ProfileID int64
	Year      int
	Validity  *time.Time
	Hidden    bool
}

// EventRow maps to data.events. ID is the upstream srcId, not a generated key.
type EventRow struct {
	ID        int64
	ProfileID int64
	Year      int
	Name      string
}

// PaymentRow maps to data.payments. Event is null when the source payment
// references no event or an event that was never migrated.
type PaymentRow struct {
	ProfileID        int64
	Year             int
	Paragraph        int64
	Item             int64
	Event            *int64
	Amount           decimal.Decimal
	Date             *time.Time
	CounterpartyID   string
	CounterpartyName string
	Description      string
}

// AccountingEntry maps to data.accounting: one flat ledger row produced by
// budget decomposition. Exactly one of Paragraph and Item is set. Event is
// null on residual entries.
type AccountingEntry struct {
	ProfileID int64
	Year      int
	Type      EntryType
	Paragraph *int64
	Item      *int64
	Event     *int64
	Amount    decimal.Decimal
}
