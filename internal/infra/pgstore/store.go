// Package pgstore writes the destination relational schema. The migration
// owns the destination tables for the duration of the run: every table is
// cleared before its load and rows are only ever inserted, never updated.
package pgstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cityvizor/pg-migrate/internal/domain"
)

// Store holds a shared connection pool to the destination database.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against the destination database and verifies it with
// a ping.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgstore: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgstore: ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// ClearProfiles deletes all profile rows and restarts the id sequence, so the
// reload assigns ids from 1 again.
func (s *Store) ClearProfiles(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM app.profiles`); err != nil {
		return fmt.Errorf("ClearProfiles: delete: %w", err)
	}
	if _, err := s.pool.Exec(ctx, `ALTER SEQUENCE app.profiles_id_seq RESTART WITH 1`); err != nil {
		return fmt.Errorf("ClearProfiles: restart sequence: %w", err)
	}
	return nil
}

// InsertProfile inserts one profile row and returns the generated id.
func (s *Store) InsertProfile(ctx context.Context, row domain.ProfileRow) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO app.profiles
			(name, status, url, email, ico, edesky, mapasamospravy, gps_x, gps_y, avatar_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		row.Name, row.Status, row.URL, row.Email, row.ICO,
		row.Edesky, row.Mapasamospravy, row.GpsX, row.GpsY, row.AvatarType,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("InsertProfile %q: %w", row.Name, err)
	}
	return id, nil
}

// ClearYears deletes all fiscal-year rows.
func (s *Store) ClearYears(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM app.years`); err != nil {
		return fmt.Errorf("ClearYears: %w", err)
	}
	return nil
}

// InsertYear inserts one fiscal-year row.
func (s *Store) InsertYear(ctx context.Context, row domain.YearRow) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO app.years (profile_id, year, validity, hidden)
		VALUES ($1, $2, $3, $4)`,
		row.ProfileID, row.Year, row.Validity, row.Hidden,
	)
	if err != nil {
		return fmt.Errorf("InsertYear profile=%d year=%d: %w", row.ProfileID, row.Year, err)
	}
	return nil
}

// ClearEvents deletes all event rows.
func (s *Store) ClearEvents(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM data.events`); err != nil {
		return fmt.Errorf("ClearEvents: %w", err)
	}
	return nil
}

// InsertEvent inserts one event row keyed by its upstream numeric id.
func (s *Store) InsertEvent(ctx context.Context, row domain.EventRow) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO data.events (id, profile_id, year, name)
		VALUES ($1, $2, $3, $4)`,
		row.ID, row.ProfileID, row.Year, row.Name,
	)
	if err != nil {
		return fmt.Errorf("InsertEvent %d: %w", row.ID, err)
	}
	return nil
}

// ClearPayments deletes all payment rows.
func (s *Store) ClearPayments(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM data.payments`); err != nil {
		return fmt.Errorf("ClearPayments: %w", err)
	}
	return nil
}

// InsertPayment inserts one payment row. The unit column is not carried by the
// source data and is always null.
func (s *Store) InsertPayment(ctx context.Context, row domain.PaymentRow) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO data.payments
			(profile_id, year, paragraph, item, unit, event, amount, date,
			 counterparty_id, counterparty_name, description)
		VALUES ($1, $2, $3, $4, NULL, $5, $6, $7, $8, $9, $10)`,
		row.ProfileID, row.Year, row.Paragraph, row.Item, row.Event,
		row.Amount, row.Date, row.CounterpartyID, row.CounterpartyName, row.Description,
	)
	if err != nil {
		return fmt.Errorf("InsertPayment profile=%d year=%d: %w", row.ProfileID, row.Year, err)
	}
	return nil
}

// ClearAccounting deletes all accounting entry rows.
func (s *Store) ClearAccounting(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM data.accounting`); err != nil {
		return fmt.Errorf("ClearAccounting: %w", err)
	}
	return nil
}

// InsertAccounting inserts one accounting entry row.
func (s *Store) InsertAccounting(ctx context.Context, e domain.AccountingEntry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO data.accounting
			(profile_id, year, type, paragraph, item, unit, event, amount)
		VALUES ($1, $2, $3, $4, $5, NULL, $6, $7)`,
		e.ProfileID, e.Year, string(e.Type), e.Paragraph, e.Item, e.Event, e.Amount,
	)
	if err != nil {
		return fmt.Errorf("InsertAccounting profile=%d year=%d type=%s: %w", e.ProfileID, e.Year, e.Type, err)
	}
	return nil
}
