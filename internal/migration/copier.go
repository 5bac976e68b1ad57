package migration

import (
	"context"
	"fmt"
	"path"

	"github.com/shopspring/decimal"

	"github.com/cityvizor/pg-migrate/internal/domain"
	"github.com/cityvizor/pg-migrate/internal/idmap"
	"github.com/cityvizor/pg-migrate/internal/logger"
)

// Copier performs the one-to-one transcription stages: profiles, fiscal
// years, events and payments. It populates the identifier map as a side
// effect so that later stages can resolve references.
type Copier struct {
	source  Source
	writer  *Writer
	avatars *AvatarDir
	ids     *idmap.Map
}

// NewCopier wires a copier over the given source, writer and avatar exporter.
func NewCopier(source Source, writer *Writer, avatars *AvatarDir, ids *idmap.Map) *Copier {
	return &Copier{source: source, writer: writer, avatars: avatars, ids: ids}
}

// CopyProfiles clears and reloads app.profiles, exports avatars, and records
// the external-id -> generated-id mapping for every profile. Returns the
// number of source profiles iterated.
func (c *Copier) CopyProfiles(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	log.Info().Bool("dry_run", c.writer.DryRun()).Msg("Copying profiles")

	if err := c.writer.ClearProfiles(ctx); err != nil {
		return 0, err
	}
	if err := c.avatars.Reset(); err != nil {
		return 0, err
	}

	profiles, err := c.source.ListProfiles(ctx)
	if err != nil {
		return 0, err
	}

	for _, p := range profiles {
		status, err := domain.MapStatus(p.Status)
		if err != nil {
			return 0, fmt.Errorf("profile %s: %w", p.ID.Hex(), err)
		}

		row := domain.ProfileRow{
			Name:   p.Name,
			Status: status,
			URL:    p.URL,
			Email:  p.Email,
			ICO:    p.ICO,
			Edesky: p.Edesky,
		}
		// Registry codes of 1000 and above are placeholders in the source
		// data, stored as null.
		if p.Mapasamospravy != nil && *p.Mapasamospravy < 1000 {
			row.Mapasamospravy = p.Mapasamospravy
		}
		if len(p.GPS) > 0 {
			row.GpsX = &p.GPS[0]
		}
		if len(p.GPS) > 1 {
			row.GpsY = &p.GPS[1]
		}

		var ext string
		if p.Avatar != nil {
			ext = path.Ext(p.Avatar.Name)
			row.AvatarType = &ext
		}

		id, err := c.writer.InsertProfile(ctx, row)
		if err != nil {
			return 0, err
		}

		if p.Avatar != nil {
			avatar, err := c.source.ProfileAvatar(ctx, p.ID)
			if err != nil {
				return 0, err
			}
			if avatar != nil {
				if err := c.avatars.Write(id, ext, avatar.Data.Data); err != nil {
					return 0, err
				}
			}
		}

		c.ids.RecordProfile(p.ID.Hex(), id)
	}

	log.Info().Int("profiles", len(profiles)).Int("avatars", c.avatars.Writes()).Msg("Profiles copied")
	return len(profiles), nil
}

// CopyYears clears and reloads app.years. The source visibility flag is
// inverted into the hidden column.
func (c *Copier) CopyYears(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	log.Info().Msg("Copying fiscal years")

	if err := c.writer.ClearYears(ctx); err != nil {
		return 0, err
	}

	etls, err := c.source.ListEtls(ctx)
	if err != nil {
		return 0, err
	}

	for _, etl := range etls {
		profileID, err := c.ids.Profile(etl.Profile.Hex())
		if err != nil {
			return 0, fmt.Errorf("etl year %d: %w", etl.Year, err)
		}

		row := domain.YearRow{
			ProfileID: profileID,
			Year:      etl.Year,
			Hidden:    !etl.Visible,
		}
		if etl.Validity != nil {
			t := etl.Validity.Time()
			row.Validity = &t
		}

		if err := c.writer.InsertYear(ctx, row); err != nil {
			return 0, err
		}
	}

	log.Info().Int("years", len(etls)).Msg("Fiscal years copied")
	return len(etls), nil
}

// CopyEvents clears and reloads data.events. Events whose source identifier
// does not convert to a non-zero number are dropped entirely: no row, no
// mapping entry, so later references to them resolve to null.
func (c *Copier) CopyEvents(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	log.Info().Msg("Copying events")

	if err := c.writer.ClearEvents(ctx); err != nil {
		return 0, err
	}

	events, err := c.source.ListEvents(ctx)
	if err != nil {
		return 0, err
	}

	var copied int
	for _, ev := range events {
		srcID := domain.Number(ev.SrcID)
		if srcID == 0 {
			continue
		}

		profileID, err := c.ids.Profile(ev.Profile.Hex())
		if err != nil {
			return 0, fmt.Errorf("event %s: %w", ev.ID.Hex(), err)
		}

		row := domain.EventRow{
			ID:        srcID,
			ProfileID: profileID,
			Year:      ev.Year,
			Name:      ev.Name,
		}
		if err := c.writer.InsertEvent(ctx, row); err != nil {
			return 0, err
		}

		c.ids.RecordEvent(ev.ID.Hex(), srcID)
		copied++
	}

	log.Info().Int("events", copied).Int("dropped", len(events)-copied).Msg("Events copied")
	return len(events), nil
}

// CopyPayments clears and reloads data.payments. Event references that never
// became a migrated event are stored as null, not treated as errors.
func (c *Copier) CopyPayments(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	log.Info().Msg("Copying payments")

	if err := c.writer.ClearPayments(ctx); err != nil {
		return 0, err
	}

	payments, err := c.source.ListPayments(ctx)
	if err != nil {
		return 0, err
	}

	for _, p := range payments {
		profileID, err := c.ids.Profile(p.Profile.Hex())
		if err != nil {
			return 0, fmt.Errorf("payment %s: %w", p.ID.Hex(), err)
		}

		row := domain.PaymentRow{
			ProfileID:        profileID,
			Year:             p.Year,
			Paragraph:        domain.Number(p.Paragraph),
			Item:             domain.Number(p.Item),
			Event:            c.ids.Event(p.Event.Hex()),
			Amount:           decimal.NewFromFloat(p.Amount),
			CounterpartyID:   p.CounterpartyID,
			CounterpartyName: p.CounterpartyName,
			Description:      p.Description,
		}
		if p.Date != nil {
			t := p.Date.Time()
			row.Date = &t
		}

		if err := c.writer.InsertPayment(ctx, row); err != nil {
			return 0, err
		}
	}

	log.Info().Int("payments", len(payments)).Msg("Payments copied")
	return len(payments), nil
}
