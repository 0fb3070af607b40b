package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jdevries/tripwise/backend/internal/domain"
)

// optionalDayColumns may be missing from a drifted schema. A rejection on one
// of these degrades the write; a rejection on anything else escalates.
var optionalDayColumns = map[string]bool{
	"title": true,
	"notes": true,
}

// DayRepo defines the persistence operations for itinerary days.
type DayRepo interface {
	// Create inserts a day, degrading on optional columns the schema lacks,
	// and returns the day with its DB-generated identity.
	Create(ctx context.Context, day domain.Day) (domain.Day, error)

	// ListByTripID returns a trip's days ordered by position ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error)

	// DeleteByTripID removes all days for a trip (activities cascade) and
	// returns how many days were removed. Zero days is not an error.
	DeleteByTripID(ctx context.Context, tripID uuid.UUID) (int64, error)
}

// pgDayRepo is the Postgres implementation of DayRepo. It shares one
// columnSupport across all writes so an absent column is learned once.
type pgDayRepo struct {
	db      db
	support *columnSupport
	log     *slog.Logger
}

// NewDayRepo constructs a DayRepo backed by the provided db connection.
func NewDayRepo(db db, log *slog.Logger) DayRepo {
	if log == nil {
		log = slog.Default()
	}
	return &pgDayRepo{db: db, support: newColumnSupport(), log: log}
}

// Create attempts the full-field insert and retries with an optional column
// removed each time the store rejects one. The RETURNING list carries only
// columns every schema generation has, so the degraded insert still works.
func (r *pgDayRepo) Create(ctx context.Context, day domain.Day) (domain.Day, error) {
	values := map[string]any{
		"trip_id":  day.TripID,
		"position": day.Position,
		"day_date": day.Date,
		"title":    day.Title,
		"notes":    day.Notes,
	}

	for {
		insert := make(map[string]any, len(values))
		for col, val := range values {
			if optionalDayColumns[col] && !r.support.has(col) {
				continue
			}
			insert[col] = val
		}

		q, args, err := sq.Insert("itinerary_days").
			SetMap(insert).
			Suffix("RETURNING id, created_at").
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return domain.Day{}, fmt.Errorf("repo.DayRepo.Create: build query: %w", err)
		}

		var (
			id      pgtype.UUID
			created time.Time
		)
		if err := r.db.QueryRow(ctx, q, args...).Scan(&id, &created); err != nil {
			if col, ok := undefinedColumn(err); ok && optionalDayColumns[col] && r.support.has(col) {
				r.support.markAbsent(col)
				r.log.Warn("schema lacks day column, retrying without it", "column", col)
				continue
			}
			return domain.Day{}, fmt.Errorf("repo.DayRepo.Create: %w", err)
		}

		day.ID = uuid.UUID(id.Bytes)
		day.CreatedAt = created
		return day, nil
	}
}

// ListByTripID returns the trip's days in sequence order.
func (r *pgDayRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error) {
	const q = `
		SELECT id, trip_id, position, day_date, title, notes, created_at
		FROM itinerary_days
		WHERE trip_id = @trip_id
		ORDER BY position ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DayRepo.ListByTripID: scan: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTripID: rows: %w", err)
	}

	return days, nil
}

// DeleteByTripID removes every day belonging to the trip.
func (r *pgDayRepo) DeleteByTripID(ctx context.Context, tripID uuid.UUID) (int64, error) {
	const q = `DELETE FROM itinerary_days WHERE trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return 0, fmt.Errorf("repo.DayRepo.DeleteByTripID: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanDay maps a single database row into a domain.Day.
func scanDay(s rowScanner) (domain.Day, error) {
	var (
		d    domain.Day
		id   pgtype.UUID
		trip pgtype.UUID
		date pgtype.Date
	)

	err := s.Scan(&id, &trip, &d.Position, &date, &d.Title, &d.Notes, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Day{}, domain.ErrNotFound
		}
		return domain.Day{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(trip.Bytes)
	d.Date = date.Time

	return d, nil
}
