package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/multierr"

	"github.com/jdevries/tripwise/backend/internal/domain"
)

// optionalActivityColumns may be missing from a drifted schema on the
// required-field insert. trip_id is denormalized linkage only: activities are
// always reachable through their day, so losing the column loses nothing.
var optionalActivityColumns = map[string]bool{
	"trip_id": true,
}

// ActivityRepo defines the persistence operations for itinerary activities.
//
// Writes are split the way the engine needs them: Create lands the minimal
// required fields and returns the new identity; UpdateDetails is a separate
// best-effort pass for everything optional, so a drifted schema can never
// block an activity from existing.
type ActivityRepo interface {
	// Create inserts the required fields (day linkage, title, day part,
	// position) plus the optional trip linkage, degrading when the schema
	// lacks it. Returns the new activity ID.
	Create(ctx context.Context, activity domain.Activity) (uuid.UUID, error)

	// UpdateDetails writes the optional fields in one statement, falling back
	// to per-field statements when the store rejects the combined update.
	// Per-field failures are logged and aggregated into the returned error;
	// callers treat that error as diagnostic, not fatal.
	UpdateDetails(ctx context.Context, id uuid.UUID, activity domain.Activity) error

	// CountByTripID returns how many activities exist across a trip's days.
	CountByTripID(ctx context.Context, tripID uuid.UUID) (int64, error)

	// ListByDayID returns a day's activities ordered by position ascending.
	ListByDayID(ctx context.Context, dayID uuid.UUID) ([]domain.Activity, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db      db
	support *columnSupport
	log     *slog.Logger
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db, log *slog.Logger) ActivityRepo {
	if log == nil {
		log = slog.Default()
	}
	return &pgActivityRepo{db: db, support: newColumnSupport(), log: log}
}

// Create lands the minimal activity row, degrading on the optional trip
// linkage if the schema rejects it.
func (r *pgActivityRepo) Create(ctx context.Context, activity domain.Activity) (uuid.UUID, error) {
	values := map[string]any{
		"day_id":   activity.DayID,
		"trip_id":  activity.TripID,
		"title":    activity.Title,
		"day_part": string(activity.DayPart),
		"position": activity.Position,
	}

	for {
		insert := make(map[string]any, len(values))
		for col, val := range values {
			if optionalActivityColumns[col] && !r.support.has(col) {
				continue
			}
			insert[col] = val
		}

		q, args, err := sq.Insert("itinerary_activities").
			SetMap(insert).
			Suffix("RETURNING id").
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return uuid.Nil, fmt.Errorf("repo.ActivityRepo.Create: build query: %w", err)
		}

		var id pgtype.UUID
		if err := r.db.QueryRow(ctx, q, args...).Scan(&id); err != nil {
			if col, ok := undefinedColumn(err); ok && optionalActivityColumns[col] && r.support.has(col) {
				r.support.markAbsent(col)
				r.log.Warn("schema lacks activity column, retrying without it", "column", col)
				continue
			}
			return uuid.Nil, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
		}

		return uuid.UUID(id.Bytes), nil
	}
}

// UpdateDetails writes the optional activity fields. The combined update is
// tried first; when the store rejects it, each field is retried on its own so
// one unsupported column never blocks the rest from landing.
func (r *pgActivityRepo) UpdateDetails(ctx context.Context, id uuid.UUID, activity domain.Activity) error {
	fields := detailFields(activity)
	if len(fields) == 0 {
		return nil
	}

	combined := make(map[string]any, len(fields))
	for col, val := range fields {
		if r.support.has(col) {
			combined[col] = val
		}
	}
	if len(combined) == 0 {
		return nil
	}

	if err := r.updateFields(ctx, id, combined); err == nil {
		return nil
	} else if col, ok := undefinedColumn(err); ok {
		r.support.markAbsent(col)
		r.log.Warn("schema lacks activity column", "column", col)
	} else {
		r.log.Warn("combined activity update rejected, retrying per field", "activity_id", id, "error", err)
	}

	// Individual pass: each remaining field gets its own statement.
	var errs error
	for col, val := range fields {
		if !r.support.has(col) {
			continue
		}
		if err := r.updateFields(ctx, id, map[string]any{col: val}); err != nil {
			if bad, ok := undefinedColumn(err); ok {
				r.support.markAbsent(bad)
				r.log.Warn("schema lacks activity column", "column", bad)
				continue
			}
			r.log.Warn("activity field update failed", "activity_id", id, "column", col, "error", err)
			errs = multierr.Append(errs, fmt.Errorf("field %s: %w", col, err))
		}
	}
	return errs
}

// updateFields issues a single UPDATE setting the given columns.
func (r *pgActivityRepo) updateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	q, args, err := sq.Update("itinerary_activities").
		SetMap(fields).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	_, err = r.db.Exec(ctx, q, args...)
	return err
}

// detailFields collects the optional columns worth writing for an activity.
// Unset values are omitted entirely: the update writes what it knows, it
// does not null out what it doesn't.
func detailFields(activity domain.Activity) map[string]any {
	fields := make(map[string]any)
	if activity.Description != "" {
		fields["description"] = activity.Description
	}
	if activity.StartTime != "" {
		fields["start_time"] = activity.StartTime
	}
	if activity.DurationMinutes != nil {
		fields["duration_minutes"] = *activity.DurationMinutes
	}
	if activity.EstimatedCost != nil {
		fields["estimated_cost"] = *activity.EstimatedCost
	}
	if activity.Location != "" {
		fields["location"] = activity.Location
	}
	if activity.Category != "" {
		fields["category"] = activity.Category
	}
	if activity.Notes != "" {
		fields["notes"] = activity.Notes
	}
	return fields
}

// CountByTripID counts a trip's activities through the day linkage, so the
// count stays correct even when the denormalized trip_id column is absent.
func (r *pgActivityRepo) CountByTripID(ctx context.Context, tripID uuid.UUID) (int64, error) {
	const q = `
		SELECT count(*)
		FROM itinerary_activities a
		JOIN itinerary_days d ON d.id = a.day_id
		WHERE d.trip_id = @trip_id`

	var count int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&count); err != nil {
		return 0, fmt.Errorf("repo.ActivityRepo.CountByTripID: %w", err)
	}
	return count, nil
}

// ListByDayID returns the day's activities in position order.
func (r *pgActivityRepo) ListByDayID(ctx context.Context, dayID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT id, day_id, trip_id, title, description, day_part, position,
		       start_time, duration_minutes, estimated_cost, location, category,
		       notes, created_at
		FROM itinerary_activities
		WHERE day_id = @day_id
		ORDER BY position ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"day_id": dayID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByDayID: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByDayID: scan: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByDayID: rows: %w", err)
	}

	return activities, nil
}

// scanActivity maps a single database row into a domain.Activity.
func scanActivity(s rowScanner) (domain.Activity, error) {
	var (
		a         domain.Activity
		id        pgtype.UUID
		dayID     pgtype.UUID
		tripID    pgtype.UUID
		dayPart   string
		startTime pgtype.Text
		duration  pgtype.Int4
		cost      pgtype.Float8
		desc      pgtype.Text
		location  pgtype.Text
		category  pgtype.Text
		notes     pgtype.Text
	)

	err := s.Scan(&id, &dayID, &tripID, &a.Title, &desc, &dayPart, &a.Position,
		&startTime, &duration, &cost, &location, &category, &notes, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.DayID = uuid.UUID(dayID.Bytes)
	a.TripID = uuid.UUID(tripID.Bytes)
	a.DayPart = domain.DayPart(dayPart)
	a.Description = desc.String
	a.StartTime = startTime.String
	a.Location = location.String
	a.Category = category.String
	a.Notes = notes.String
	if duration.Valid {
		minutes := int(duration.Int32)
		a.DurationMinutes = &minutes
	}
	if cost.Valid {
		value := cost.Float64
		a.EstimatedCost = &value
	}

	return a, nil
}
