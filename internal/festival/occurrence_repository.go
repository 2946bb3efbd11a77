package festival

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/festa/backend/internal/contracts"
)

// OccurrenceRepository implements contracts.OccurrenceRepository
// ⭐ SSOT: 개최 기록 저장소는 여기서만
type OccurrenceRepository struct {
	pool *pgxpool.Pool
}

// NewOccurrenceRepository creates a new occurrence repository
func NewOccurrenceRepository(pool *pgxpool.Pool) *OccurrenceRepository {
	return &OccurrenceRepository{pool: pool}
}

const occurrenceColumns = `id, series_id, name, start_date, end_date, origin, raw_id, source_nm`

func scanOccurrence(row pgx.Row) (contracts.Occurrence, error) {
	var o contracts.Occurrence
	err := row.Scan(&o.ID, &o.SeriesID, &o.Name, &o.Start, &o.End, &o.Origin, &o.RawID, &o.SourceNm)
	return o, err
}

func collectOccurrences(rows pgx.Rows) ([]contracts.Occurrence, error) {
	defer rows.Close()

	var occs []contracts.Occurrence
	for rows.Next() {
		o, err := scanOccurrence(rows)
		if err != nil {
			return nil, err
		}
		occs = append(occs, o)
	}
	return occs, rows.Err()
}

// FindOverlapping retrieves occurrences whose period overlaps [start, end]
func (r *OccurrenceRepository) FindOverlapping(ctx context.Context, start, end time.Time) ([]contracts.Occurrence, error) {
	query := `
		SELECT ` + occurrenceColumns + `
		FROM festival.occurrences
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date ASC
	`

	rows, err := conn(ctx, r.pool).Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	return collectOccurrences(rows)
}

// FindBySeries retrieves all occurrences belonging to a series
func (r *OccurrenceRepository) FindBySeries(ctx context.Context, seriesID int64) ([]contracts.Occurrence, error) {
	query := `
		SELECT ` + occurrenceColumns + `
		FROM festival.occurrences
		WHERE series_id = $1
		ORDER BY start_date ASC NULLS LAST
	`

	rows, err := conn(ctx, r.pool).Query(ctx, query, seriesID)
	if err != nil {
		return nil, err
	}
	return collectOccurrences(rows)
}

// FindByNameContaining retrieves occurrences whose name contains the keyword
func (r *OccurrenceRepository) FindByNameContaining(ctx context.Context, keyword string) ([]contracts.Occurrence, error) {
	query := `
		SELECT ` + occurrenceColumns + `
		FROM festival.occurrences
		WHERE name LIKE '%' || $1 || '%'
		ORDER BY start_date ASC NULLS LAST
	`

	rows, err := conn(ctx, r.pool).Query(ctx, query, keyword)
	if err != nil {
		return nil, err
	}
	return collectOccurrences(rows)
}

// FindLatestReal retrieves the real occurrence with the latest start date.
// Returns (nil, nil) when no real occurrence has a start date.
func (r *OccurrenceRepository) FindLatestReal(ctx context.Context) (*contracts.Occurrence, error) {
	query := `
		SELECT ` + occurrenceColumns + `
		FROM festival.occurrences
		WHERE origin = $1 AND start_date IS NOT NULL
		ORDER BY start_date DESC
		LIMIT 1
	`

	o, err := scanOccurrence(conn(ctx, r.pool).QueryRow(ctx, query, contracts.OriginReal))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Exists checks whether an occurrence with the same name and period exists
func (r *OccurrenceRepository) Exists(ctx context.Context, name string, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM festival.occurrences
			WHERE name = $1 AND start_date = $2 AND end_date = $3
		)
	`

	var exists bool
	err := conn(ctx, r.pool).QueryRow(ctx, query, name, start, end).Scan(&exists)
	return exists, err
}

// Save saves a single occurrence, filling ID on insert
func (r *OccurrenceRepository) Save(ctx context.Context, occ *contracts.Occurrence) error {
	if occ.ID == 0 {
		query := `
			INSERT INTO festival.occurrences (series_id, name, start_date, end_date, origin, raw_id, source_nm)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		return conn(ctx, r.pool).QueryRow(ctx, query,
			occ.SeriesID, occ.Name, occ.Start, occ.End, occ.Origin, occ.RawID, occ.SourceNm,
		).Scan(&occ.ID)
	}

	query := `
		UPDATE festival.occurrences
		SET series_id = $2, name = $3, start_date = $4, end_date = $5, origin = $6, raw_id = $7, source_nm = $8
		WHERE id = $1
	`
	_, err := conn(ctx, r.pool).Exec(ctx, query,
		occ.ID, occ.SeriesID, occ.Name, occ.Start, occ.End, occ.Origin, occ.RawID, occ.SourceNm,
	)
	return err
}

// SaveAll inserts occurrences in a single batch
func (r *OccurrenceRepository) SaveAll(ctx context.Context, occs []contracts.Occurrence) error {
	if len(occs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO festival.occurrences (series_id, name, start_date, end_date, origin, raw_id, source_nm)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, o := range occs {
		batch.Queue(query, o.SeriesID, o.Name, o.Start, o.End, o.Origin, o.RawID, o.SourceNm)
	}

	br := conn(ctx, r.pool).SendBatch(ctx, batch)
	defer br.Close()

	for range occs {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAll deletes the given occurrences by ID
func (r *OccurrenceRepository) DeleteAll(ctx context.Context, occs []contracts.Occurrence) error {
	if len(occs) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(occs))
	for _, o := range occs {
		ids = append(ids, o.ID)
	}

	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM festival.occurrences WHERE id = ANY($1)`, ids)
	return err
}
