package festival

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/festa/backend/internal/contracts"
)

// SeriesRepository implements contracts.SeriesRepository
// ⭐ SSOT: 시리즈 레코드 저장소는 여기서만
type SeriesRepository struct {
	pool *pgxpool.Pool
}

// NewSeriesRepository creates a new series repository
func NewSeriesRepository(pool *pgxpool.Pool) *SeriesRepository {
	return &SeriesRepository{pool: pool}
}

const seriesColumns = `
	id, name, province, district, address, tel_no, homepage, map_x, map_y,
	image_url, thumb_url, image_urls, overview, content_id, detail_loaded,
	pattern_sample_count, pattern_month, pattern_week, pattern_weekday,
	pattern_avg_duration, pattern_confidence,
	pattern_month_label, pattern_week_label, pattern_day_label,
	pattern_expected_period, pattern_updated_at`

func scanSeries(row pgx.Row) (contracts.SeriesRecord, error) {
	var rec contracts.SeriesRecord
	var (
		sampleCount, month, week, weekday, avgDuration, confidence *int
		monthLabel, weekLabel, dayLabel, expectedPeriod            *string
		updatedAt                                                  *time.Time
	)

	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Province, &rec.District, &rec.Address,
		&rec.TelNo, &rec.Homepage, &rec.MapX, &rec.MapY,
		&rec.ImageURL, &rec.ThumbURL, &rec.ImageURLs, &rec.Overview,
		&rec.ContentID, &rec.DetailLoaded,
		&sampleCount, &month, &week, &weekday,
		&avgDuration, &confidence,
		&monthLabel, &weekLabel, &dayLabel,
		&expectedPeriod, &updatedAt,
	)
	if err != nil {
		return rec, err
	}

	// 패턴 컬럼은 분석 전이면 모두 NULL
	if updatedAt != nil {
		rec.Pattern = &contracts.Pattern{
			SampleCount:     *sampleCount,
			Month:           *month,
			WeekOfMonth:     *week,
			Weekday:         time.Weekday(*weekday),
			AvgDurationDays: *avgDuration,
			Confidence:      *confidence,
			MonthLabel:      contracts.Consistency(*monthLabel),
			WeekLabel:       contracts.Consistency(*weekLabel),
			DayLabel:        contracts.Consistency(*dayLabel),
			ExpectedPeriod:  *expectedPeriod,
			UpdatedAt:       *updatedAt,
		}
	}
	return rec, nil
}

func collectSeries(rows pgx.Rows) ([]contracts.SeriesRecord, error) {
	defer rows.Close()

	var recs []contracts.SeriesRecord
	for rows.Next() {
		rec, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// FindAll retrieves all series records
func (r *SeriesRepository) FindAll(ctx context.Context) ([]contracts.SeriesRecord, error) {
	query := `SELECT ` + seriesColumns + ` FROM festival.series ORDER BY id ASC`

	rows, err := conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectSeries(rows)
}

// FindWithPattern retrieves series records that have an analyzed pattern
func (r *SeriesRepository) FindWithPattern(ctx context.Context) ([]contracts.SeriesRecord, error) {
	query := `
		SELECT ` + seriesColumns + `
		FROM festival.series
		WHERE pattern_updated_at IS NOT NULL
		ORDER BY id ASC
	`

	rows, err := conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectSeries(rows)
}

// FindByID retrieves a series by ID, (nil, nil) when absent
func (r *SeriesRepository) FindByID(ctx context.Context, id int64) (*contracts.SeriesRecord, error) {
	query := `SELECT ` + seriesColumns + ` FROM festival.series WHERE id = $1`

	rec, err := scanSeries(conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindByContentID retrieves a series by TourAPI contentId, (nil, nil) when absent
func (r *SeriesRepository) FindByContentID(ctx context.Context, contentID int64) (*contracts.SeriesRecord, error) {
	query := `SELECT ` + seriesColumns + ` FROM festival.series WHERE content_id = $1`

	rec, err := scanSeries(conn(ctx, r.pool).QueryRow(ctx, query, contentID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save saves a series record, filling ID on insert
func (r *SeriesRepository) Save(ctx context.Context, rec *contracts.SeriesRecord) error {
	var (
		sampleCount, month, week, weekday, avgDuration, confidence *int
		monthLabel, weekLabel, dayLabel, expectedPeriod            *string
		updatedAt                                                  *time.Time
	)
	if p := rec.Pattern; p != nil {
		wd := int(p.Weekday)
		ml, wl, dl := string(p.MonthLabel), string(p.WeekLabel), string(p.DayLabel)
		sampleCount, month, week, weekday = &p.SampleCount, &p.Month, &p.WeekOfMonth, &wd
		avgDuration, confidence = &p.AvgDurationDays, &p.Confidence
		monthLabel, weekLabel, dayLabel = &ml, &wl, &dl
		expectedPeriod, updatedAt = &p.ExpectedPeriod, &p.UpdatedAt
	}

	if rec.ID == 0 {
		query := `
			INSERT INTO festival.series (
				name, province, district, address, tel_no, homepage, map_x, map_y,
				image_url, thumb_url, image_urls, overview, content_id, detail_loaded,
				pattern_sample_count, pattern_month, pattern_week, pattern_weekday,
				pattern_avg_duration, pattern_confidence,
				pattern_month_label, pattern_week_label, pattern_day_label,
				pattern_expected_period, pattern_updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
				$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
			RETURNING id
		`
		return conn(ctx, r.pool).QueryRow(ctx, query,
			rec.Name, rec.Province, rec.District, rec.Address, rec.TelNo, rec.Homepage,
			rec.MapX, rec.MapY, rec.ImageURL, rec.ThumbURL, rec.ImageURLs, rec.Overview,
			rec.ContentID, rec.DetailLoaded,
			sampleCount, month, week, weekday, avgDuration, confidence,
			monthLabel, weekLabel, dayLabel, expectedPeriod, updatedAt,
		).Scan(&rec.ID)
	}

	query := `
		UPDATE festival.series SET
			name = $2, province = $3, district = $4, address = $5, tel_no = $6,
			homepage = $7, map_x = $8, map_y = $9, image_url = $10, thumb_url = $11,
			image_urls = $12, overview = $13, content_id = $14, detail_loaded = $15,
			pattern_sample_count = $16, pattern_month = $17, pattern_week = $18,
			pattern_weekday = $19, pattern_avg_duration = $20, pattern_confidence = $21,
			pattern_month_label = $22, pattern_week_label = $23, pattern_day_label = $24,
			pattern_expected_period = $25, pattern_updated_at = $26
		WHERE id = $1
	`
	_, err := conn(ctx, r.pool).Exec(ctx, query,
		rec.ID, rec.Name, rec.Province, rec.District, rec.Address, rec.TelNo, rec.Homepage,
		rec.MapX, rec.MapY, rec.ImageURL, rec.ThumbURL, rec.ImageURLs, rec.Overview,
		rec.ContentID, rec.DetailLoaded,
		sampleCount, month, week, weekday, avgDuration, confidence,
		monthLabel, weekLabel, dayLabel, expectedPeriod, updatedAt,
	)
	return err
}
