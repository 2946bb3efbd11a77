package syncsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/festa/backend/internal/contracts"
	"github.com/wonny/festa/backend/internal/external/tourapi"
)

// sourceName 동기화로 저장되는 개최 기록의 출처명
const sourceName = "TourAPI"

// TourClient is the slice of the TourAPI client the sync service uses
type TourClient interface {
	FetchFestivals(ctx context.Context, year int, areaCode, sigunguCode string) ([]tourapi.Festival, error)
	FetchOverview(ctx context.Context, contentID int64) (string, error)
	FetchDetailImages(ctx context.Context, contentID int64) ([]string, error)
}

// Result summarizes a festival list sync run
type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"` // 날짜가 없어 개최 기록을 만들지 못한 항목
	Failed  int `json:"failed"`
}

// Service syncs TourAPI festival data into series and occurrence records
// ⭐ SSOT: 원천 데이터 반영은 이 서비스에서만
type Service struct {
	tour   TourClient
	occs   contracts.OccurrenceRepository
	series contracts.SeriesRepository
	log    zerolog.Logger
}

// NewService creates a new sync service
func NewService(tour TourClient, occs contracts.OccurrenceRepository, series contracts.SeriesRepository, log zerolog.Logger) *Service {
	return &Service{
		tour:   tour,
		occs:   occs,
		series: series,
		log:    log.With().Str("component", "syncsvc").Logger(),
	}
}

// SyncFestivals pulls the year's festival list and upserts series + occurrences.
// 항목 단위로 실패를 격리한다: 한 건이 깨져도 나머지는 계속 반영
func (s *Service) SyncFestivals(ctx context.Context, year int) (Result, error) {
	s.log.Info().Int("year", year).Msg("festival sync started")

	festivals, err := s.tour.FetchFestivals(ctx, year, "", "")
	if err != nil {
		return Result{}, fmt.Errorf("fetch festival list: %w", err)
	}

	var result Result
	for _, f := range festivals {
		created, err := s.syncOne(ctx, f)
		if err != nil {
			result.Failed++
			s.log.Warn().Err(err).
				Str("content_id", f.ContentID).
				Str("title", f.Title).
				Msg("festival sync item failed")
			continue
		}
		switch created {
		case itemCreated:
			result.Created++
		case itemUpdated:
			result.Updated++
		case itemSkipped:
			result.Skipped++
		}
	}

	s.log.Info().
		Int("year", year).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("festival sync finished")

	return result, nil
}

type itemOutcome int

const (
	itemCreated itemOutcome = iota
	itemUpdated
	itemSkipped
)

func (s *Service) syncOne(ctx context.Context, f tourapi.Festival) (itemOutcome, error) {
	rec, err := s.findOrCreateSeries(ctx, f)
	if err != nil {
		return itemSkipped, err
	}
	return s.createOrUpdateOccurrence(ctx, rec, f)
}

// findOrCreateSeries upserts the series record keyed by TourAPI content ID
func (s *Service) findOrCreateSeries(ctx context.Context, f tourapi.Festival) (*contracts.SeriesRecord, error) {
	contentID := f.ContentIDInt64()
	if contentID == 0 {
		return nil, fmt.Errorf("invalid contentId %q", f.ContentID)
	}

	rec, err := s.series.FindByContentID(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("find series by contentId: %w", err)
	}
	if rec == nil {
		rec = &contracts.SeriesRecord{ContentID: &contentID}
	}

	rec.Name = f.Title
	rec.Address = f.Addr1
	if f.FirstImage != "" {
		rec.ImageURL = f.FirstImage
	}
	if f.FirstImage2 != "" {
		rec.ThumbURL = f.FirstImage2
	}
	if x := f.MapXFloat(); x != nil {
		rec.MapX = x
	}
	if y := f.MapYFloat(); y != nil {
		rec.MapY = y
	}

	if err := s.series.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save series: %w", err)
	}
	return rec, nil
}

// createOrUpdateOccurrence upserts the occurrence matching (series, start, end)
func (s *Service) createOrUpdateOccurrence(ctx context.Context, rec *contracts.SeriesRecord, f tourapi.Festival) (itemOutcome, error) {
	start, end := f.StartDate(), f.EndDate()
	if start == nil || end == nil {
		// 날짜가 없는 항목은 개최 기록 없이 시리즈 메타데이터만 반영
		return itemSkipped, nil
	}

	existing, err := s.occs.FindBySeries(ctx, rec.ID)
	if err != nil {
		return itemSkipped, fmt.Errorf("find occurrences: %w", err)
	}

	var occ *contracts.Occurrence
	for i := range existing {
		o := &existing[i]
		if o.HasDates() && o.Start.Equal(*start) && o.End.Equal(*end) {
			occ = o
			break
		}
	}

	outcome := itemUpdated
	if occ == nil {
		occ = &contracts.Occurrence{SeriesID: &rec.ID, Start: start, End: end}
		outcome = itemCreated
	}

	occ.Name = f.Title
	occ.Origin = contracts.OriginReal
	occ.RawID = f.ContentID
	occ.SourceNm = sourceName

	if err := s.occs.Save(ctx, occ); err != nil {
		return itemSkipped, fmt.Errorf("save occurrence: %w", err)
	}
	return outcome, nil
}

// SyncOverviewsForYear backfills overview text for series whose occurrences
// fall in the given year. 이미 적재된(DetailLoaded) 시리즈는 건너뛴다
func (s *Service) SyncOverviewsForYear(ctx context.Context, year int) (int, error) {
	series, err := s.seriesForYear(ctx, year)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, rec := range series {
		if rec.DetailLoaded || rec.ContentID == nil {
			continue
		}

		overview, err := s.tour.FetchOverview(ctx, *rec.ContentID)
		if err != nil {
			s.log.Warn().Err(err).Int64("content_id", *rec.ContentID).Msg("overview fetch failed")
			continue
		}
		if overview == "" {
			continue
		}

		rec.Overview = overview
		rec.DetailLoaded = true
		if err := s.series.Save(ctx, rec); err != nil {
			s.log.Warn().Err(err).Int64("series_id", rec.ID).Msg("overview save failed")
			continue
		}
		updated++
	}

	s.log.Info().Int("year", year).Int("updated", updated).Msg("overview sync finished")
	return updated, nil
}

// SyncImagesForYear backfills detail image lists for series whose occurrences
// fall in the given year. 이미지가 이미 있으면 건너뛴다
func (s *Service) SyncImagesForYear(ctx context.Context, year int) (int, error) {
	series, err := s.seriesForYear(ctx, year)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, rec := range series {
		if len(rec.ImageURLs) > 0 || rec.ContentID == nil {
			continue
		}

		images, err := s.tour.FetchDetailImages(ctx, *rec.ContentID)
		if err != nil {
			s.log.Warn().Err(err).Int64("content_id", *rec.ContentID).Msg("image fetch failed")
			continue
		}
		if len(images) == 0 {
			continue
		}

		rec.ImageURLs = images
		if rec.ImageURL == "" {
			rec.ImageURL = images[0]
		}
		if err := s.series.Save(ctx, rec); err != nil {
			s.log.Warn().Err(err).Int64("series_id", rec.ID).Msg("image save failed")
			continue
		}
		updated++
	}

	s.log.Info().Int("year", year).Int("updated", updated).Msg("image sync finished")
	return updated, nil
}

// seriesForYear collects the distinct series behind the year's occurrences
func (s *Service) seriesForYear(ctx context.Context, year int) ([]*contracts.SeriesRecord, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	occs, err := s.occs.FindOverlapping(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("find occurrences for year %d: %w", year, err)
	}

	seen := make(map[int64]bool)
	var result []*contracts.SeriesRecord
	for _, o := range occs {
		if o.SeriesID == nil || seen[*o.SeriesID] {
			continue
		}
		seen[*o.SeriesID] = true

		rec, err := s.series.FindByID(ctx, *o.SeriesID)
		if err != nil {
			return nil, fmt.Errorf("find series %d: %w", *o.SeriesID, err)
		}
		if rec != nil {
			result = append(result, rec)
		}
	}
	return result, nil
}
