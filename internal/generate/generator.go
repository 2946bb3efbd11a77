package generate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/festa/backend/internal/contracts"
	"github.com/wonny/festa/backend/internal/pattern"
)

// GenerateYearsAhead 실제 데이터 마지막 연도 이후 몇 년치를 생성할지
const GenerateYearsAhead = 2

// Prediction 단건 예측 결과
type Prediction struct {
	BaseName       string       `json:"base_name"`
	SampleCount    int          `json:"sample_count"`
	TargetYear     int          `json:"target_year"`
	Month          int          `json:"month"`
	WeekOfMonth    int          `json:"week_of_month"`
	Weekday        time.Weekday `json:"weekday"`
	WeekdayKo      string       `json:"weekday_ko"`
	ExpectedStart  time.Time    `json:"expected_start"`
	ExpectedPeriod string       `json:"expected_period"`
	Confidence     int          `json:"confidence"`
}

// Generator 예상 축제 배치 생성기
//
// 기동 시 1회, 매달 1일 스케줄로 실행된다. 두 트리거와 수동 API 호출이
// 겹칠 수 있으므로 뮤텍스로 동시 실행을 막는다 (중복 체크 트랜잭션이
// 커밋되기 전에 두 번 삽입되는 것을 방지).
type Generator struct {
	occs    contracts.OccurrenceRepository
	series  contracts.SeriesRepository
	uow     contracts.UnitOfWork
	agg     *pattern.Aggregator
	builder *Builder
	log     zerolog.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewGenerator 새 생성기 생성
func NewGenerator(occs contracts.OccurrenceRepository, series contracts.SeriesRepository, uow contracts.UnitOfWork, log zerolog.Logger) *Generator {
	return &Generator{
		occs:    occs,
		series:  series,
		uow:     uow,
		agg:     pattern.NewAggregator(log),
		builder: NewBuilder(log),
		log:     log.With().Str("component", "generate.generator").Logger(),
		now:     time.Now,
	}
}

// GenerateExpected 전체 패턴 분석 후 향후 연도의 예상 축제 생성
//
// 반복 호출에 멱등하다: 연도별로 이미 예상 축제가 있으면 건너뛰고,
// 저장 직전에 (이름, 시작, 종료) 존재 여부를 한 번 더 확인한다.
// 연도 하나의 실패는 기록만 하고 다음 연도로 진행한다.
func (g *Generator) GenerateExpected(ctx context.Context) error {
	if !g.mu.TryLock() {
		g.log.Warn().Msg("generation already in progress, skipping")
		return nil
	}
	defer g.mu.Unlock()

	updated, err := g.analyzeAllPatterns(ctx)
	if err != nil {
		return fmt.Errorf("analyze patterns: %w", err)
	}
	g.log.Info().Int("updated", updated).Msg("pattern analysis completed")

	currentYear := g.now().Year()
	latestRealYear, err := g.latestRealYear(ctx, currentYear)
	if err != nil {
		return fmt.Errorf("find latest real year: %w", err)
	}

	startYear := latestRealYear + 1
	if startYear < currentYear {
		startYear = currentYear
	}
	endYear := latestRealYear + GenerateYearsAhead

	g.log.Info().
		Int("current_year", currentYear).
		Int("latest_real_year", latestRealYear).
		Int("start_year", startYear).
		Int("end_year", endYear).
		Msg("generating expected festivals")

	for year := startYear; year <= endYear; year++ {
		if _, err := g.generateForYear(ctx, year); err != nil {
			g.log.Error().Err(err).Int("year", year).Msg("year generation failed")
		}
	}

	return nil
}

// RegenerateYear 특정 연도 수동 재생성
// force=true면 해당 연도와 겹치는 예상 축제를 모두 지우고 무조건 다시 생성한다
func (g *Generator) RegenerateYear(ctx context.Context, year int, force bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.log.Info().Int("year", year).Bool("force", force).Msg("manual regeneration")

	if !force {
		_, err := g.generateForYear(ctx, year)
		return err
	}

	if err := g.deleteProjectedForYear(ctx, year); err != nil {
		return fmt.Errorf("delete projected for %d: %w", year, err)
	}

	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	withPattern, err := g.series.FindWithPattern(ctx)
	if err != nil {
		return fmt.Errorf("find series with pattern: %w", err)
	}

	candidates := g.builder.BuildForRange(yearStart, yearEnd, withPattern)
	if len(candidates) == 0 {
		g.log.Info().Int("year", year).Msg("no expected festivals to regenerate")
		return nil
	}

	if err := g.occs.SaveAll(ctx, candidates); err != nil {
		return fmt.Errorf("save expected festivals: %w", err)
	}

	g.log.Info().Int("year", year).Int("saved", len(candidates)).Msg("expected festivals regenerated")
	return nil
}

// PredictNextForName 축제 이름 하나에 대한 다음 개최 예측
// 배치 분석과 같은 최소 표본 기준(3회)을 적용한다
func (g *Generator) PredictNextForName(ctx context.Context, name string) (*Prediction, error) {
	baseName := pattern.NormalizeName(name)
	if baseName == "" {
		return nil, nil
	}

	history, err := g.occs.FindByNameContaining(ctx, baseName)
	if err != nil {
		return nil, fmt.Errorf("find history for %q: %w", baseName, err)
	}

	// 예상 개최가 섞이면 예측이 자기 출력을 다시 배우게 되므로 실제 기록만 사용
	var real []contracts.Occurrence
	for _, occ := range history {
		if !occ.IsProjected() {
			real = append(real, occ)
		}
	}

	result := g.agg.Analyze(real)
	if !result.Valid {
		return nil, nil
	}

	latestRealYear, err := g.latestRealYear(ctx, g.now().Year())
	if err != nil {
		return nil, fmt.Errorf("find latest real year: %w", err)
	}
	targetYear := latestRealYear + 1

	start, err := NthWeekday(targetYear, result.Key.Month, result.Key.WeekOfMonth, result.Key.Weekday)
	if err != nil {
		return nil, fmt.Errorf("project %q: %w", baseName, err)
	}

	return &Prediction{
		BaseName:       baseName,
		SampleCount:    result.SampleCount,
		TargetYear:     targetYear,
		Month:          result.Key.Month,
		WeekOfMonth:    result.Key.WeekOfMonth,
		Weekday:        result.Key.Weekday,
		WeekdayKo:      pattern.WeekdayKorean(result.Key.Weekday),
		ExpectedStart:  start,
		ExpectedPeriod: result.ExpectedPeriod,
		Confidence:     result.Confidence,
	}, nil
}

// AnalyzeAllPatterns 전체 시리즈 패턴 분석 (수동 실행용 공개 진입점)
func (g *Generator) AnalyzeAllPatterns(ctx context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.analyzeAllPatterns(ctx)
}

// analyzeAllPatterns 정규화 이름으로 시리즈를 묶어 패턴을 도출하고
// 대표 레코드에 저장한다. 하나의 작업 단위 안에서 실행되며,
// 그룹 하나의 실패는 전체 배치를 중단하지 않는다.
func (g *Generator) analyzeAllPatterns(ctx context.Context) (int, error) {
	updated := 0

	err := g.uow.WithinTx(ctx, func(ctx context.Context) error {
		all, err := g.series.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("find all series: %w", err)
		}

		groups := make(map[string][]contracts.SeriesRecord)
		var names []string
		for _, rec := range all {
			if rec.Name == "" {
				continue
			}
			key := pattern.NormalizeName(rec.Name)
			if key == "" {
				continue
			}
			if _, seen := groups[key]; !seen {
				names = append(names, key)
			}
			groups[key] = append(groups[key], rec)
		}

		g.log.Info().Int("groups", len(groups)).Msg("pattern analysis started")

		for _, key := range names {
			group := groups[key]
			switch err := g.analyzeGroup(ctx, key, group); {
			case errors.Is(err, errSkipGroup):
				continue
			case err != nil:
				g.log.Warn().Err(err).Str("name", key).Msg("group analysis failed")
				continue
			}
			updated++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return updated, nil
}

// errSkipGroup 그룹이 표본 부족 등으로 패턴을 얻지 못했음을 나타내는 내부 신호
var errSkipGroup = errors.New("group skipped")

func (g *Generator) analyzeGroup(ctx context.Context, key string, group []contracts.SeriesRecord) error {
	var history []contracts.Occurrence
	for _, rec := range group {
		occs, err := g.occs.FindBySeries(ctx, rec.ID)
		if err != nil {
			return fmt.Errorf("find occurrences: %w", err)
		}
		for _, occ := range occs {
			// 생성된 예상 개최가 다음 분석의 입력이 되면 안 된다
			if occ.IsProjected() {
				continue
			}
			history = append(history, occ)
		}
	}

	if len(history) < pattern.MinSampleCount {
		return errSkipGroup
	}

	result := g.agg.Analyze(history)
	if !result.Valid {
		return errSkipGroup
	}

	rep, err := g.representative(ctx, group, history)
	if err != nil {
		return fmt.Errorf("select representative: %w", err)
	}
	if rep == nil {
		return errSkipGroup
	}

	rep.Pattern = &contracts.Pattern{
		SampleCount:     result.SampleCount,
		Month:           result.Key.Month,
		WeekOfMonth:     result.Key.WeekOfMonth,
		Weekday:         result.Key.Weekday,
		AvgDurationDays: result.AvgDurationDays,
		Confidence:      result.Confidence,
		MonthLabel:      result.MonthLabel,
		WeekLabel:       result.WeekLabel,
		DayLabel:        result.DayLabel,
		ExpectedPeriod:  result.ExpectedPeriod,
		UpdatedAt:       g.now(),
	}

	if err := g.series.Save(ctx, rep); err != nil {
		return fmt.Errorf("save pattern: %w", err)
	}

	g.log.Debug().
		Str("name", rep.Name).
		Int("samples", result.SampleCount).
		Int("month", result.Key.Month).
		Int("week", result.Key.WeekOfMonth).
		Str("weekday", result.Key.Weekday.String()).
		Msg("pattern updated")

	return nil
}

// representative 가장 최근 개최를 보유한 시리즈 레코드 선택
// 사용할 날짜가 없으면 그룹의 첫 레코드로 폴백
func (g *Generator) representative(ctx context.Context, group []contracts.SeriesRecord, history []contracts.Occurrence) (*contracts.SeriesRecord, error) {
	var latest *contracts.Occurrence
	for i := range history {
		occ := &history[i]
		if occ.Start == nil || occ.SeriesID == nil {
			continue
		}
		if latest == nil || occ.Start.After(*latest.Start) {
			latest = occ
		}
	}

	if latest != nil {
		rec, err := g.series.FindByID(ctx, *latest.SeriesID)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			return rec, nil
		}
	}

	if len(group) == 0 {
		return nil, nil
	}
	rec := group[0]
	return &rec, nil
}

// generateForYear 특정 연도 예상 축제 생성
// 해당 연도에 예상 축제가 이미 있으면 연도 단위로 건너뛴다
func (g *Generator) generateForYear(ctx context.Context, year int) (int, error) {
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	existing, err := g.findProjectedOverlapping(ctx, yearStart, yearEnd)
	if err != nil {
		return 0, fmt.Errorf("check existing expected: %w", err)
	}
	if len(existing) > 0 {
		g.log.Info().Int("year", year).Int("existing", len(existing)).Msg("expected festivals already present, skipping year")
		return 0, nil
	}

	withPattern, err := g.series.FindWithPattern(ctx)
	if err != nil {
		return 0, fmt.Errorf("find series with pattern: %w", err)
	}

	candidates := g.builder.BuildForRange(yearStart, yearEnd, withPattern)
	if len(candidates) == 0 {
		g.log.Info().Int("year", year).Msg("no expected festivals generated")
		return 0, nil
	}

	// 저장 직전 2차 중복 방어: 동일 (이름, 시작, 종료) 레코드 존재 확인
	var toSave []contracts.Occurrence
	for _, cand := range candidates {
		dup, err := g.occs.Exists(ctx, cand.Name, *cand.Start, *cand.End)
		if err != nil {
			g.log.Warn().Err(err).Str("name", cand.Name).Msg("duplicate check failed, skipping candidate")
			continue
		}
		if dup {
			continue
		}
		toSave = append(toSave, cand)
	}

	if len(toSave) == 0 {
		g.log.Info().Int("year", year).Msg("all candidates were duplicates")
		return 0, nil
	}

	if err := g.occs.SaveAll(ctx, toSave); err != nil {
		return 0, fmt.Errorf("save expected festivals: %w", err)
	}

	g.log.Info().
		Int("year", year).
		Int("saved", len(toSave)).
		Int("duplicates", len(candidates)-len(toSave)).
		Msg("expected festivals saved")

	return len(toSave), nil
}

func (g *Generator) deleteProjectedForYear(ctx context.Context, year int) error {
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	existing, err := g.findProjectedOverlapping(ctx, yearStart, yearEnd)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return nil
	}

	if err := g.occs.DeleteAll(ctx, existing); err != nil {
		return err
	}
	g.log.Info().Int("year", year).Int("deleted", len(existing)).Msg("existing expected festivals deleted")
	return nil
}

func (g *Generator) findProjectedOverlapping(ctx context.Context, start, end time.Time) ([]contracts.Occurrence, error) {
	all, err := g.occs.FindOverlapping(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var projected []contracts.Occurrence
	for _, occ := range all {
		if occ.IsProjected() {
			projected = append(projected, occ)
		}
	}
	return projected, nil
}

func (g *Generator) latestRealYear(ctx context.Context, fallback int) (int, error) {
	latest, err := g.occs.FindLatestReal(ctx)
	if err != nil {
		return 0, err
	}
	if latest == nil || latest.Start == nil {
		return fallback, nil
	}
	return latest.Start.Year(), nil
}
