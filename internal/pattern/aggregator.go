package pattern

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/festa/backend/internal/contracts"
)

// MinSampleCount 패턴을 인정하기 위한 최소 개최 횟수
// 경로마다 2/3으로 갈라져 있던 기준을 3으로 통일한다
const MinSampleCount = 3

// Result 단일 시리즈의 패턴 분석 결과
type Result struct {
	Valid           bool
	Key             Key
	SampleCount     int // 분석에 사용된 개최 횟수 (시작/종료일이 모두 있는 기록)
	WinningCount    int // 우세 키의 출현 횟수
	AvgDurationDays int // 우세 키의 평균 지속 일수 (소수점 버림)
	Confidence      int // 0-100
	MonthLabel      contracts.Consistency
	WeekLabel       contracts.Consistency
	DayLabel        contracts.Consistency
	ExpectedPeriod  string
}

// Invalid 무효 결과
func Invalid() Result {
	return Result{}
}

// Aggregator 시리즈 개최 이력의 패턴 집계기
type Aggregator struct {
	minSamples int
	log        zerolog.Logger
}

// NewAggregator 새 집계기 생성
func NewAggregator(log zerolog.Logger) *Aggregator {
	return &Aggregator{
		minSamples: MinSampleCount,
		log:        log.With().Str("component", "pattern.aggregator").Logger(),
	}
}

// Analyze 같은 축제로 믿어지는 개최 이력에서 우세 패턴을 도출
//
// 시작일 또는 종료일이 없는 기록은 제외한다. 우세 키는 출현 빈도 최대,
// 동률이면 먼저 관측된 키가 이긴다 (삽입 순서 유지).
func (a *Aggregator) Analyze(occs []contracts.Occurrence) Result {
	counts := make(map[Key]int)
	durations := make(map[Key][]int)
	var order []Key // 동률 처리용 관측 순서

	usable := 0
	for _, occ := range occs {
		if !occ.HasDates() {
			continue
		}
		usable++

		key := Classify(*occ.Start)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++

		days := int(occ.End.Sub(*occ.Start).Hours() / 24)
		durations[key] = append(durations[key], days)
	}

	if len(order) == 0 || usable < a.minSamples {
		return Invalid()
	}

	// 우세 키 선택 (first-seen wins)
	winner := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[winner] {
			winner = key
		}
	}

	avg := 0
	if ds := durations[winner]; len(ds) > 0 {
		sum := 0
		for _, d := range ds {
			sum += d
		}
		avg = sum / len(ds)
	}

	// 일관성은 우세 키가 아니라 전체 관측값의 고유 개수로 판정한다
	months := make(map[int]struct{})
	weeks := make(map[int]struct{})
	days := make(map[time.Weekday]struct{})
	for _, key := range order {
		months[key.Month] = struct{}{}
		weeks[key.WeekOfMonth] = struct{}{}
		days[key.Weekday] = struct{}{}
	}

	result := Result{
		Valid:           true,
		Key:             winner,
		SampleCount:     usable,
		WinningCount:    counts[winner],
		AvgDurationDays: avg,
		Confidence:      confidence(len(months), len(weeks), len(days)),
		MonthLabel:      consistency(len(months)),
		WeekLabel:       consistency(len(weeks)),
		DayLabel:        consistency(len(days)),
		ExpectedPeriod:  expectedPeriod(len(months), len(weeks), len(days), winner),
	}

	a.log.Debug().
		Int("samples", result.SampleCount).
		Int("month", winner.Month).
		Int("week", winner.WeekOfMonth).
		Str("weekday", winner.Weekday.String()).
		Int("confidence", result.Confidence).
		Msg("pattern analyzed")

	return result
}

// confidence 패턴 신뢰도 점수 (0-100)
// 월 안정성이 가장 중요하므로 월 40점, 주차/요일 각 30점 만점
func confidence(uniqueMonths, uniqueWeeks, uniqueDays int) int {
	score := 0

	switch uniqueMonths {
	case 1:
		score += 40
	case 2:
		score += 30
	default:
		score += 10
	}

	switch uniqueWeeks {
	case 1:
		score += 30
	case 2:
		score += 20
	default:
		score += 5
	}

	switch uniqueDays {
	case 1:
		score += 30
	case 2:
		score += 20
	default:
		score += 5
	}

	return score
}

func consistency(uniqueCount int) contracts.Consistency {
	switch uniqueCount {
	case 1:
		return contracts.ConsistencyFixed
	case 2:
		return contracts.ConsistencyNearlyFixed
	default:
		return contracts.ConsistencyVariable
	}
}

// expectedPeriod 예상 개최 시기 문구 생성
func expectedPeriod(uniqueMonths, uniqueWeeks, uniqueDays int, k Key) string {
	switch {
	case uniqueMonths == 1 && uniqueWeeks == 1 && uniqueDays == 1:
		return fmt.Sprintf("%d월 %d주차 %s", k.Month, k.WeekOfMonth, WeekdayKorean(k.Weekday))
	case uniqueMonths == 1 && uniqueWeeks == 1:
		return fmt.Sprintf("%d월 %d주차 %s 전후", k.Month, k.WeekOfMonth, WeekdayKorean(k.Weekday))
	case uniqueMonths == 1:
		return fmt.Sprintf("%d월 %d주차 전후", k.Month, k.WeekOfMonth)
	case uniqueMonths <= 2:
		return fmt.Sprintf("%d월 경 (%d주차 전후)", k.Month, k.WeekOfMonth)
	default:
		return fmt.Sprintf("매년 %d월 전후 (패턴 불규칙)", k.Month)
	}
}
