package generate

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/festa/backend/internal/contracts"
	"github.com/wonny/festa/backend/internal/pattern"
)

// MaxPlausibleDurationDays 예상 축제 지속 일수 상한
// 업스트림 데이터 결함으로 '1년 주기'(365일)가 지속 기간으로 저장된 시리즈가
// 있어, 이를 넘는 평균 지속 기간은 하루짜리 행사로 강제한다.
const MaxPlausibleDurationDays = 360

// Builder 예상 개최 후보 생성기
// 순수 계산만 수행하며 저장은 호출자 책임이다
type Builder struct {
	log zerolog.Logger
}

// NewBuilder 새 생성기 생성
func NewBuilder(log zerolog.Logger) *Builder {
	return &Builder{
		log: log.With().Str("component", "generate.builder").Logger(),
	}
}

// BuildForRange 요청 기간에 대한 예상 개최 후보 생성
//
// 기간이 닿는 모든 연도/월을 돌며, 패턴의 월이 기간에 포함되는 시리즈마다
// 시작일을 투영한다. 기간 밖 후보는 버리고, (정규화 이름, 시작일) 기준으로
// 배치 내 중복을 제거한 뒤 시작일 오름차순으로 돌려준다.
func (b *Builder) BuildForRange(windowStart, windowEnd time.Time, series []contracts.SeriesRecord) []contracts.Occurrence {
	if windowEnd.Before(windowStart) {
		return nil
	}

	years, months := touchedYearsAndMonths(windowStart, windowEnd)

	var result []contracts.Occurrence
	seen := make(map[string]struct{})

	for _, year := range years {
		for _, rec := range series {
			p := rec.Pattern
			if p == nil {
				continue
			}
			if _, ok := months[p.Month]; !ok {
				continue
			}

			start, err := NthWeekday(year, p.Month, p.WeekOfMonth, p.Weekday)
			if err != nil {
				// 시리즈 하나의 잘못된 패턴이 전체 생성을 막으면 안 된다
				b.log.Warn().Err(err).Str("name", rec.Name).Msg("projection skipped")
				continue
			}

			if start.Before(windowStart) || start.After(windowEnd) {
				continue
			}

			duration := p.AvgDurationDays
			if duration > MaxPlausibleDurationDays {
				duration = 0
			}
			end := start.AddDate(0, 0, duration)

			key := pattern.NormalizeName(rec.Name) + "|" + start.Format("2006-01-02")
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			s, e := start, end
			seriesID := rec.ID
			result = append(result, contracts.Occurrence{
				SeriesID: &seriesID,
				Name:     rec.Name,
				Start:    &s,
				End:      &e,
				Origin:   contracts.OriginProjected,
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].Start, result[j].Start
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})

	return result
}

// touchedYearsAndMonths 기간이 닿는 연도 목록(순서 유지)과 월 집합
// (연, 월) 정수로 걷는다. time.AddDate는 1월 30일 + 1개월을 3월 2일로
// 정규화해 중간 달을 통째로 건너뛸 수 있다.
func touchedYearsAndMonths(start, end time.Time) ([]int, map[int]struct{}) {
	var years []int
	yearSeen := make(map[int]struct{})
	months := make(map[int]struct{})

	y, m := start.Year(), int(start.Month())
	endY, endM := end.Year(), int(end.Month())
	for y < endY || (y == endY && m <= endM) {
		if _, ok := yearSeen[y]; !ok {
			yearSeen[y] = struct{}{}
			years = append(years, y)
		}
		months[m] = struct{}{}
		m++
		if m > 12 {
			m = 1
			y++
		}
	}

	return years, months
}
