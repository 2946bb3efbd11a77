package generate

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/festa/backend/internal/contracts"
)

func seriesWithPattern(id int64, name string, month, week int, weekday time.Weekday, duration int) contracts.SeriesRecord {
	return contracts.SeriesRecord{
		ID:   id,
		Name: name,
		Pattern: &contracts.Pattern{
			SampleCount:     3,
			Month:           month,
			WeekOfMonth:     week,
			Weekday:         weekday,
			AvgDurationDays: duration,
		},
	}
}

func TestBuilder_BuildForRange(t *testing.T) {
	b := NewBuilder(zerolog.Nop())

	series := []contracts.SeriesRecord{
		seriesWithPattern(1, "봄꽃축제", 5, 2, time.Saturday, 2),
		seriesWithPattern(2, "가을단풍축제", 10, 3, time.Friday, 1),
	}

	windowStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	result := b.BuildForRange(windowStart, windowEnd, series)

	require.Len(t, result, 2)
	// 시작일 오름차순
	assert.Equal(t, "봄꽃축제", result[0].Name)
	assert.Equal(t, time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC), *result[0].Start)
	assert.Equal(t, time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC), *result[0].End)
	assert.Equal(t, "가을단풍축제", result[1].Name)
	assert.Equal(t, contracts.OriginProjected, result[0].Origin)
	assert.Equal(t, contracts.OriginProjected, result[1].Origin)
}

func TestBuilder_WindowFiltering(t *testing.T) {
	b := NewBuilder(zerolog.Nop())

	series := []contracts.SeriesRecord{
		// 2026-01-30 금요일 투영
		seriesWithPattern(1, "겨울축제", 1, 5, time.Friday, 1),
		// 2026-02-15 일요일 투영
		seriesWithPattern(2, "눈꽃축제", 2, 3, time.Sunday, 1),
	}

	windowStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	result := b.BuildForRange(windowStart, windowEnd, series)

	require.Len(t, result, 1)
	assert.Equal(t, "눈꽃축제", result[0].Name)
	assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), *result[0].Start)
}

func TestBuilder_ProjectionBeforeWindowStartSkipped(t *testing.T) {
	b := NewBuilder(zerolog.Nop())

	// 2월 패턴이지만 투영일(2/1)이 기간 시작(2/10) 이전
	series := []contracts.SeriesRecord{
		seriesWithPattern(1, "정월축제", 2, 1, time.Sunday, 1),
	}

	windowStart := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, b.BuildForRange(windowStart, windowEnd, series))
}

func TestBuilder_DurationCap(t *testing.T) {
	b := NewBuilder(zerolog.Nop())

	// 업스트림 결함: 1년 주기가 지속 기간으로 저장된 경우
	series := []contracts.SeriesRecord{
		seriesWithPattern(1, "연례축제", 5, 2, time.Saturday, 365),
	}

	windowStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	result := b.BuildForRange(windowStart, windowEnd, series)

	require.Len(t, result, 1)
	// 하루짜리 행사로 강제 (시작일 == 종료일)
	assert.Equal(t, *result[0].Start, *result[0].End)
}

func TestBuilder_DedupByNormalizedNameAndStart(t *testing.T) {
	b := NewBuilder(zerolog.Nop())

	// 정규화하면 같은 이름, 같은 패턴 → 같은 시작일로 투영
	series := []contracts.SeriesRecord{
		seriesWithPattern(1, "제3회 봄꽃축제", 5, 2, time.Saturday, 2),
		seriesWithPattern(2, "봄꽃축제 2025", 5, 2, time.Saturday, 2),
	}

	windowStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	result := b.BuildForRange(windowStart, windowEnd, series)

	// 먼저 온 시리즈가 남는다
	require.Len(t, result, 1)
	assert.Equal(t, "제3회 봄꽃축제", result[0].Name)
}

func TestBuilder_MonthEndWindowStartCoversInteriorMonths(t *testing.T) {
	b := NewBuilder(zerolog.Nop())

	// 2026-02-14 토요일 투영
	series := []contracts.SeriesRecord{
		seriesWithPattern(1, "겨울빛축제", 2, 2, time.Saturday, 1),
	}

	// 시작일이 29~31일이면 AddDate 월 걸음이 2월을 건너뛰던 기간
	windowStart := time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	result := b.BuildForRange(windowStart, windowEnd, series)

	require.Len(t, result, 1)
	assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), *result[0].Start)
}

func TestBuilder_MonthOutsideWindowSkipped(t *testing.T) {
	b := NewBuilder(zerolog.Nop())

	series := []contracts.SeriesRecord{
		seriesWithPattern(1, "여름축제", 8, 1, time.Saturday, 1),
	}

	// 8월이 닿지 않는 기간
	windowStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, b.BuildForRange(windowStart, windowEnd, series))
}

func TestBuilder_InvertedWindow(t *testing.T) {
	b := NewBuilder(zerolog.Nop())

	series := []contracts.SeriesRecord{
		seriesWithPattern(1, "봄꽃축제", 5, 2, time.Saturday, 2),
	}

	windowStart := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, b.BuildForRange(windowStart, windowEnd, series))
}

func TestBuilder_MultiYearWindow(t *testing.T) {
	b := NewBuilder(zerolog.Nop())

	series := []contracts.SeriesRecord{
		seriesWithPattern(1, "봄꽃축제", 5, 2, time.Saturday, 2),
	}

	windowStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)

	result := b.BuildForRange(windowStart, windowEnd, series)

	require.Len(t, result, 2)
	assert.Equal(t, 2026, result[0].Start.Year())
	assert.Equal(t, 2027, result[1].Start.Year())
}
