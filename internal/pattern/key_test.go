package pattern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekOfMonth(t *testing.T) {
	tests := []struct {
		day  int
		want int
	}{
		{1, 1},
		{7, 1},
		{8, 2},
		{14, 2},
		{15, 3},
		{21, 3},
		{22, 4},
		{28, 4},
		{29, 5},
		{30, 5},
		{31, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WeekOfMonth(tt.day), "day %d", tt.day)
	}
}

func TestClassify(t *testing.T) {
	// 2024-05-11은 5월 둘째 주 토요일
	start := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)

	key := Classify(start)

	assert.Equal(t, 5, key.Month)
	assert.Equal(t, 2, key.WeekOfMonth)
	assert.Equal(t, time.Saturday, key.Weekday)
}

func TestClassify_KeyEquality(t *testing.T) {
	// 요일 정렬이 달라도 같은 서수 버킷이면 같은 키
	a := Classify(time.Date(2023, 5, 13, 0, 0, 0, 0, time.UTC)) // 2023년 5월 둘째 토요일
	b := Classify(time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)) // 2024년 5월 둘째 토요일

	assert.Equal(t, a, b)
}
