package generate

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidProjection 달력상 계산할 수 없는 패턴 입력
// 잘못된 월/주차를 조용히 넘기지 않고 호출부에서 건너뛰게 한다
var ErrInvalidProjection = errors.New("invalid projection input")

// NthWeekday 해당 연/월의 N번째 요일 날짜 계산
//
// 월의 첫 번째 해당 요일을 찾은 뒤 (week-1)주를 더한다. 결과가 다음 달로
// 넘어가면 한 주를 되돌려 그 달의 마지막 해당 요일을 돌려준다.
// 예: 토요일이 4번뿐인 달에 5주차를 요청하면 4번째(마지막) 토요일.
func NthWeekday(year, month, week int, weekday time.Weekday) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: month %d", ErrInvalidProjection, month)
	}
	if week < 1 || week > 5 {
		return time.Time{}, fmt.Errorf("%w: week %d", ErrInvalidProjection, week)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	date := first.AddDate(0, 0, offset+(week-1)*7)

	if int(date.Month()) != month {
		date = date.AddDate(0, 0, -7)
	}

	return date, nil
}
