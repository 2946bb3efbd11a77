package pattern

import "time"

// Key 개최일의 분류 키 (월, 주차, 요일)
// 구조적 동등성으로 맵 키로 사용되는 불변 값 타입
type Key struct {
	Month       int
	WeekOfMonth int
	Weekday     time.Weekday
}

// WeekOfMonth 월중 주차 계산: (일-1)/7 + 1
// ISO 주가 아니라 서수 버킷이다. 1-7일 → 1주차, 8-14일 → 2주차, 29-31일 → 5주차.
// 월 초가 무슨 요일이든 "둘째 토요일" 같은 패턴이 같은 버킷에 떨어지게 한다.
func WeekOfMonth(day int) int {
	return (day-1)/7 + 1
}

// Classify 시작일을 분류 키로 변환
func Classify(start time.Time) Key {
	return Key{
		Month:       int(start.Month()),
		WeekOfMonth: WeekOfMonth(start.Day()),
		Weekday:     start.Weekday(),
	}
}

// WeekdayKorean 요일의 한국어 표기
func WeekdayKorean(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "월요일"
	case time.Tuesday:
		return "화요일"
	case time.Wednesday:
		return "수요일"
	case time.Thursday:
		return "목요일"
	case time.Friday:
		return "금요일"
	case time.Saturday:
		return "토요일"
	case time.Sunday:
		return "일요일"
	}
	return ""
}
