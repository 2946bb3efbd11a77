package pattern

import (
	"regexp"
	"strings"
)

// 연도별 이름 변형 제거용 패턴
// "제12회", 4자리 연도, "[예상]" 태그가 붙어도 같은 축제로 묶여야 한다
var (
	editionRe   = regexp.MustCompile(`제\d+회`)
	yearRe      = regexp.MustCompile(`\d{4}`)
	projectedRe = regexp.MustCompile(`\[예상\]\s*`)
)

// NormalizeName 축제 이름 정규화
// 회차 표기, 4자리 연도, 예상 태그를 제거하고 공백을 정리한다.
// 정규화된 이름이 정확히 일치하는 개최 기록들이 하나의 시리즈로 묶인다.
func NormalizeName(name string) string {
	n := editionRe.ReplaceAllString(name, "")
	n = yearRe.ReplaceAllString(n, "")
	n = projectedRe.ReplaceAllString(n, "")
	return strings.TrimSpace(n)
}
