package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"edition prefix", "제3회 봄꽃축제", "봄꽃축제"},
		{"trailing year", "봄꽃축제2024", "봄꽃축제"},
		{"projected tag", "[예상] 봄꽃축제", "봄꽃축제"},
		{"edition and year", "제7회 봄꽃축제2025", "봄꽃축제"},
		{"year in middle", "2024 한강 불꽃축제", "한강 불꽃축제"},
		{"plain name untouched", "보령머드축제", "보령머드축제"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestNormalizeName_GroupsYearlyVariants(t *testing.T) {
	// 연도별 이름 변형이 전부 같은 시리즈 키로 떨어져야 한다
	a := NormalizeName("제3회 봄꽃축제2024")
	b := NormalizeName("제7회 봄꽃축제2025")
	c := NormalizeName("[예상] 봄꽃축제")

	assert.Equal(t, a, b)
	assert.Equal(t, b, c)
}
