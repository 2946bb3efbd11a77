package contracts

import "time"

// Origin 개최 레코드의 출처
// 원천 데이터에서 수집된 실제 개최인지, 패턴 분석으로 생성된 예상 개최인지 구분
type Origin string

const (
	// OriginReal 외부 API 동기화로 수집된 실제 개최 기록
	OriginReal Origin = "REAL"
	// OriginProjected 패턴 분석으로 생성된 예상 개최 기록
	OriginProjected Origin = "PROJECTED"
)

// Occurrence 축제의 1회 개최 기록 (실제 또는 예상)
type Occurrence struct {
	ID       int64      `json:"id"`
	SeriesID *int64     `json:"series_id,omitempty"` // 소속 시리즈 (레거시 데이터는 nil)
	Name     string     `json:"name"`
	Start    *time.Time `json:"start,omitempty"`
	End      *time.Time `json:"end,omitempty"`
	Origin   Origin     `json:"origin"`
	RawID    string     `json:"raw_id,omitempty"`    // 원천 데이터 식별자 (TourAPI contentId)
	SourceNm string     `json:"source_nm,omitempty"` // 원천 데이터 출처명
}

// HasDates 시작일과 종료일이 모두 있는지 확인
// 둘 중 하나라도 없으면 패턴 분석에서 제외된다
func (o Occurrence) HasDates() bool {
	return o.Start != nil && o.End != nil
}

// IsProjected 예상 개최 여부
func (o Occurrence) IsProjected() bool {
	return o.Origin == OriginProjected
}

// SeriesRecord 축제 시리즈 대표 레코드
// 같은 정규화 이름을 공유하는 개최 기록들의 메타데이터 보유자
type SeriesRecord struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Province  string   `json:"province,omitempty"` // 시도명
	District  string   `json:"district,omitempty"` // 시군구명
	Address   string   `json:"address,omitempty"`
	TelNo     string   `json:"tel_no,omitempty"`
	Homepage  string   `json:"homepage,omitempty"`
	MapX      *float64 `json:"map_x,omitempty"`
	MapY      *float64 `json:"map_y,omitempty"`
	ImageURL  string   `json:"image_url,omitempty"`
	ThumbURL  string   `json:"thumb_url,omitempty"`
	ImageURLs []string `json:"image_urls,omitempty"`
	Overview  string   `json:"overview,omitempty"`

	// TourAPI 연동
	ContentID    *int64 `json:"content_id,omitempty"`
	DetailLoaded bool   `json:"detail_loaded"`

	// 패턴 분석 결과 (분석 전이면 nil)
	Pattern *Pattern `json:"pattern,omitempty"`
}

// Consistency 패턴 차원(월/주차/요일)의 일관성 라벨
type Consistency string

const (
	ConsistencyFixed       Consistency = "FIXED"        // 모든 개최에서 값이 1가지
	ConsistencyNearlyFixed Consistency = "NEARLY_FIXED" // 값이 2가지
	ConsistencyVariable    Consistency = "VARIABLE"     // 값이 3가지 이상
)

// Pattern 시리즈의 반복 개최 패턴
// 배치 분석에서만 갱신되며, 시리즈당 1개 (재분석 시 덮어쓰기)
type Pattern struct {
	SampleCount     int          `json:"sample_count"`  // 분석에 사용된 개최 횟수
	Month           int          `json:"month"`         // 1-12
	WeekOfMonth     int          `json:"week_of_month"` // 1-5, (일-1)/7+1
	Weekday         time.Weekday `json:"weekday"`
	AvgDurationDays int          `json:"avg_duration_days"`
	Confidence      int          `json:"confidence"` // 0-100
	MonthLabel      Consistency  `json:"month_label"`
	WeekLabel       Consistency  `json:"week_label"`
	DayLabel        Consistency  `json:"day_label"`
	ExpectedPeriod  string       `json:"expected_period"` // 사람이 읽는 예상 개최 시기
	UpdatedAt       time.Time    `json:"updated_at"`
}
