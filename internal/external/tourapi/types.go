package tourapi

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// resultCodeOK TourAPI 정상 응답 코드
const resultCodeOK = "0000"

// listResponse mirrors the searchFestival2 response envelope
type listResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			PageNo     *int            `json:"pageNo"`
			NumOfRows  *int            `json:"numOfRows"`
			TotalCount *int            `json:"totalCount"`
			Items      json.RawMessage `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// Festival is a single festival entry from searchFestival2.
// 모든 필드는 API 원문 그대로 문자열이며, 파싱 헬퍼로 변환한다
type Festival struct {
	ContentID      string `json:"contentid"`
	Title          string `json:"title"`
	Addr1          string `json:"addr1"`
	AreaCode       string `json:"areacode"`
	SigunguCode    string `json:"sigungucode"`
	EventStartDate string `json:"eventstartdate"` // YYYYMMDD
	EventEndDate   string `json:"eventenddate"`   // YYYYMMDD
	FirstImage     string `json:"firstimage"`
	FirstImage2    string `json:"firstimage2"`
	MapX           string `json:"mapx"`
	MapY           string `json:"mapy"`
	Tel            string `json:"tel"`
}

// ContentIDInt64 parses the content ID, 0 when absent or malformed
func (f Festival) ContentIDInt64() int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(f.ContentID), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// StartDate parses eventstartdate, nil when absent or malformed
func (f Festival) StartDate() *time.Time {
	return parseYYYYMMDD(f.EventStartDate)
}

// EndDate parses eventenddate, nil when absent or malformed
func (f Festival) EndDate() *time.Time {
	return parseYYYYMMDD(f.EventEndDate)
}

// MapXFloat parses mapx, nil when absent or malformed
func (f Festival) MapXFloat() *float64 {
	return parseFloat(f.MapX)
}

// MapYFloat parses mapy, nil when absent or malformed
func (f Festival) MapYFloat() *float64 {
	return parseFloat(f.MapY)
}

func parseYYYYMMDD(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return nil
	}
	return &t
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// detailCommonItem is the detailCommon2 item shape (overview only)
type detailCommonItem struct {
	Overview string `json:"overview"`
}

// detailImageItem is the detailImage1 item shape
type detailImageItem struct {
	OriginImgURL string `json:"originimgurl"`
}

// decodeItems extracts the item list from a TourAPI items node.
// 결과가 없으면 items가 빈 문자열("")로 내려오고, 1건이면 객체로
// 내려올 수 있어 배열/객체/빈값을 모두 허용한다
func decodeItems(raw json.RawMessage, out any) error {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == `""` || trimmed == "null" {
		return nil
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return err
	}

	item := strings.TrimSpace(string(wrapper.Item))
	if item == "" || item == "null" {
		return nil
	}
	if strings.HasPrefix(item, "[") {
		return json.Unmarshal(wrapper.Item, out)
	}

	// 단일 객체를 1건짜리 배열로 감싸서 디코딩
	wrapped := append(append([]byte("["), wrapper.Item...), ']')
	return json.Unmarshal(wrapped, out)
}
