package tourapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wonny/festa/backend/pkg/config"
	"github.com/wonny/festa/backend/pkg/httputil"
	"github.com/wonny/festa/backend/pkg/logger"
)

const (
	mobileOS  = "ETC"
	mobileApp = "festa-backend"
	pageSize  = 100
)

// Client handles communication with the TourAPI (한국관광공사 KorService)
// ⭐ SSOT: TourAPI 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	serviceKey string
	baseURL    string
}

// NewClient creates a new TourAPI client on the shared HTTP client.
// 호출량 제한은 httputil의 rate limiter로 건다
func NewClient(httpClient *httputil.Client, cfg config.TourAPIConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient.WithRateLimit(cfg.RatePerSec, 1),
		logger:     log,
		serviceKey: cfg.ServiceKey,
		baseURL:    cfg.BaseURL,
	}
}

// fetchJSON performs a GET and returns the raw response body
func (c *Client) fetchJSON(ctx context.Context, path string, params url.Values) ([]byte, error) {
	fullURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

func (c *Client) commonParams() url.Values {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("MobileOS", mobileOS)
	params.Set("MobileApp", mobileApp)
	params.Set("_type", "json")
	return params
}

// FetchFestivals fetches the full festival list (contentTypeId=15) for a year,
// paging through searchFestival2 until the last page.
// areaCode/sigunguCode가 비어 있으면 전국 대상
func (c *Client) FetchFestivals(ctx context.Context, year int, areaCode, sigunguCode string) ([]Festival, error) {
	var result []Festival

	for pageNo := 1; ; pageNo++ {
		params := c.commonParams()
		params.Set("numOfRows", strconv.Itoa(pageSize))
		params.Set("pageNo", strconv.Itoa(pageNo))
		params.Set("arrange", "A")
		params.Set("eventStartDate", fmt.Sprintf("%d0101", year))
		params.Set("eventEndDate", fmt.Sprintf("%d1231", year))
		if areaCode != "" {
			params.Set("areaCode", areaCode)
		}
		if sigunguCode != "" {
			params.Set("sigunguCode", sigunguCode)
		}

		body, err := c.fetchJSON(ctx, "/searchFestival2", params)
		if err != nil {
			return nil, fmt.Errorf("festival list page %d: %w", pageNo, err)
		}

		var resp listResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("festival list page %d: decode response: %w", pageNo, err)
		}

		header := resp.Response.Header
		if header.ResultCode != resultCodeOK {
			return nil, fmt.Errorf("API error: %s - %s", header.ResultCode, header.ResultMsg)
		}

		var items []Festival
		if err := decodeItems(resp.Response.Body.Items, &items); err != nil {
			return nil, fmt.Errorf("festival list page %d: decode items: %w", pageNo, err)
		}
		if len(items) == 0 {
			break
		}
		result = append(result, items...)

		totalCount := 0
		if resp.Response.Body.TotalCount != nil {
			totalCount = *resp.Response.Body.TotalCount
		}
		lastPage := (totalCount + pageSize - 1) / pageSize

		c.logger.WithFields(map[string]interface{}{
			"page":        pageNo,
			"total_count": totalCount,
			"items":       len(items),
		}).Debug("TourAPI festival list page fetched")

		if pageNo >= lastPage {
			break
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"year":  year,
		"count": len(result),
	}).Info("TourAPI festival list fetched")

	return result, nil
}

// FetchOverview fetches the overview text for a content ID via detailCommon2.
// Overview가 없으면 빈 문자열을 반환한다
func (c *Client) FetchOverview(ctx context.Context, contentID int64) (string, error) {
	params := c.commonParams()
	params.Set("contentId", strconv.FormatInt(contentID, 10))
	params.Set("defaultYN", "Y")
	params.Set("overviewYN", "Y")

	body, err := c.fetchJSON(ctx, "/detailCommon2", params)
	if err != nil {
		return "", fmt.Errorf("overview contentId=%d: %w", contentID, err)
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("overview contentId=%d: decode response: %w", contentID, err)
	}
	if header := resp.Response.Header; header.ResultCode != resultCodeOK {
		return "", fmt.Errorf("API error: %s - %s", header.ResultCode, header.ResultMsg)
	}

	var items []detailCommonItem
	if err := decodeItems(resp.Response.Body.Items, &items); err != nil {
		return "", fmt.Errorf("overview contentId=%d: decode items: %w", contentID, err)
	}
	if len(items) == 0 {
		return "", nil
	}
	return items[0].Overview, nil
}

// FetchDetailImages fetches additional image URLs for a content ID via detailImage1
func (c *Client) FetchDetailImages(ctx context.Context, contentID int64) ([]string, error) {
	params := c.commonParams()
	params.Set("contentId", strconv.FormatInt(contentID, 10))
	params.Set("imageYN", "Y")
	params.Set("subImageYN", "Y")
	params.Set("numOfRows", "20")

	body, err := c.fetchJSON(ctx, "/detailImage1", params)
	if err != nil {
		return nil, fmt.Errorf("detail images contentId=%d: %w", contentID, err)
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("detail images contentId=%d: decode response: %w", contentID, err)
	}
	if header := resp.Response.Header; header.ResultCode != resultCodeOK {
		return nil, fmt.Errorf("API error: %s - %s", header.ResultCode, header.ResultMsg)
	}

	var items []detailImageItem
	if err := decodeItems(resp.Response.Body.Items, &items); err != nil {
		return nil, fmt.Errorf("detail images contentId=%d: decode items: %w", contentID, err)
	}

	var urls []string
	for _, item := range items {
		if item.OriginImgURL != "" {
			urls = append(urls, item.OriginImgURL)
		}
	}
	return urls, nil
}
