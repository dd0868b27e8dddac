package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/models"
)

const (
	BaseURL = "https://stats.nba.com/stats"

	teamPTShotEndpoint = "leaguedashteamptshot"
)

// stats.nba.com rejects requests without browser-like headers
var defaultHeaders = map[string]string{
	"Accept":             "application/json, text/plain, */*",
	"Accept-Language":    "en-US,en;q=0.9",
	"Connection":         "keep-alive",
	"Pragma":             "no-cache",
	"Cache-Control":      "no-cache",
	"Origin":             "https://www.nba.com",
	"Referer":            "https://www.nba.com/stats/",
	"x-nba-stats-origin": "stats",
	"x-nba-stats-token":  "true",
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Client handles stats.nba.com API requests
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// New creates a new stats.nba.com client with a bounded request timeout
func New() *Client {
	return &Client{
		baseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: defaultUserAgent,
	}
}

// NewWithBaseURL creates a client against an alternate base URL (tests)
func NewWithBaseURL(baseURL string) *Client {
	c := New()
	c.baseURL = baseURL
	return c
}

// Query identifies one (season, category, bucket) slice of the team
// shot-clock table
type Query struct {
	Season         string
	SeasonType     string
	TeamID         int
	GeneralRange   models.Category
	ShotClockRange models.ShotClockRange
}

// TeamShotClock fetches one slice of the team point-shot table. The
// response is either a complete ResultTable or an error; a partially
// parsed table is never returned
func (c *Client) TeamShotClock(ctx context.Context, q Query) (*ResultTable, error) {
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, teamPTShotEndpoint, requestParams(q).Encode())
	return c.fetch(ctx, u)
}

// fetch makes an HTTP GET request and parses the resultSets payload
func (c *Client) fetch(ctx context.Context, u string) (*ResultTable, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: making request: %v", models.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: NBA stats API error: status=%d, body=%s",
			models.ErrSourceUnavailable, resp.StatusCode, string(body))
	}

	var payload statsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", models.ErrSourceUnavailable, err)
	}

	return payload.table()
}

// requestParams builds the full parameter set the endpoint expects; the
// service returns errors when optional parameters are omitted entirely
func requestParams(q Query) url.Values {
	params := url.Values{}
	params.Set("Season", q.Season)
	params.Set("SeasonType", q.SeasonType)
	params.Set("PerMode", "Totals")
	params.Set("MeasureType", "Base")
	params.Set("PaceAdjust", "N")
	params.Set("PlusMinus", "N")
	params.Set("Rank", "N")
	params.Set("Outcome", "")
	params.Set("Location", "")
	params.Set("Month", "0")
	params.Set("SeasonSegment", "")
	params.Set("DateFrom", "")
	params.Set("DateTo", "")
	params.Set("OpponentTeamID", "0")
	params.Set("VsConference", "")
	params.Set("VsDivision", "")
	params.Set("GameSegment", "")
	params.Set("LastNGames", "0")
	params.Set("Period", "0")
	params.Set("ShotClockRange", q.ShotClockRange.QueryValue())
	params.Set("ShotDistRange", "")
	params.Set("TouchTimeRange", "")
	params.Set("DribbleRange", "")
	params.Set("CloseDefDistRange", "")
	params.Set("PlayerExperience", "")
	params.Set("PlayerPosition", "")
	params.Set("StarterBench", "")
	params.Set("TeamID", fmt.Sprintf("%d", q.TeamID))
	params.Set("GameScope", "")
	params.Set("GeneralRange", string(q.GeneralRange))
	return params
}
