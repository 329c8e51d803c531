package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"
)

const rioBaseURL = "https://raider.io/api/v1"

type RaiderIOClient struct {
	client *fasthttp.Client
}

func NewRaiderIOClient() *RaiderIOClient {
	return &RaiderIOClient{
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *RaiderIOClient) GetCharacterProfile(ctx context.Context, region, realm, name string) (*RioProfileResponse, error) {
	u := fmt.Sprintf(
		"%s/characters/profile?region=%s&realm=%s&name=%s&fields=%s",
		rioBaseURL,
		url.QueryEscape(region),
		url.QueryEscape(realm),
		url.QueryEscape(name),
		url.QueryEscape("mythic_plus_scores_by_season:current,mythic_plus_best_runs,mythic_plus_recent_runs,gear"),
	)
	return doGet[RioProfileResponse](ctx, c.client, u, "")
}

func doGet[T any](ctx context.Context, client *fasthttp.Client, url, authorization string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type RioProfileResponse struct {
	Name             string           `json:"name"`
	Race             string           `json:"race"`
	Class            string           `json:"class"`
	ActiveSpecName   string           `json:"active_spec_name"`
	ActiveSpecRole   string           `json:"active_spec_role"` // "DPS", "HEALING", "TANK"
	Region           string           `json:"region"`
	Realm            string           `json:"realm"`
	ThumbnailURL     string           `json:"thumbnail_url"`
	LastCrawledAt    string           `json:"last_crawled_at"`
	MythicPlusScores []RioSeasonScore `json:"mythic_plus_scores_by_season"`
	MythicPlusBest   []RioRun         `json:"mythic_plus_best_runs"`
	MythicPlusRecent []RioRun         `json:"mythic_plus_recent_runs"`
	Gear             RioGear          `json:"gear"`
}

type RioSeasonScore struct {
	Season string `json:"season"`
	Scores struct {
		All    float64 `json:"all"`
		DPS    float64 `json:"dps"`
		Healer float64 `json:"healer"`
		Tank   float64 `json:"tank"`
	} `json:"scores"`
}

type RioRun struct {
	Dungeon             string  `json:"dungeon"`
	ShortName           string  `json:"short_name"`
	MythicLevel         int     `json:"mythic_level"`
	CompletedAt         string  `json:"completed_at"`
	ClearTimeMs         int64   `json:"clear_time_ms"`
	ParTimeMs           int64   `json:"par_time_ms"`
	NumKeystoneUpgrades int     `json:"num_keystone_upgrades"`
	Score               float64 `json:"score"`
	URL                 string  `json:"url"`
}

type RioGear struct {
	ItemLevelEquipped float64 `json:"item_level_equipped"`
	ItemLevelTotal    float64 `json:"item_level_total"`
}

func (p *RioProfileResponse) CurrentScore() float64 {
	if len(p.MythicPlusScores) == 0 {
		return 0
	}
	return p.MythicPlusScores[0].Scores.All
}
