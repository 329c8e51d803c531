package api

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"stillnoob/internal/config"

	"github.com/valyala/fasthttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	wclTokenURL   = "https://www.warcraftlogs.com/oauth/token"
	wclGraphQLURL = "https://www.warcraftlogs.com/api/v2/client"
)

type WCLClient struct {
	tokens      oauth2.TokenSource
	client      *fasthttp.Client
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

// RateLimitInfo mirrors the API's point-based rateLimitData object.
type RateLimitInfo struct {
	LimitPerHour        int     `json:"limitPerHour"`
	PointsSpentThisHour float64 `json:"pointsSpentThisHour"`
	PointsResetIn       int     `json:"pointsResetIn"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewWCLClient(cfg *config.Config) *WCLClient {
	cc := clientcredentials.Config{
		ClientID:     cfg.WCLClientID,
		ClientSecret: cfg.WCLClientSecret,
		TokenURL:     wclTokenURL,
	}

	return &WCLClient{
		tokens: cc.TokenSource(context.Background()),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         15 * time.Second,
			WriteTimeout:        15 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		rateLimit: RateLimitInfo{
			LimitPerHour: 3600,
			UpdatedAt:    time.Now(),
		},
	}
}

func (c *WCLClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *WCLClient) updateRateLimit(info RateLimitInfo) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()
	info.UpdatedAt = time.Now()
	c.rateLimit = info
}

const reportQuery = `query ($code: String!) {
  reportData {
    report(code: $code) {
      title
      startTime
      endTime
      owner { name }
      zone { id name }
      fights(killType: Encounters) {
        id
        encounterID
        name
        difficulty
        kill
        startTime
        endTime
      }
    }
  }
}`

func (c *WCLClient) GetReport(ctx context.Context, code string) (*ReportResponse, error) {
	return doGraphQL[ReportResponse](ctx, c, reportQuery, map[string]any{"code": code})
}

const fightTablesQuery = `query ($code: String!, $ids: [Int]!) {
  reportData {
    report(code: $code) {
      summary: table(fightIDs: $ids, dataType: Summary)
      damage: table(fightIDs: $ids, dataType: DamageDone)
      healing: table(fightIDs: $ids, dataType: Healing)
      damageTaken: table(fightIDs: $ids, dataType: DamageTaken)
      deaths: table(fightIDs: $ids, dataType: Deaths)
      interrupts: table(fightIDs: $ids, dataType: Interrupts)
      dispels: table(fightIDs: $ids, dataType: Dispels)
    }
  }
}`

func (c *WCLClient) GetFightTables(ctx context.Context, code string, fightID int) (*FightTables, error) {
	resp, err := doGraphQL[fightTablesResponse](ctx, c, fightTablesQuery, map[string]any{
		"code": code,
		"ids":  []int{fightID},
	})
	if err != nil {
		return nil, err
	}
	return resp.ReportData.Report.decode()
}

const rankingsQuery = `query ($code: String!) {
  reportData {
    report(code: $code) {
      rankings
    }
  }
}`

func (c *WCLClient) GetReportRankings(ctx context.Context, code string) (*RankingsResponse, error) {
	resp, err := doGraphQL[rankingsEnvelope](ctx, c, rankingsQuery, map[string]any{"code": code})
	if err != nil {
		return nil, err
	}

	var rankings RankingsResponse
	if len(resp.ReportData.Report.Rankings) > 0 {
		if err := json.Unmarshal(resp.ReportData.Report.Rankings, &rankings); err != nil {
			return nil, fmt.Errorf("failed to decode rankings: %w", err)
		}
	}
	return &rankings, nil
}

const recentReportsQuery = `query ($name: String!, $server: String!, $region: String!, $limit: Int!) {
  characterData {
    character(name: $name, serverSlug: $server, serverRegion: $region) {
      recentReports(limit: $limit) {
        data {
          code
          title
          startTime
          endTime
          zone { id name }
          owner { name }
        }
      }
    }
  }
}`

func (c *WCLClient) GetRecentReports(ctx context.Context, name, realmSlug, region string, limit int) (*RecentReportsResponse, error) {
	return doGraphQL[RecentReportsResponse](ctx, c, recentReportsQuery, map[string]any{
		"name":   name,
		"server": realmSlug,
		"region": region,
		"limit":  limit,
	})
}

type rateLimitResponse struct {
	RateLimitData RateLimitInfo `json:"rateLimitData"`
}

const rateLimitQuery = `query {
  rateLimitData {
    limitPerHour
    pointsSpentThisHour
    pointsResetIn
  }
}`

func (c *WCLClient) GetRateLimit(ctx context.Context) (*RateLimitInfo, error) {
	resp, err := doGraphQL[rateLimitResponse](ctx, c, rateLimitQuery, nil)
	if err != nil {
		return nil, err
	}
	c.updateRateLimit(resp.RateLimitData)
	info := c.GetRateLimitInfo()
	return &info, nil
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func doGraphQL[T any](ctx context.Context, client *WCLClient, query string, variables map[string]any) (*T, error) {
	token, err := client.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire token: %w", err)
	}

	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(wclGraphQLURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var envelope gqlEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Errors) > 0 {
		return nil, fmt.Errorf("GraphQL error: %s", envelope.Errors[0].Message)
	}

	var result T
	if err := json.Unmarshal(envelope.Data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type ReportResponse struct {
	ReportData struct {
		Report struct {
			Title     string  `json:"title"`
			StartTime float64 `json:"startTime"` // unix ms
			EndTime   float64 `json:"endTime"`
			Owner     struct {
				Name string `json:"name"`
			} `json:"owner"`
			Zone struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			} `json:"zone"`
			Fights []ReportFight `json:"fights"`
		} `json:"report"`
	} `json:"reportData"`
}

type ReportFight struct {
	ID          int    `json:"id"`
	EncounterID int    `json:"encounterID"`
	Name        string `json:"name"`
	Difficulty  int    `json:"difficulty"`
	Kill        bool   `json:"kill"`

	// milliseconds relative to report start
	StartTime int64 `json:"startTime"`
	EndTime   int64 `json:"endTime"`
}

// table fields come back as raw JSON scalars wrapped in {"data": ...}
type fightTablesResponse struct {
	ReportData struct {
		Report rawFightTables `json:"report"`
	} `json:"reportData"`
}

type rawFightTables struct {
	Summary     json.RawMessage `json:"summary"`
	Damage      json.RawMessage `json:"damage"`
	Healing     json.RawMessage `json:"healing"`
	DamageTaken json.RawMessage `json:"damageTaken"`
	Deaths      json.RawMessage `json:"deaths"`
	Interrupts  json.RawMessage `json:"interrupts"`
	Dispels     json.RawMessage `json:"dispels"`
}

func (r rawFightTables) decode() (*FightTables, error) {
	var tables FightTables
	for _, part := range []struct {
		name string
		raw  json.RawMessage
		dst  any
	}{
		{"summary", r.Summary, &tables.Summary},
		{"damage", r.Damage, &tables.Damage},
		{"healing", r.Healing, &tables.Healing},
		{"damageTaken", r.DamageTaken, &tables.DamageTaken},
		{"deaths", r.Deaths, &tables.Deaths},
		{"interrupts", r.Interrupts, &tables.Interrupts},
		{"dispels", r.Dispels, &tables.Dispels},
	} {
		if len(part.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(part.raw, part.dst); err != nil {
			return nil, fmt.Errorf("failed to decode %s table: %w", part.name, err)
		}
	}
	return &tables, nil
}

type FightTables struct {
	Summary     SummaryTable `json:"summary"`
	Damage      EntryTable   `json:"damage"`
	Healing     EntryTable   `json:"healing"`
	DamageTaken EntryTable   `json:"damageTaken"`
	Deaths      EntryTable   `json:"deaths"`
	Interrupts  EntryTable   `json:"interrupts"`
	Dispels     EntryTable   `json:"dispels"`
}

type SummaryTable struct {
	Data struct {
		TotalTime     int64 `json:"totalTime"` // ms
		PlayerDetails struct {
			Tanks   []SummaryPlayer `json:"tanks"`
			Healers []SummaryPlayer `json:"healers"`
			DPS     []SummaryPlayer `json:"dps"`
		} `json:"playerDetails"`
	} `json:"data"`
}

type SummaryPlayer struct {
	Name          string   `json:"name"`
	ID            int      `json:"id"`
	GUID          int      `json:"guid"`
	Type          string   `json:"type"` // class
	Server        string   `json:"server"`
	Specs         []string `json:"specs"`
	CombatantInfo struct {
		Auras []struct {
			Ability int    `json:"ability"` // spell id
			Name    string `json:"name"`
			Stacks  int    `json:"stacks"`
		} `json:"auras"`
		PotionUse int `json:"potionUse"`
	} `json:"combatantInfo"`
}

type EntryTable struct {
	Data struct {
		Entries   []TableEntry `json:"entries"`
		TotalTime int64        `json:"totalTime"`
	} `json:"data"`
}

type TableEntry struct {
	Name       string  `json:"name"`
	ID         int     `json:"id"`
	GUID       int     `json:"guid"`
	Type       string  `json:"type"` // class for player rows
	Total      float64 `json:"total"`
	ActiveTime int64   `json:"activeTime"` // ms
}

type rankingsEnvelope struct {
	ReportData struct {
		Report struct {
			Rankings json.RawMessage `json:"rankings"`
		} `json:"report"`
	} `json:"reportData"`
}

type RankingsResponse struct {
	Data []FightRanking `json:"data"`
}

type FightRanking struct {
	FightID int `json:"fightID"`
	Roles   struct {
		Tanks   RoleRanking `json:"tanks"`
		Healers RoleRanking `json:"healers"`
		DPS     RoleRanking `json:"dps"`
	} `json:"roles"`
}

type RoleRanking struct {
	Characters []RankedCharacter `json:"characters"`
}

type RankedCharacter struct {
	Name        string  `json:"name"`
	RankPercent float64 `json:"rankPercent"`
}

type RecentReportsResponse struct {
	CharacterData struct {
		Character struct {
			RecentReports struct {
				Data []RecentReport `json:"data"`
			} `json:"recentReports"`
		} `json:"character"`
	} `json:"characterData"`
}

type RecentReport struct {
	Code      string  `json:"code"`
	Title     string  `json:"title"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Zone      struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"zone"`
	Owner struct {
		Name string `json:"name"`
	} `json:"owner"`
}
