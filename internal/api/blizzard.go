package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"stillnoob/internal/config"

	"github.com/valyala/fasthttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// BlizzardClient talks to the Battle.net Game Data / Profile APIs.
// Tokens are regional but the EU token is accepted everywhere for
// client-credentials flows, so a single token source suffices.
type BlizzardClient struct {
	tokens oauth2.TokenSource
	client *fasthttp.Client
}

func NewBlizzardClient(cfg *config.Config) *BlizzardClient {
	cc := clientcredentials.Config{
		ClientID:     cfg.BlizzClientID,
		ClientSecret: cfg.BlizzClientSecret,
		TokenURL:     "https://oauth.battle.net/token",
	}

	return &BlizzardClient{
		tokens: cc.TokenSource(context.Background()),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *BlizzardClient) GetCharacterSummary(ctx context.Context, region, realmSlug, name string) (*BlizzCharacterSummary, error) {
	u := fmt.Sprintf(
		"https://%s.api.blizzard.com/profile/wow/character/%s/%s?namespace=profile-%s&locale=en_US",
		region,
		url.PathEscape(realmSlug),
		url.PathEscape(strings.ToLower(name)),
		region,
	)

	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire token: %w", err)
	}
	return doGet[BlizzCharacterSummary](ctx, c.client, u, "Bearer "+token.AccessToken)
}

func (c *BlizzardClient) GetCharacterMedia(ctx context.Context, region, realmSlug, name string) (*BlizzCharacterMedia, error) {
	u := fmt.Sprintf(
		"https://%s.api.blizzard.com/profile/wow/character/%s/%s/character-media?namespace=profile-%s&locale=en_US",
		region,
		url.PathEscape(realmSlug),
		url.PathEscape(strings.ToLower(name)),
		region,
	)

	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire token: %w", err)
	}
	return doGet[BlizzCharacterMedia](ctx, c.client, u, "Bearer "+token.AccessToken)
}

type BlizzCharacterSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
	Realm struct {
		Slug string `json:"slug"`
		Name string `json:"name"`
	} `json:"realm"`
	CharacterClass struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"character_class"`
	ActiveSpec struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"active_spec"`
	EquippedItemLevel float64 `json:"equipped_item_level"`
	AverageItemLevel  float64 `json:"average_item_level"`
}

type BlizzCharacterMedia struct {
	Assets []struct {
		Key   string `json:"key"` // "avatar", "inset", "main-raw"
		Value string `json:"value"`
	} `json:"assets"`
}

func (m *BlizzCharacterMedia) Avatar() string {
	for _, a := range m.Assets {
		if a.Key == "avatar" {
			return a.Value
		}
	}
	return ""
}
