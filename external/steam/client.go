// Package steam implements the Steam Web API calls used for
// cross-platform enrichment: vanity resolution and profile summaries.
package steam

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/faceit-scope/internal/platform/logging"
	"github.com/riskibarqy/faceit-scope/internal/usecase"
)

const (
	defaultBaseURL = "https://api.steampowered.com"
	defaultTimeout = 10 * time.Second
)

type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *logging.Logger
}

type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *fasthttp.Client
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		timeout: timeout,
		httpClient: &fasthttp.Client{
			MaxConnsPerHost:     64,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		logger: logger,
	}
}

// ResolveVanityURL translates a community vanity segment into a
// SteamID64. Empty string when the vanity does not resolve; enrichment
// failures never propagate as errors to the resolution ladder.
func (c *Client) ResolveVanityURL(ctx context.Context, vanity string) (string, error) {
	vanity = strings.TrimSpace(vanity)
	if vanity == "" || c.apiKey == "" {
		return "", nil
	}

	var decoded vanityEnvelope
	ok := c.doRequest(ctx, "/ISteamUser/ResolveVanityURL/v0001/", url.Values{
		"vanityurl": []string{vanity},
	}, &decoded)
	if !ok {
		return "", nil
	}
	if decoded.Response.Success != 1 {
		return "", nil
	}
	return decoded.Response.SteamID, nil
}

// GetPlayerSummary fetches one public profile. Nil when absent.
func (c *Client) GetPlayerSummary(ctx context.Context, steamID64 string) (*usecase.ExternalSteamProfile, error) {
	steamID64 = strings.TrimSpace(steamID64)
	if steamID64 == "" || c.apiKey == "" {
		return nil, nil
	}

	var decoded summariesEnvelope
	ok := c.doRequest(ctx, "/ISteamUser/GetPlayerSummaries/v0002/", url.Values{
		"steamids": []string{steamID64},
	}, &decoded)
	if !ok || len(decoded.Response.Players) == 0 {
		return nil, nil
	}

	player := decoded.Response.Players[0]
	return &usecase.ExternalSteamProfile{
		SteamID64:   player.SteamID,
		PersonaName: player.PersonaName,
		ProfileURL:  player.ProfileURL,
		AvatarURL:   player.AvatarFull,
		CountryCode: player.CountryCode,
	}, nil
}

// doRequest performs one GET and reports whether a decodable 200 body
// arrived. Failures are logged and absorbed.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values, target any) bool {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	query.Set("key", c.apiKey)
	fullURL := c.baseURL + path + "?" + query.Encode()
	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		c.logger.WarnContext(ctx, "steam request failed", "path", path, "error", c.sanitize(err.Error()))
		return false
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.WarnContext(ctx, "steam request non-200", "path", path, "status_code", resp.StatusCode())
		return false
	}

	if err := sonic.Unmarshal(resp.Body(), target); err != nil {
		c.logger.WarnContext(ctx, "steam payload decode failed", "path", path, "error", fmt.Sprintf("%v", err))
		return false
	}
	return true
}

func (c *Client) sanitize(text string) string {
	if c.apiKey == "" {
		return text
	}
	return strings.ReplaceAll(text, c.apiKey, "REDACTED")
}

type vanityEnvelope struct {
	Response struct {
		Success int    `json:"success"`
		SteamID string `json:"steamid"`
	} `json:"response"`
}

type summariesEnvelope struct {
	Response struct {
		Players []struct {
			SteamID     string `json:"steamid"`
			PersonaName string `json:"personaname"`
			ProfileURL  string `json:"profileurl"`
			AvatarFull  string `json:"avatarfull"`
			CountryCode string `json:"loccountrycode"`
		} `json:"players"`
	} `json:"response"`
}
