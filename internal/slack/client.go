// internal/slack/client.go
// Klien Slack Web API (chat.postMessage, auth.test)

package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultAPIBase = "https://slack.com/api"

// Client membungkus Slack Web API dengan bot token.
type Client struct {
	httpc   *http.Client
	apiBase string
	token   string
	teamID  string // opsional; divalidasi saat AuthTest
}

type Option func(*Client)

// WithAPIBase mengganti endpoint (dipakai test dengan httptest.Server).
func WithAPIBase(u string) Option {
	return func(c *Client) { c.apiBase = strings.TrimSuffix(u, "/") }
}

func WithTeamID(id string) Option {
	return func(c *Client) { c.teamID = strings.TrimSpace(id) }
}

func New(botToken string, opts ...Option) (*Client, error) {
	tok := strings.TrimSpace(botToken)
	if tok == "" {
		return nil, errors.New("slack bot token empty")
	}
	c := &Client{
		httpc:   &http.Client{Timeout: 15 * time.Second},
		apiBase: defaultAPIBase,
		token:   tok,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// apiEnvelope: semua response Slack memakai amplop {ok, error, ...}.
type apiEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type authTestResp struct {
	apiEnvelope
	TeamID string `json:"team_id"`
	Team   string `json:"team"`
	BotID  string `json:"bot_id"`
}

type postMessageResp struct {
	apiEnvelope
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

// AuthTest memverifikasi token (dan team ID bila di-set) saat startup.
func (c *Client) AuthTest(ctx context.Context) error {
	var out authTestResp
	if err := c.call(ctx, "auth.test", map[string]any{}, &out); err != nil {
		return err
	}
	if c.teamID != "" && out.TeamID != c.teamID {
		return fmt.Errorf("slack auth.test: token belongs to team %s, expected %s", out.TeamID, c.teamID)
	}
	return nil
}

// PostMessage mengirim teks ke channel. Mengembalikan timestamp pesan.
func (c *Client) PostMessage(ctx context.Context, channelID, text string) (string, error) {
	if strings.TrimSpace(channelID) == "" {
		return "", errors.New("slack channel id empty")
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("slack message text empty")
	}
	var out postMessageResp
	err := c.call(ctx, "chat.postMessage", map[string]any{
		"channel": channelID,
		"text":    text,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.TS, nil
}

// call melakukan POST JSON ke satu method Web API dan decode amplopnya.
func (c *Client) call(ctx context.Context, method string, payload any, out interface{ envelope() apiEnvelope }) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("slack %s: marshal: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/"+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("slack %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("slack %s: read body: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack %s: http status %d", method, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("slack %s: decode: %w", method, err)
	}
	if env := out.envelope(); !env.OK {
		// Slack memberi kode error string ("channel_not_found", dll.)
		return fmt.Errorf("slack %s: api error: %s", method, env.Error)
	}
	return nil
}

func (e apiEnvelope) envelope() apiEnvelope { return e }
