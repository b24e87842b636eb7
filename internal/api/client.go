package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pefman/packet-pals/internal/models"
	"go.uber.org/zap"
)

const defaultTimeout = 8 * time.Second

// Config holds API configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the Packet Pals game server. Every endpoint is a GET with
// query parameters; non-2xx answers carry a plain text body.
type Client struct {
	config Config
	http   *http.Client
	log    *zap.Logger
}

func NewClient(baseURL string) *Client {
	return NewClientWithConfig(Config{BaseURL: baseURL})
}

func NewClientWithConfig(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		log:    zap.NewNop(),
	}
}

// WithLogger sets the logger used for request tracing.
func (c *Client) WithLogger(l *zap.Logger) *Client {
	if l != nil {
		c.log = l
	}
	return c
}

// BaseURL returns the server base the client was built with.
func (c *Client) BaseURL() string { return strings.TrimRight(c.config.BaseURL, "/") }

func (c *Client) do(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	u := c.BaseURL() + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("api: transport error", zap.String("path", path), zap.Error(err))
		return nil, &TransportError{Path: path, Err: err}
	}
	c.log.Debug("api: response", zap.String("path", path), zap.Int("status", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Path: path, Code: resp.StatusCode, Body: string(body)}
	}
	return resp, nil
}

func (c *Client) apiGet(ctx context.Context, path string, q url.Values, out interface{}) error {
	resp, err := c.do(ctx, path, q)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Scan asks the server to scan for networks. The body is ignored.
func (c *Client) Scan(ctx context.Context) error {
	return c.apiGet(ctx, "/scan", nil, nil)
}

// Monsters returns the full scan list.
func (c *Client) Monsters(ctx context.Context) ([]models.Monster, error) {
	var res models.MonstersResponse
	if err := c.apiGet(ctx, "/monsters", nil, &res); err != nil {
		return nil, err
	}
	if res.Monsters == nil {
		return []models.Monster{}, nil
	}
	return res.Monsters, nil
}

func (c *Client) StartBattle(ctx context.Context, wildIndex, partyIndex int) (models.BattleStart, error) {
	q := url.Values{}
	q.Set("wildIndex", strconv.Itoa(wildIndex))
	q.Set("partyIndex", strconv.Itoa(partyIndex))
	var res models.BattleStart
	err := c.apiGet(ctx, "/startBattle", q, &res)
	return res, err
}

func (c *Client) BattleAction(ctx context.Context, action string) (models.BattleTurn, error) {
	q := url.Values{}
	q.Set("action", action)
	var res models.BattleTurn
	err := c.apiGet(ctx, "/battleAction", q, &res)
	return res, err
}

// MyParty returns the party as the server currently holds it.
func (c *Client) MyParty(ctx context.Context) ([]models.PartySlot, error) {
	var res models.PartyResponse
	if err := c.apiGet(ctx, "/myParty", nil, &res); err != nil {
		return nil, err
	}
	if res.Party == nil {
		return []models.PartySlot{}, nil
	}
	return res.Party, nil
}

func (c *Client) RemoveFromParty(ctx context.Context, slot int) (models.PartyMessage, error) {
	q := url.Values{}
	q.Set("slot", strconv.Itoa(slot))
	var res models.PartyMessage
	err := c.apiGet(ctx, "/removeFromParty", q, &res)
	return res, err
}

func (c *Client) SwapPartySlots(ctx context.Context, slot1, slot2 int) (models.PartyMessage, error) {
	q := url.Values{}
	q.Set("slot1", strconv.Itoa(slot1))
	q.Set("slot2", strconv.Itoa(slot2))
	var res models.PartyMessage
	err := c.apiGet(ctx, "/swapPartySlots", q, &res)
	return res, err
}

// DownloadWigle streams the Wigle CSV export. The caller must close the body.
func (c *Client) DownloadWigle(ctx context.Context) (io.ReadCloser, http.Header, error) {
	resp, err := c.do(ctx, "/downloadWigle", nil)
	if err != nil {
		return nil, nil, err
	}
	return resp.Body, resp.Header, nil
}

func (c *Client) ClearWigle(ctx context.Context) error {
	return c.apiGet(ctx, "/clearWigle", nil, nil)
}
