// Package chesscom is a thin client for the chess.com published-data API,
// which serves monthly game archives and player profiles as JSON.
package chesscom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://api.chess.com/pub"

// Client talks to the published-data API. The API asks clients to identify
// themselves, so requests always carry the configured User-Agent.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// New returns a Client for the given API root. An empty baseURL means the
// public API.
func New(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Player is one side of an archived game.
type Player struct {
	Username string `json:"username"`
}

// Game is one archived game as the monthly endpoint returns it.
type Game struct {
	URL         string `json:"url"`
	PGN         string `json:"pgn"`
	TimeClass   string `json:"time_class"`
	TimeControl string `json:"time_control"`
	EndTime     int64  `json:"end_time"`
	White       Player `json:"white"`
	Black       Player `json:"black"`
}

// BaseTimeSeconds parses the base clock out of a time control such as
// "600+5" or "1/86400". Zero means the control could not be parsed.
func (g Game) BaseTimeSeconds() int {
	tc := g.TimeControl
	if i := strings.IndexAny(tc, "+/"); i >= 0 {
		tc = tc[:i]
	}
	n, err := strconv.Atoi(tc)
	if err != nil {
		return 0
	}
	return n
}

// Opponent returns the username of whoever played against the given user.
func (g Game) Opponent(username string) string {
	if strings.EqualFold(g.White.Username, username) {
		return g.Black.Username
	}
	return g.White.Username
}

// Profile is a player profile. Joined is a Unix timestamp.
type Profile struct {
	Username string `json:"username"`
	Status   string `json:"status"`
	Joined   int64  `json:"joined"`
}

// StatusError reports a non-200 reply. Monthly archive pages 404 for months
// with no games, so callers often skip rather than abort on this.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chess.com returned %d for %s", e.Code, e.URL)
}

// MonthlyGames fetches the user's games for one calendar month.
func (c *Client) MonthlyGames(ctx context.Context, username string, year int, month time.Month) ([]Game, error) {
	url := fmt.Sprintf("%s/player/%s/games/%d/%02d", c.baseURL, strings.ToLower(username), year, int(month))
	var payload struct {
		Games []Game `json:"games"`
	}
	if err := c.get(ctx, url, &payload); err != nil {
		return nil, err
	}
	return payload.Games, nil
}

// Profile fetches a player profile.
func (c *Client) Profile(ctx context.Context, username string) (*Profile, error) {
	url := fmt.Sprintf("%s/player/%s", c.baseURL, strings.ToLower(username))
	var p Profile
	if err := c.get(ctx, url, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) get(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, URL: url}
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// Month is a calendar month of a player's archive.
type Month struct {
	Year  int
	Month time.Month
}

// MonthsSince lists every calendar month from the month containing `from`
// through the month containing `to`, inclusive.
func MonthsSince(from, to time.Time) []Month {
	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)

	var months []Month
	for !start.After(end) {
		months = append(months, Month{Year: start.Year(), Month: start.Month()})
		start = start.AddDate(0, 1, 0)
	}
	return months
}
