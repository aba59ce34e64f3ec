package tvdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api4.thetvdb.com/v4"

// StatusError reports a non-2xx answer from the upstream API.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tvdb: unexpected status %d for %s", e.StatusCode, e.URL)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Options configures a Client.
type Options struct {
	BaseURL           string
	APIKey            string
	PIN               string
	Language          string
	RequestsPerSecond float64
	Logger            zerolog.Logger
}

// Client talks to the TVDB v4 API. It owns authentication and request
// pacing; it does not retry failed calls beyond a single re-login on 401.
type Client struct {
	baseURL    string
	apiKey     string
	pin        string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger

	mu    sync.Mutex
	token string
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   opts.APIKey,
		pin:      opts.PIN,
		language: opts.Language,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		logger:  opts.Logger.With().Str("component", "tvdb").Logger(),
	}
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Login exchanges the API key for a bearer token. TVDB tokens are valid for
// roughly a month; Refresh is scheduled well inside that window.
func (c *Client) Login(ctx context.Context) error {
	if c.apiKey == "" {
		return errors.New("tvdb: api key is not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{"apikey": c.apiKey, "pin": c.pin})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tvdb: login failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, URL: c.baseURL + "/login"}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("tvdb: failed to decode login response: %w", err)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return fmt.Errorf("tvdb: failed to decode login token: %w", err)
	}
	if data.Token == "" {
		return errors.New("tvdb: login returned an empty token")
	}

	c.mu.Lock()
	c.token = data.Token
	c.mu.Unlock()
	c.logger.Debug().Msg("obtained new bearer token")
	return nil
}

// Refresh forces a new login. Used by the daily token-refresh schedule.
func (c *Client) Refresh(ctx context.Context) error {
	return c.Login(ctx)
}

func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	resp, err := c.do(ctx, fullURL, c.bearer())
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := c.Login(ctx); err != nil {
			return err
		}
		if resp, err = c.do(ctx, fullURL, c.bearer()); err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, URL: fullURL}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("tvdb: failed to decode response from %s: %w", path, err)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("tvdb: failed to decode payload from %s: %w", path, err)
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, fullURL, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tvdb: request to %s failed: %w", fullURL, err)
	}
	return resp, nil
}

// SeriesExtended fetches the full series record, including seasons, artwork,
// characters and external ids.
func (c *Client) SeriesExtended(ctx context.Context, id int64) (*SeriesExtended, error) {
	var series SeriesExtended
	if err := c.get(ctx, fmt.Sprintf("/series/%d/extended", id), nil, &series); err != nil {
		return nil, err
	}
	return &series, nil
}

// SeasonByNumber resolves a season by its number within one ordering. It
// returns (nil, nil) when the series has no such season.
func (c *Client) SeasonByNumber(ctx context.Context, seriesID int64, number int, seasonType string) (*SeasonExtended, error) {
	var series SeriesExtended
	q := url.Values{}
	q.Set("short", "true")
	if err := c.get(ctx, fmt.Sprintf("/series/%d/extended", seriesID), q, &series); err != nil {
		return nil, err
	}
	for _, season := range series.Seasons {
		if season.Number == number && strings.EqualFold(season.Type.Type, seasonType) {
			return c.SeasonExtended(ctx, season.ID)
		}
	}
	return nil, nil
}

// SeasonExtended fetches one season with its episode and artwork lists.
func (c *Client) SeasonExtended(ctx context.Context, seasonID int64) (*SeasonExtended, error) {
	var season SeasonExtended
	if err := c.get(ctx, fmt.Sprintf("/seasons/%d/extended", seasonID), nil, &season); err != nil {
		return nil, err
	}
	return &season, nil
}

// EpisodeByNumber resolves an episode by season and episode number within one
// ordering. It returns (nil, nil) when no such episode exists.
func (c *Client) EpisodeByNumber(ctx context.Context, seriesID int64, season, episode int, seasonType string) (*Episode, error) {
	q := url.Values{}
	q.Set("season", strconv.Itoa(season))
	q.Set("episodeNumber", strconv.Itoa(episode))
	q.Set("page", "0")

	var data struct {
		Series   Series    `json:"series"`
		Episodes []Episode `json:"episodes"`
	}
	path := fmt.Sprintf("/series/%d/episodes/%s", seriesID, url.PathEscape(seasonType))
	if err := c.get(ctx, path, q, &data); err != nil {
		return nil, err
	}
	if len(data.Episodes) == 0 {
		return nil, nil
	}
	ep := data.Episodes[0]
	return &ep, nil
}

// EpisodeExtended fetches one episode with its character and remote-id lists.
func (c *Client) EpisodeExtended(ctx context.Context, episodeID int64) (*EpisodeExtended, error) {
	var episode EpisodeExtended
	if err := c.get(ctx, fmt.Sprintf("/episodes/%d/extended", episodeID), nil, &episode); err != nil {
		return nil, err
	}
	return &episode, nil
}

// SeriesArtworks fetches the full artwork list for a series.
func (c *Client) SeriesArtworks(ctx context.Context, seriesID int64) ([]Artwork, error) {
	q := url.Values{}
	if c.language != "" {
		q.Set("lang", c.language)
	}
	var data struct {
		Artworks []Artwork `json:"artworks"`
	}
	if err := c.get(ctx, fmt.Sprintf("/series/%d/artworks", seriesID), q, &data); err != nil {
		return nil, err
	}
	return data.Artworks, nil
}

// SeasonArtworks fetches the artwork list for a season.
func (c *Client) SeasonArtworks(ctx context.Context, seasonID int64) ([]Artwork, error) {
	season, err := c.SeasonExtended(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return season.Artwork, nil
}

// Search runs a series search against the upstream catalog.
func (c *Client) Search(ctx context.Context, query string, year int) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("type", "series")
	q.Set("limit", "20")
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	var results []SearchResult
	if err := c.get(ctx, "/search", q, &results); err != nil {
		return nil, err
	}
	return results, nil
}
