// Package places is a small client for the Google Places Text Search API,
// used to discover universities by state.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL   = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	DefaultPageDelay = 2 * time.Second
	maxPages         = 3
)

// ErrNoAPIKey is returned by New when no key is configured.
var ErrNoAPIKey = errors.New("places: missing API key")

// Place is one normalized search hit.
type Place struct {
	Name    string
	Lat     float64
	Lng     float64
	Address string
}

// StatusError is a non-OK status reported by the API on the first page.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("places: %s: %s", e.Status, e.Message)
	}
	return "places: " + e.Status
}

type Config struct {
	APIKey  string
	BaseURL string
	Region  string
	Timeout time.Duration
	// PageDelay is how long to wait before requesting a next_page_token;
	// the API rejects tokens used immediately. Zero means DefaultPageDelay.
	PageDelay time.Duration
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Region == "" {
		cfg.Region = "mx"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.PageDelay <= 0 {
		cfg.PageDelay = DefaultPageDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger.With(zap.String("client", "places")),
	}, nil
}

type searchResponse struct {
	Status        string `json:"status"`
	ErrorMessage  string `json:"error_message"`
	NextPageToken string `json:"next_page_token"`
	Results       []struct {
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location *struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// SearchUniversities runs a text search restricted to universities and
// returns at most limit hits with a name and a location. It follows up to
// three pages. A bad status on a later page ends the search with what was
// already collected.
func (c *Client) SearchUniversities(ctx context.Context, query string, limit int) ([]Place, error) {
	params := url.Values{
		"query":  {query},
		"type":   {"university"},
		"region": {c.cfg.Region},
		"key":    {c.cfg.APIKey},
	}

	out := make([]Place, 0, limit)
	for page := 0; page < maxPages && len(out) < limit; page++ {
		resp, err := c.get(ctx, params)
		if err != nil {
			return nil, err
		}
		if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
			if page == 0 {
				return nil, &StatusError{Status: resp.Status, Message: resp.ErrorMessage}
			}
			c.log.Warn("places pagination stopped", zap.String("status", resp.Status), zap.Int("page", page))
			break
		}

		for _, r := range resp.Results {
			if r.Name == "" || r.Geometry.Location == nil {
				continue
			}
			out = append(out, Place{
				Name:    r.Name,
				Lat:     r.Geometry.Location.Lat,
				Lng:     r.Geometry.Location.Lng,
				Address: r.FormattedAddress,
			})
			if len(out) >= limit {
				break
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		params = url.Values{"pagetoken": {resp.NextPageToken}, "key": {c.cfg.APIKey}}
		if err := sleep(ctx, c.cfg.PageDelay); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, params url.Values) (searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return searchResponse{}, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return searchResponse{}, fmt.Errorf("places request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return searchResponse{}, fmt.Errorf("places request: unexpected status code %d", res.StatusCode)
	}
	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return searchResponse{}, fmt.Errorf("places decode: %w", err)
	}
	return body, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
