package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftstats/internal/models"
)

// Client talks to the remote training-log REST API. All list endpoints are
// paginated with at most PageSizeMax items per page; Client merges pages
// transparently. GET responses pass through an injected ResponseCache.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      ResponseCache
	log        *slog.Logger
}

// NewClient creates a Client targeting the given base URL. A nil cache
// disables response caching.
func NewClient(baseURL, apiKey string, cache ResponseCache, log *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cache,
		log:        log,
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	if c.cache != nil {
		if body, ok := c.cache.Get(u); ok {
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if c.cache != nil {
		c.cache.Set(u, body)
	}
	c.log.Debug("api fetch", "url", u, "bytes", len(body))
	return body, nil
}

func pageParams(page, pageSize int) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("pageSize", strconv.Itoa(pageSize))
	return v
}

// getPage fetches and decodes one page of a list endpoint. The items field
// name differs per resource, so decoding goes through the resource-specific
// envelope and extract picks the item slice out of it.
func getPage[E, T any](ctx context.Context, c *Client, path string, page, pageSize int, extract func(E) ([]T, int, int)) (Page[T], error) {
	body, err := c.get(ctx, path, pageParams(page, pageSize))
	if err != nil {
		return Page[T]{}, err
	}
	var env E
	if err := json.Unmarshal(body, &env); err != nil {
		return Page[T]{}, fmt.Errorf("api: decode %s: %w", path, err)
	}
	items, number, count := extract(env)
	return Page[T]{Items: items, Number: number, Count: count}, nil
}

type workoutsEnvelope struct {
	Page      int              `json:"page"`
	PageCount int              `json:"page_count"`
	Workouts  []models.Workout `json:"workouts"`
}

// Workouts returns every logged workout, merging all pages.
func (c *Client) Workouts(ctx context.Context) ([]models.Workout, error) {
	return FetchAll(ctx, func(ctx context.Context, page, pageSize int) (Page[models.Workout], error) {
		return getPage(ctx, c, "/v1/workouts", page, pageSize, func(e workoutsEnvelope) ([]models.Workout, int, int) {
			return e.Workouts, e.Page, e.PageCount
		})
	})
}

type templatesEnvelope struct {
	Page              int                       `json:"page"`
	PageCount         int                       `json:"page_count"`
	ExerciseTemplates []models.ExerciseTemplate `json:"exercise_templates"`
}

// ExerciseTemplates returns the full exercise-template catalog.
func (c *Client) ExerciseTemplates(ctx context.Context) ([]models.ExerciseTemplate, error) {
	return FetchAll(ctx, func(ctx context.Context, page, pageSize int) (Page[models.ExerciseTemplate], error) {
		return getPage(ctx, c, "/v1/exercise_templates", page, pageSize, func(e templatesEnvelope) ([]models.ExerciseTemplate, int, int) {
			return e.ExerciseTemplates, e.Page, e.PageCount
		})
	})
}

type routinesEnvelope struct {
	Page      int              `json:"page"`
	PageCount int              `json:"page_count"`
	Routines  []models.Routine `json:"routines"`
}

// Routines returns every saved routine.
func (c *Client) Routines(ctx context.Context) ([]models.Routine, error) {
	return FetchAll(ctx, func(ctx context.Context, page, pageSize int) (Page[models.Routine], error) {
		return getPage(ctx, c, "/v1/routines", page, pageSize, func(e routinesEnvelope) ([]models.Routine, int, int) {
			return e.Routines, e.Page, e.PageCount
		})
	})
}
