// Package apiclient is a typed HTTP client for the travel plan API.
package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"travelplan/internal/models/request_models"
	"travelplan/internal/models/response_models"
)

const travelPlansPath = "/api/travel-plans"

// TokenSource returns the current session token. An empty token sends the request unauthenticated.
type TokenSource func(ctx context.Context) (string, error)

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

type Client struct {
	http   *resty.Client
	tokens TokenSource
	logger zerolog.Logger
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Content-Type", "application/json").
			SetHeader("User-Agent", "travelplan-client/1.0").
			SetTimeout(60 * time.Second),
		tokens: tokens,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.OnBeforeRequest(c.injectToken)
	return c
}

// A failing token source does not abort the request; the server answers 401 instead.
func (c *Client) injectToken(_ *resty.Client, req *resty.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens(req.Context())
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to get auth token")
		return nil
	}
	if token != "" {
		req.SetAuthToken(token)
	}
	return nil
}

func (c *Client) CreateTravelPlan(ctx context.Context, req request_models.CreateTravelPlanRequest) (*response_models.TravelPlanResponse, error) {
	var out envelope[*response_models.TravelPlanResponse]
	if err := c.do(ctx, http.MethodPost, travelPlansPath, req, &out, "Error creating travel plan"); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) GetTravelPlans(ctx context.Context) (*response_models.TravelPlanListResponse, error) {
	var out envelope[*response_models.TravelPlanListResponse]
	if err := c.do(ctx, http.MethodGet, travelPlansPath, nil, &out, "Error getting travel plans"); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) GetTravelPlan(ctx context.Context, id string) (*response_models.TravelPlanResponse, error) {
	var out envelope[*response_models.TravelPlanResponse]
	if err := c.do(ctx, http.MethodGet, travelPlansPath+"/"+id, nil, &out, "Error getting travel plan"); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) UpdateTravelPlan(ctx context.Context, id string, req request_models.UpdateTravelPlanRequest) (*response_models.TravelPlanResponse, error) {
	var out envelope[*response_models.TravelPlanResponse]
	if err := c.do(ctx, http.MethodPut, travelPlansPath+"/"+id, req, &out, "Error updating travel plan"); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) DeleteTravelPlan(ctx context.Context, id string) error {
	var out envelope[any]
	return c.do(ctx, http.MethodDelete, travelPlansPath+"/"+id, nil, &out, "Error deleting travel plan")
}

type successFlag interface {
	ok() (bool, string)
}

func (e *envelope[T]) ok() (bool, string) { return e.Success, e.Message }

func (c *Client) do(ctx context.Context, method, path string, body any, out successFlag, fallbackMsg string) error {
	var failure envelope[any]
	r := c.http.R().
		SetContext(ctx).
		SetResult(out).
		SetError(&failure)
	if body != nil {
		r.SetBody(body)
	}

	resp, err := r.Execute(method, path)
	if err != nil {
		return fmt.Errorf("travel plan API request failed: %w", err)
	}
	if resp.IsError() {
		return newAPIError(resp.StatusCode(), failure.Message, failure.Error)
	}
	if ok, msg := out.ok(); !ok {
		if msg == "" {
			msg = fallbackMsg
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return nil
}
