package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/liftboard/internal/formula"
	"github.com/2beens/liftboard/internal/lifts"
	"github.com/2beens/liftboard/internal/users"
	"github.com/2beens/liftboard/pkg"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 4096
)

var (
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrEmptyBaseURL = errors.New("base url is required")
)

// APIError is a non 2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("liftboard api: status %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}

// Session holds the token of a logged in user. The zero value is logged out.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

func New(baseURL, version string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		userAgent: "liftctl/" + version,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) SignUp(ctx context.Context, username, password string) (*Session, error) {
	return c.authenticate(ctx, "/user", username, password)
}

func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	return c.authenticate(ctx, "/login", username, password)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string) (*Session, error) {
	var tokenResp users.TokenResponse
	creds := users.Credentials{Username: username, Password: password}
	if err := c.do(ctx, nil, http.MethodPost, path, creds, &tokenResp); err != nil {
		return nil, err
	}
	return &Session{
		Token:     tokenResp.Token,
		Username:  strings.TrimSpace(username),
		ExpiresAt: tokenResp.ExpiresAt,
	}, nil
}

// Logout revokes the session token and clears the session.
func (c *Client) Logout(ctx context.Context, session *Session) error {
	if !session.LoggedIn() {
		return ErrNotLoggedIn
	}
	if err := c.do(ctx, session, http.MethodPost, "/logout", nil, nil); err != nil {
		return err
	}
	*session = Session{}
	return nil
}

func (c *Client) CurrentUser(ctx context.Context, session *Session) (*users.UserWithLifts, error) {
	if !session.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	var user users.UserWithLifts
	if err := c.do(ctx, session, http.MethodGet, "/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UserByName(ctx context.Context, username string) (*users.UserWithLifts, error) {
	var user users.UserWithLifts
	if err := c.do(ctx, nil, http.MethodGet, "/user/"+url.PathEscape(username), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile returns the grouped lifts of username, or of the session owner if username is empty.
func (c *Client) Profile(ctx context.Context, session *Session, username, sortBy, weightType string) (*users.ProfileResponse, error) {
	path := "/profile"
	if username != "" {
		path = "/user/" + url.PathEscape(username) + "/profile"
	} else if !session.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	query := url.Values{}
	if sortBy != "" {
		query.Set("sort_by", sortBy)
	}
	if weightType != "" {
		query.Set("weight_type", weightType)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var profile users.ProfileResponse
	if err := c.do(ctx, session, http.MethodGet, path, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) CreateLift(ctx context.Context, session *Session, input lifts.LiftInput) (*lifts.Lift, error) {
	if !session.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	var lift lifts.Lift
	if err := c.do(ctx, session, http.MethodPost, "/lift", input, &lift); err != nil {
		return nil, err
	}
	return &lift, nil
}

func (c *Client) ListLifts(ctx context.Context, session *Session) ([]lifts.Lift, error) {
	if !session.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	var resp lifts.LiftsResponse
	if err := c.do(ctx, session, http.MethodGet, "/lifts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Lifts, nil
}

func (c *Client) UpdateLift(ctx context.Context, session *Session, id uuid.UUID, input lifts.LiftInput) (*lifts.Lift, error) {
	if !session.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	var lift lifts.Lift
	if err := c.do(ctx, session, http.MethodPut, "/lift/"+id.String(), input, &lift); err != nil {
		return nil, err
	}
	return &lift, nil
}

func (c *Client) DeleteLift(ctx context.Context, session *Session, id uuid.UUID) (*lifts.Lift, error) {
	if !session.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	var lift lifts.Lift
	if err := c.do(ctx, session, http.MethodDelete, "/lift/"+id.String(), nil, &lift); err != nil {
		return nil, err
	}
	return &lift, nil
}

func (c *Client) Leaderboard(ctx context.Context, weightType string) (lifts.Leaderboard, error) {
	path := "/leaderboard"
	if weightType != "" {
		path += "?" + url.Values{"weight_type": {weightType}}.Encode()
	}
	var board lifts.Leaderboard
	if err := c.do(ctx, nil, http.MethodGet, path, nil, &board); err != nil {
		return nil, err
	}
	return board, nil
}

func (c *Client) Calculate(ctx context.Context, weight float64, reps int, f string) (*formula.CalculatorResponse, error) {
	query := url.Values{
		"weight": {strconv.FormatFloat(weight, 'f', -1, 64)},
		"reps":   {strconv.Itoa(reps)},
	}
	if f != "" {
		query.Set("formula", f)
	}
	var resp formula.CalculatorResponse
	if err := c.do(ctx, nil, http.MethodGet, "/calculator?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, session *Session, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session.LoggedIn() {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Debugf("close response body: %s", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func readAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}

	var errResp pkg.ErrorResponse
	if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		apiErr.Message = text
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
