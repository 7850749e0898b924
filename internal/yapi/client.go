package yapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/apidex/internal/models"
)

const (
	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	// The platform throttles token-authenticated traffic aggressively.
	DefaultRateLimit = 10
)

// Client is a remote catalog API client. One client serves every
// credentialed project; the token table picks the credential per call.
type Client struct {
	baseURL    string
	tokens     *TokenTable
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout on the default client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimit sets a custom rate limit. Non-positive values fall back
// to the default; a zero limiter would block every request.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			requestsPerSecond = DefaultRateLimit
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a new catalog API client.
func NewClient(baseURL string, tokens *TokenTable, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs an authenticated GET request. All parameters, including the
// project token, travel in the query string.
func (c *Client) get(ctx context.Context, path, projectID string, params url.Values, result interface{}) error {
	token := c.tokens.TokenFor(projectID)
	if token == "" {
		return &AuthError{ProjectID: projectID}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Endpoint: path, Err: err}
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("token", token)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, path, result)
}

// post performs an authenticated POST request. The payload is flattened
// into the JSON body together with the project token.
func (c *Client) post(ctx context.Context, path, projectID string, payload interface{}, result interface{}) error {
	token := c.tokens.TokenFor(projectID)
	if token == "" {
		return &AuthError{ProjectID: projectID}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Endpoint: path, Err: err}
	}

	// Re-encode the payload as a map so the token and project id ride in
	// the same flat body the service expects.
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	body := map[string]interface{}{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	body["token"] = token
	body["project_id"] = projectID

	raw, err = json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path, result)
}

// do executes the request and unwraps the service envelope into result.
func (c *Client) do(req *http.Request, path string, result interface{}) error {
	if c.logger != nil {
		c.logger.Debug().
			Str("method", req.Method).
			Str("endpoint", path).
			Msg("Catalog API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &RemoteError{
			Status:   resp.StatusCode,
			Message:  string(body),
			Endpoint: path,
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if env.ErrCode != 0 {
		return &RemoteError{
			Status:   env.ErrCode,
			Message:  env.ErrMsg,
			Endpoint: path,
		}
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

// GetProject retrieves the project record the given token is scoped to.
func (c *Client) GetProject(ctx context.Context, projectID string) (*models.ProjectInfo, error) {
	var result models.ProjectInfo
	if err := c.get(ctx, "/api/project/get", projectID, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetCategories retrieves the ordered category list for a project.
func (c *Client) GetCategories(ctx context.Context, projectID string) ([]models.CategoryInfo, error) {
	params := url.Values{}
	params.Set("project_id", projectID)

	var result []models.CategoryInfo
	if err := c.get(ctx, "/api/interface/getCatMenu", projectID, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetMenu retrieves a project's full category→interface tree in one call.
func (c *Client) GetMenu(ctx context.Context, projectID string) ([]models.MenuCategory, error) {
	params := url.Values{}
	params.Set("project_id", projectID)

	var result []models.MenuCategory
	if err := c.get(ctx, "/api/interface/list_menu", projectID, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetInterface retrieves the full detail record for one interface.
func (c *Client) GetInterface(ctx context.Context, projectID, interfaceID string) (*models.InterfaceDetail, error) {
	params := url.Values{}
	params.Set("id", interfaceID)

	var result models.InterfaceDetail
	if err := c.get(ctx, "/api/interface/get", projectID, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddInterface creates a new interface and returns its remote-assigned id.
func (c *Client) AddInterface(ctx context.Context, projectID string, payload *models.SavePayload) (int, error) {
	var result savedID
	if err := c.post(ctx, "/api/interface/add", projectID, payload, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

// UpdateInterface updates an existing interface and returns its id.
func (c *Client) UpdateInterface(ctx context.Context, projectID string, payload *models.SavePayload) (int, error) {
	var result savedID
	if err := c.post(ctx, "/api/interface/up", projectID, payload, &result); err != nil {
		return 0, err
	}
	if result.ID == 0 && payload.ID != "" {
		// The up endpoint echoes the full record inconsistently across
		// versions; fall back to the caller-supplied id.
		if id, err := strconv.Atoi(payload.ID); err == nil {
			return id, nil
		}
	}
	return result.ID, nil
}
