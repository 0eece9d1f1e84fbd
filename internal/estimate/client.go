package estimate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/logging"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
)

// Operation labels used for logs and metrics.
const (
	OpEstimate      = "estimate"
	OpGeneratePDF   = "generate_pdf"
	OpListProjects  = "list_projects"
	OpSaveProject   = "save_project"
	OpDeleteProject = "delete_project"
)

// Options tune the client. Zero values mean no timeout and no rate limit.
type Options struct {
	Timeout   time.Duration
	RateLimit float64
	Burst     int
	Metrics   *metrics.Metrics
}

// Client talks to the external cost-estimation backend. It never retries;
// failures are returned to the caller as typed errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
}

// NewClient creates a new estimator client
func NewClient(baseURL string, opts Options) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
		metrics:    opts.Metrics,
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c
}

// Estimate posts the payload to /estimate and decodes the result.
func (c *Client) Estimate(ctx context.Context, p Payload) (*domain.EstimateResult, error) {
	resp, err := c.do(ctx, OpEstimate, http.MethodPost, "/estimate", p)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out domain.EstimateResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode estimate: %w", err)
	}
	return &out, nil
}

// GeneratePDF posts the flattened project to /generate-pdf and returns the
// PDF stream. The caller must close it.
func (c *Client) GeneratePDF(ctx context.Context, body any) (io.ReadCloser, error) {
	resp, err := c.do(ctx, OpGeneratePDF, http.MethodPost, "/generate-pdf", body)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// RemoteProject is a record kept by the estimator's own project archive.
type RemoteProject struct {
	ID            int64          `json:"id"`
	ProjectType   string         `json:"project_type"`
	InputJSON     map[string]any `json:"input_json"`
	TotalCost     float64        `json:"total_cost"`
	BreakdownJSON map[string]any `json:"breakdown_json"`
	CreatedAt     string         `json:"created_at,omitempty"`
}

// SaveProjectRequest is the body of POST /projects/save.
type SaveProjectRequest struct {
	ProjectType   string         `json:"project_type"`
	InputJSON     map[string]any `json:"input_json"`
	TotalCost     float64        `json:"total_cost"`
	BreakdownJSON map[string]any `json:"breakdown_json"`
}

// ListProjects fetches GET /projects/.
func (c *Client) ListProjects(ctx context.Context) ([]RemoteProject, error) {
	resp, err := c.do(ctx, OpListProjects, http.MethodGet, "/projects/", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out []RemoteProject
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return out, nil
}

// SaveProject posts to /projects/save and returns the id assigned remotely.
func (c *Client) SaveProject(ctx context.Context, req SaveProjectRequest) (int64, error) {
	resp, err := c.do(ctx, OpSaveProject, http.MethodPost, "/projects/save", req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var out struct {
		ProjectID int64 `json:"project_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode save response: %w", err)
	}
	return out.ProjectID, nil
}

// DeleteProject calls DELETE /projects/{id}.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	resp, err := c.do(ctx, OpDeleteProject, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// do sends one request. Non-2xx responses are converted to typed errors and
// their bodies closed; on success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, op, method, path string, body any) (*http.Response, error) {
	logger := logging.NewLogger(ctx)
	start := time.Now()

	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		logger.LogError(op, err)
		c.metrics.RecordGatewayCall(op, time.Since(start), err)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		var apiErr error
		if resp.StatusCode == http.StatusUnprocessableEntity {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			apiErr = parseValidationError(raw)
		} else {
			apiErr = &ServerError{Operation: op, StatusCode: resp.StatusCode}
		}
		logger.LogWarnf(op, "estimator returned status %d: %s", resp.StatusCode, Message(apiErr))
		c.metrics.RecordGatewayCall(op, time.Since(start), apiErr)
		return nil, apiErr
	}

	c.metrics.RecordGatewayCall(op, time.Since(start), nil)
	return resp, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	reqURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(reqURL, "/") {
		reqURL += "/"
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rid := logging.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("estimator request failed: %w", err)
	}
	return resp, nil
}
