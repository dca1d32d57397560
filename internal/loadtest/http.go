package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/parabellum/internal/domain/types"
	"github.com/okian/parabellum/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// PostJSON performs a POST request with a JSON body.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// gridRequest mirrors the JSON body of POST /teams.
type gridRequest struct {
	Rows [][]string `json:"rows"`
}

// outcome of a single submission.
const (
	outcomeSuccess  = "success"
	outcomeMismatch = "mismatch"
	outcomeFailed   = "failed"
)

// submitGrids submits jobs concurrently using a worker pool.
func submitGrids(ctx context.Context, config *Config, jobs []job, stats *Stats) {
	log := logger.Get()
	log.Info(ctx, "submitting grids", logger.Int("grids", len(jobs)), logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/teams?limit=" + strconv.Itoa(config.Limit)

	var (
		successful int64
		mismatched int64
		failed     int64
		submitted  int64
	)

	jobChan := make(chan job, config.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range jobChan {
				result, err := submitGrid(ctx, client, url, j)
				atomic.AddInt64(&submitted, 1)
				switch result {
				case outcomeSuccess:
					atomic.AddInt64(&successful, 1)
				case outcomeMismatch:
					atomic.AddInt64(&mismatched, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
				if err != nil && config.Verbose {
					log.Warn(ctx, "grid not ranked as expected",
						logger.Int("seed", int(j.seed)),
						logger.String("outcome", result),
						logger.Error(err))
				}
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for _, j := range jobs {
			select {
			case <-ctx.Done():
				return
			case jobChan <- j:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Mismatched = int(atomic.LoadInt64(&mismatched))
	stats.Failed = int(atomic.LoadInt64(&failed))
}

// submitGrid posts one grid and compares the answer with the expected report.
func submitGrid(ctx context.Context, client *HTTPClient, url string, j job) (string, error) {
	resp, err := client.PostJSON(ctx, url, gridRequest{Rows: j.rows})
	if err != nil {
		return outcomeFailed, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcomeFailed, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return outcomeFailed, fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var got types.Report
	if err := json.Unmarshal(body, &got); err != nil {
		return outcomeFailed, fmt.Errorf("decode report: %w", err)
	}
	if err := compareReports(j.expected, got); err != nil {
		return outcomeMismatch, err
	}
	return outcomeSuccess, nil
}
