package scenario

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	intake "github.com/okian/docket/internal/domain/intake"
	"github.com/okian/docket/pkg/logger"
)

// Client is a small JSON client for the docket API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	status, _, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnhealthy, status)
	}
	return nil
}

// AddCase files rec and reports the outcome.
func (c *Client) AddCase(ctx context.Context, rec intake.Record) (string, error) {
	status, _, err := c.do(ctx, http.MethodPost, "/cases", rec)
	if err != nil {
		return outcomeFailed, err
	}
	switch status {
	case http.StatusCreated:
		return outcomeAccepted, nil
	case http.StatusConflict:
		return outcomeDuplicate, nil
	case http.StatusBadRequest:
		return outcomeRejected, nil
	default:
		return outcomeFailed, fmt.Errorf("%w: %d", ErrStatus, status)
	}
}

// Dashboard fetches the full prioritized case table.
func (c *Client) Dashboard(ctx context.Context) (Dashboard, error) {
	var out Dashboard
	return out, c.getJSON(ctx, "/dashboard", &out)
}

// Allocation fetches the current judge allocation.
func (c *Client) Allocation(ctx context.Context) (Allocation, error) {
	var out Allocation
	return out, c.getJSON(ctx, "/allocation", &out)
}

// Simulation fetches the simulation session state.
func (c *Client) Simulation(ctx context.Context) (Simulation, error) {
	var out Simulation
	return out, c.getJSON(ctx, "/simulation", &out)
}

// RunDay advances the simulation by one day.
func (c *Client) RunDay(ctx context.Context) (DayReport, error) {
	var out DayReport
	status, body, err := c.do(ctx, http.MethodPost, "/simulation/day", nil)
	if err != nil {
		return out, err
	}
	if status != http.StatusOK {
		return out, fmt.Errorf("run day: %w: %d", ErrStatus, status)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode day report: %w", err)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("get %s: %w: %d", path, ErrStatus, status)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, data, nil
}

// submitCases files records concurrently using a worker pool.
func submitCases(ctx context.Context, client *Client, config *Config, records []intake.Record, stats *Stats) {
	log := logger.Get()
	log.Info(ctx, "submitting cases", logger.Int("cases", len(records)), logger.Int("workers", config.Workers))

	var accepted, duplicate, rejected, failed, submitted int64

	recordChan := make(chan intake.Record, config.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range recordChan {
				if ctx.Err() != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				outcome, err := client.AddCase(ctx, rec)
				atomic.AddInt64(&submitted, 1)
				switch outcome {
				case outcomeAccepted:
					atomic.AddInt64(&accepted, 1)
				case outcomeDuplicate:
					atomic.AddInt64(&duplicate, 1)
				case outcomeRejected:
					atomic.AddInt64(&rejected, 1)
				default:
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Warn(ctx, "case submission failed",
							logger.String("caseNo", rec.Get(intake.FieldCaseNo)), logger.Error(err))
					}
				}
			}
		}()
	}

	for _, rec := range records {
		recordChan <- rec
	}
	close(recordChan)
	wg.Wait()

	stats.CasesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.CasesAccepted = int(atomic.LoadInt64(&accepted))
	stats.CasesDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.CasesRejected = int(atomic.LoadInt64(&rejected))
	stats.CasesFailed = int(atomic.LoadInt64(&failed))

	log.Info(ctx, "case submission completed",
		logger.Int("accepted", stats.CasesAccepted),
		logger.Int("duplicate", stats.CasesDuplicate),
		logger.Int("rejected", stats.CasesRejected),
		logger.Int("failed", stats.CasesFailed))
}
