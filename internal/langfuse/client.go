// Package langfuse publishes metrics reports and segment benchmarks to the
// Langfuse ingestion API as traces with numeric scores. If not configured,
// the client operates as a no-op.
package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/blaisecz/meaningful-metrics/internal/domain"
	"github.com/google/uuid"
)

// requestTimeout bounds a single ingestion call.
const requestTimeout = 10 * time.Second

// Client is the interface for Langfuse operations.
type Client interface {
	// IsEnabled returns true if Langfuse is configured and enabled.
	IsEnabled() bool
	// PublishReport records one report as a trace and returns its ID.
	PublishReport(ctx context.Context, name string, report *domain.MetricsReport) (string, error)
	// PublishBenchmark records a benchmark run as a trace keyed by its run
	// ID, with aggregate and per-segment scores.
	PublishBenchmark(ctx context.Context, b *domain.Benchmark) error
}

// Config holds Langfuse client configuration.
type Config struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	Environment string
}

// client is the concrete implementation of Client.
type client struct {
	baseURL     string
	publicKey   string
	secretKey   string
	environment string
	enabled     bool
	httpClient  *http.Client
	now         func() time.Time
}

// NewClient creates a new Langfuse client.
// If baseURL or keys are empty, returns a disabled no-op client.
func NewClient(cfg Config) Client {
	return &client{
		baseURL:     cfg.BaseURL,
		publicKey:   cfg.PublicKey,
		secretKey:   cfg.SecretKey,
		environment: cfg.Environment,
		enabled:     cfg.BaseURL != "" && cfg.PublicKey != "" && cfg.SecretKey != "",
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		now: time.Now,
	}
}

func (c *client) IsEnabled() bool {
	return c.enabled
}

func (c *client) PublishReport(ctx context.Context, name string, report *domain.MetricsReport) (string, error) {
	if !c.enabled {
		return "", nil
	}

	traceID := uuid.New().String()
	events := []ingestionEvent{c.event("trace-create", traceBody{
		ID:       traceID,
		Name:     "metrics-report",
		Output:   report,
		Tags:     []string{string(report.Period)},
		Metadata: c.metadata(map[string]any{"profile": name}),
	})}
	events = append(events, c.reportScores(traceID, "", report)...)

	if err := c.sendBatch(ctx, events); err != nil {
		return "", err
	}
	return traceID, nil
}

func (c *client) PublishBenchmark(ctx context.Context, b *domain.Benchmark) error {
	if !c.enabled {
		return nil
	}

	traceID := b.RunID.String()
	events := []ingestionEvent{c.event("trace-create", traceBody{
		ID:       traceID,
		Name:     "segment-benchmark",
		Output:   b.Aggregate,
		Tags:     []string{string(b.Aggregate.Rating)},
		Metadata: c.metadata(map[string]any{"segments": len(b.Profiles)}),
	})}

	agg := b.Aggregate
	for _, s := range []struct {
		name  string
		value float64
	}{
		{"quality_time_score", agg.QualityTimeScore},
		{"goal_alignment_percent", agg.GoalAlignmentPercent},
		{"distraction_percent", agg.DistractionPercent},
		{"actionability_score", agg.ActionabilityScore},
	} {
		events = append(events, c.score(traceID, s.name, s.value, "population-weighted aggregate"))
	}
	for i := range b.Profiles {
		p := &b.Profiles[i]
		events = append(events, c.reportScores(traceID, p.Name, &p.Results)...)
	}

	return c.sendBatch(ctx, events)
}

// reportScores emits one score per headline metric; comment names the
// segment when the report belongs to one.
func (c *client) reportScores(traceID, comment string, r *domain.MetricsReport) []ingestionEvent {
	return []ingestionEvent{
		c.score(traceID, "quality_time_score", r.QualityTimeScore, comment),
		c.score(traceID, "goal_alignment_percent", r.GoalAlignmentPercent, comment),
		c.score(traceID, "distraction_percent", r.DistractionPercent, comment),
		c.score(traceID, "actionability_score", r.ActionabilityScore, comment),
	}
}

func (c *client) score(traceID, name string, value float64, comment string) ingestionEvent {
	return c.event("score-create", scoreBody{
		ID:      uuid.New().String(),
		TraceID: traceID,
		Name:    name,
		Value:   value,
		Comment: comment,
	})
}

func (c *client) event(eventType string, body any) ingestionEvent {
	return ingestionEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: c.now().UTC().Format(time.RFC3339Nano),
		Body:      body,
	}
}

func (c *client) metadata(m map[string]any) map[string]any {
	if c.environment != "" {
		m["environment"] = c.environment
	}
	return m
}

func (c *client) sendBatch(ctx context.Context, events []ingestionEvent) error {
	payload := batchPayload{Batch: events}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	url := c.baseURL + "/api/public/ingestion"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.publicKey, c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("ingestion failed with status %d", resp.StatusCode)
	}

	return nil
}

// Internal types for HTTP API

type batchPayload struct {
	Batch []ingestionEvent `json:"batch"`
}

type ingestionEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Body      any    `json:"body"`
}

type traceBody struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	Output   any            `json:"output,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type scoreBody struct {
	ID      string  `json:"id"`
	TraceID string  `json:"traceId"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}
