package metrics

import (
	"context"
	"database/sql"
	"time"

	"meal-recommender/internal/metrics/metricsdb"
	"meal-recommender/internal/shared"
)

// ExecutionMetric records metadata for a single generation.
type ExecutionMetric struct {
	AgentName        string
	UserID           string
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	Success          bool
	Timestamp        time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	queries *metricsdb.Queries
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: metricsdb.New(db),
	}
}

// Record saves a metric to the database.
func (s *Store) Record(m ExecutionMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	success := int64(0)
	if m.Success {
		success = 1
	}

	return s.queries.InsertExecutionMetric(context.Background(), metricsdb.InsertExecutionMetricParams{
		AgentName:        m.AgentName,
		UserID:           m.UserID,
		Model:            m.Model,
		PromptTokens:     int64(m.PromptTokens),
		CompletionTokens: int64(m.CompletionTokens),
		TotalTokens:      int64(m.PromptTokens + m.CompletionTokens),
		LatencyMs:        m.LatencyMS,
		Success:          success,
		CreatedAt:        ts,
	})
}

// RecordMeta records metrics directly from shared.AgentMeta. Executions that
// never reached the model (zero usage) are skipped.
func (s *Store) RecordMeta(userID string, meta shared.AgentMeta, success bool) error {
	if meta.Usage.IsZero() {
		return nil
	}
	return s.Record(MapUsage(meta.AgentName, userID, meta.Usage, meta.Latency, success))
}

// DailyUsage represents token totals for a single day.
type DailyUsage struct {
	Date            string
	TotalPrompt     int
	TotalCompletion int
	TotalExecution  int
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days).Format("2006-01-02 15:04:05")
	rows, err := s.queries.GetDailyUsage(context.Background(), since)
	if err != nil {
		return nil, err
	}

	var results []DailyUsage
	for _, r := range rows {
		u := DailyUsage{
			TotalExecution: int(r.Count),
		}

		if day, ok := r.Day.(string); ok {
			u.Date = day
		} else {
			u.Date = "Unknown"
		}

		if r.Sum.Valid {
			u.TotalPrompt = int(r.Sum.Float64)
		}
		if r.Sum_2.Valid {
			u.TotalCompletion = int(r.Sum_2.Float64)
		}

		results = append(results, u)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(olderThanDays int) error {
	threshold := time.Now().AddDate(0, 0, -olderThanDays)
	return s.queries.CleanupExecutionMetrics(context.Background(), threshold)
}

// MapUsage converts token usage into an ExecutionMetric.
func MapUsage(agentName, userID string, usage shared.TokenUsage, latency time.Duration, success bool) ExecutionMetric {
	return ExecutionMetric{
		AgentName:        agentName,
		UserID:           userID,
		Model:            usage.Model,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		LatencyMS:        latency.Milliseconds(),
		Success:          success,
		Timestamp:        time.Now().UTC(),
	}
}
