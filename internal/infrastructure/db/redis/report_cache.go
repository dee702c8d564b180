package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campuskit/provisioning-system/internal/core/domain"
	"github.com/campuskit/provisioning-system/internal/core/ports"
)

const reportTTL = 24 * time.Hour

// ReportCache stores finished import reports in Redis so operators can
// re-fetch them by import id. Key format: import:report:<import_id>
type ReportCache struct {
	client *redis.Client
}

// NewReportCache creates a ReportCache wrapping the given Redis client.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

func (c *ReportCache) Put(ctx context.Context, report *ports.ImportReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := c.client.Set(ctx, c.key(report.ImportID), payload, reportTTL).Err(); err != nil {
		return fmt.Errorf("cache report: %w", err)
	}
	return nil
}

func (c *ReportCache) Get(ctx context.Context, importID string) (*ports.ImportReport, error) {
	payload, err := c.client.Get(ctx, c.key(importID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}

	var report ports.ImportReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}

func (c *ReportCache) key(importID string) string {
	return fmt.Sprintf("import:report:%s", importID)
}
