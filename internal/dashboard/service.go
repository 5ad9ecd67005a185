// Package dashboard assembles the per-campaign NPS summary served to the
// frontend, with a short-lived Redis cache in front of the computation.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/nps"
	"github.com/meunps/platform/internal/service/response"
)

// DefaultCacheTTL keeps dashboards fresh without recomputing on every poll.
const DefaultCacheTTL = 60 * time.Second

// DefaultTrendPeriods is the bucket count for the trend chart.
const DefaultTrendPeriods = 6

// ResponseSource loads a campaign's responses for aggregation.
type ResponseSource interface {
	ListByCampaign(ctx context.Context, userID, campaignID string, f response.ListFilter) ([]domain.NpsResponse, error)
}

// Summary is the aggregate payload for one campaign.
type Summary struct {
	CampaignID string           `json:"campaign_id"`
	Score      int              `json:"score"`
	Breakdown  nps.Breakdown    `json:"breakdown"`
	Trend      []nps.TrendPoint `json:"trend"`
	ComputedAt time.Time        `json:"computed_at"`
}

// Service computes and caches campaign summaries. A nil redis client
// disables caching entirely.
type Service struct {
	responses ResponseSource
	cache     *redis.Client
	ttl       time.Duration
}

// NewService creates a dashboard service. cache may be nil.
func NewService(responses ResponseSource, cache *redis.Client, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{responses: responses, cache: cache, ttl: ttl}
}

func cacheKey(userID, campaignID string) string {
	return fmt.Sprintf("dashboard:%s:%s", userID, campaignID)
}

// CampaignSummary returns the cached summary when fresh, otherwise
// recomputes from the response rows. Cache failures fall through to the
// database; they are logged, never surfaced.
func (s *Service) CampaignSummary(ctx context.Context, userID, campaignID string) (*Summary, error) {
	key := cacheKey(userID, campaignID)

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var cached Summary
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			log.Printf("[dashboard.Service] cache get %s: %v", key, err)
		}
	}

	responses, err := s.responses.ListByCampaign(ctx, userID, campaignID, response.ListFilter{})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		CampaignID: campaignID,
		Score:      nps.Calculate(responses),
		Breakdown:  nps.Categorize(responses),
		Trend:      nps.OverTime(responses, DefaultTrendPeriods),
		ComputedAt: time.Now(),
	}

	if s.cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
				log.Printf("[dashboard.Service] cache set %s: %v", key, err)
			}
		}
	}
	return summary, nil
}

// Invalidate drops the cached summary for a campaign. Best effort: the TTL
// bounds staleness even when the delete is lost.
func (s *Service) Invalidate(ctx context.Context, userID, campaignID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey(userID, campaignID)).Err(); err != nil {
		log.Printf("[dashboard.Service] cache del: %v", err)
	}
}

// InvalidateCampaign drops every cached summary for a campaign regardless of
// viewer. Used by the public submit path, which doesn't know the owner id.
func (s *Service) InvalidateCampaign(ctx context.Context, campaignID string) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, fmt.Sprintf("dashboard:*:%s", campaignID), 100).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("[dashboard.Service] cache del %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("[dashboard.Service] cache scan: %v", err)
	}
}
