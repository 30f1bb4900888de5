// Package quality_feed pulls per-worker quality scores from the
// external review platform. The feed is slow and rate-limited, so
// results are cached and re-pulled on a fixed schedule instead of per
// request.
package quality_feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/redis"
)

const feedCacheTTL = 35 * time.Minute

type QualityFeedService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      redis.ServiceInterface
}

type feedResponse struct {
	Scores []feedScore `json:"scores"`
}

type feedScore struct {
	WorkerID string  `json:"worker_id"`
	Score    float64 `json:"score"`
	Period   string  `json:"period"`
}

func NewQualityFeedService(baseURL, apiKey string, cache redis.ServiceInterface) *QualityFeedService {
	return &QualityFeedService{
		apiKey:  apiKey,
		baseURL: baseURL,
		cache:   cache,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetScores returns the latest cached feed, fetching from the platform
// only when the cache is cold.
func (s *QualityFeedService) GetScores(ctx context.Context) ([]entity.QualityScore, error) {
	if s.cache != nil {
		var cached []entity.QualityScore
		if err := s.cache.GetQualityFeed(ctx, &cached); err == nil {
			return cached, nil
		}
	}

	return s.RefreshScores(ctx)
}

// RefreshScores re-pulls the feed and replaces the cached copy.
func (s *QualityFeedService) RefreshScores(ctx context.Context) ([]entity.QualityScore, error) {
	scores, err := s.fetchScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quality feed: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.CacheQualityFeed(ctx, scores, feedCacheTTL); err != nil {
			fmt.Printf("Failed to cache quality feed: %v\n", err)
		}
	}

	return scores, nil
}

func (s *QualityFeedService) fetchScores(ctx context.Context) ([]entity.QualityScore, error) {
	url := s.baseURL + "/v1/quality/scores"

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quality feed returned status %d", resp.StatusCode)
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, err
	}

	fetchedAt := time.Now()
	scores := make([]entity.QualityScore, 0, len(feed.Scores))
	for _, entry := range feed.Scores {
		scores = append(scores, entity.QualityScore{
			WorkerID:  entry.WorkerID,
			Score:     entry.Score,
			Period:    entry.Period,
			FetchedAt: fetchedAt,
		})
	}

	return scores, nil
}
