package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
	"github.com/redis/go-redis/v9"
)

// TTL constants for aggregated snapshots. Fixture lists for a date go
// stale quickly while games are live; probabilities are cheap to
// recompute, so both stay short.
const (
	GamesForDateTTL      = 10 * time.Minute
	GamesForDateFinalTTL = 6 * time.Hour
	ProbabilitiesTTL     = 30 * time.Minute
)

// RedisWriter persists merged aggregation results so repeat requests for
// the same date skip the full multi-provider fan-out. It is optional:
// construct it only when Redis is configured.
type RedisWriter struct {
	client *redis.Client
}

// NewRedisWriter creates a snapshot writer around an existing client.
func NewRedisWriter(client *redis.Client) *RedisWriter {
	return &RedisWriter{client: client}
}

// WriteGamesForDate stores the merged fixture list for a date. The TTL
// stretches once every game in the list is finished.
func (w *RedisWriter) WriteGamesForDate(ctx context.Context, date string, games []models.Event, allFinal bool) error {
	key := fmt.Sprintf("games:date:%s", date)

	data, err := json.Marshal(games)
	if err != nil {
		return fmt.Errorf("marshaling games: %w", err)
	}

	ttl := GamesForDateTTL
	if allFinal {
		ttl = GamesForDateFinalTTL
	}
	return w.client.Set(ctx, key, data, ttl).Err()
}

// ReadGamesForDate returns the cached merged list, or (nil, nil) on a
// cache miss.
func (w *RedisWriter) ReadGamesForDate(ctx context.Context, date string) ([]models.Event, error) {
	key := fmt.Sprintf("games:date:%s", date)

	data, err := w.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading games snapshot: %w", err)
	}

	var games []models.Event
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("unmarshaling games snapshot: %w", err)
	}
	return games, nil
}

// WriteProbabilities stores a computed outcome estimate for an event.
func (w *RedisWriter) WriteProbabilities(ctx context.Context, eventID string, probs *models.WinProbabilities) error {
	key := fmt.Sprintf("probs:event:%s", eventID)

	data, err := json.Marshal(probs)
	if err != nil {
		return fmt.Errorf("marshaling probabilities: %w", err)
	}
	return w.client.Set(ctx, key, data, ProbabilitiesTTL).Err()
}

// ReadProbabilities returns the cached estimate, or (nil, nil) on a miss.
func (w *RedisWriter) ReadProbabilities(ctx context.Context, eventID string) (*models.WinProbabilities, error) {
	key := fmt.Sprintf("probs:event:%s", eventID)

	data, err := w.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading probabilities snapshot: %w", err)
	}

	var probs models.WinProbabilities
	if err := json.Unmarshal(data, &probs); err != nil {
		return nil, fmt.Errorf("unmarshaling probabilities snapshot: %w", err)
	}
	return &probs, nil
}
