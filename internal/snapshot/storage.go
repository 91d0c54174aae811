package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/lumora-studio/envsim/pkg/redis"
)

const (
	// TTL for all snapshot keys
	snapshotTTL = 24 * time.Hour

	// History entries older than this many simulated days are dropped
	historyMaxDays = 7.0
)

// Storage handles Redis persistence for snapshots
type Storage struct {
	redis  redis.Client
	logger *slog.Logger
}

// NewStorage creates a new storage handler
func NewStorage(redisClient redis.Client, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.Default()
	}
	return &Storage{redis: redisClient, logger: logger}
}

// Save writes the snapshot as the session's latest and appends it to the
// session's rolling history, scored by simulated time
func (s *Storage) Save(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := redis.SnapshotKey(snap.SessionID)
	if err := s.redis.Set(ctx, key, data, snapshotTTL); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	if err := s.redis.Set(ctx, redis.SnapshotLatestKey(), snap.SessionID, snapshotTTL); err != nil {
		return fmt.Errorf("failed to update latest-session pointer: %w", err)
	}

	// History scored by simulated days so restore tooling can seek by sim time
	historyKey := redis.HistoryKey(snap.SessionID)
	score := float64(snap.DaysPassed) + snap.TimeOfDay
	if err := s.redis.ZAdd(ctx, historyKey, score, data); err != nil {
		return fmt.Errorf("failed to append snapshot history: %w", err)
	}

	maxAge := strconv.FormatFloat(score-historyMaxDays, 'f', -1, 64)
	if err := s.redis.ZRemRangeByScore(ctx, historyKey, "-inf", maxAge); err != nil {
		s.logger.Warn("Failed to clean old snapshot history", "session_id", snap.SessionID, "error", err)
	}
	if err := s.redis.Expire(ctx, historyKey, snapshotTTL); err != nil {
		s.logger.Warn("Failed to set TTL on snapshot history", "session_id", snap.SessionID, "error", err)
	}

	count, err := s.redis.ZCard(ctx, historyKey)
	if err != nil {
		s.logger.Warn("Failed to get history size", "session_id", snap.SessionID, "error", err)
	} else {
		s.logger.Debug("Stored snapshot",
			"session_id", snap.SessionID,
			"day", snap.DaysPassed,
			"history_size", count)
	}

	return nil
}

// Load fetches the latest snapshot for a session
func (s *Storage) Load(ctx context.Context, sessionID string) (*Snapshot, error) {
	data, err := s.redis.Get(ctx, redis.SnapshotKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for session %s: %w", sessionID, err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// LoadLatest fetches the most recently saved snapshot across sessions
func (s *Storage) LoadLatest(ctx context.Context) (*Snapshot, error) {
	sessionID, err := s.redis.Get(ctx, redis.SnapshotLatestKey())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve latest session: %w", err)
	}
	return s.Load(ctx, sessionID)
}

// Recent returns up to count history snapshots for a session, newest first
func (s *Storage) Recent(ctx context.Context, sessionID string, count int64) ([]Snapshot, error) {
	members, err := s.redis.ZRevRangeByScoreWithScores(ctx,
		redis.HistoryKey(sessionID), historyMax(), 0, 0, count)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot history: %w", err)
	}

	snaps := make([]Snapshot, 0, len(members))
	for _, m := range members {
		var snap Snapshot
		if err := json.Unmarshal([]byte(m.Member), &snap); err != nil {
			s.logger.Warn("Skipping malformed history entry", "session_id", sessionID, "error", err)
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func historyMax() float64 {
	return 1e12 // effectively +inf for a day-count score
}
