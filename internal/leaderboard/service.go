// Package leaderboard ranks learners by their best quiz score, kept in a
// Redis sorted set so ranking survives restarts and scales past one node.
package leaderboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Entry represents one ranked learner.
type Entry struct {
	Rank        int       `json:"rank"`
	LearnerID   uuid.UUID `json:"learner_id"`
	DisplayName string    `json:"display_name"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
}

// RecordRequest captures a completed attempt's contribution to the ranking.
type RecordRequest struct {
	LearnerID   uuid.UUID
	DisplayName string
	Score       int
	Total       int
}

// ServiceOptions configures leaderboard behavior.
type ServiceOptions struct {
	TopN           int
	RedisKeyPrefix string
}

// Service manages the quiz score ranking in Redis.
type Service struct {
	redis  *redis.Client
	logger zerolog.Logger
	topN   int
	prefix string
}

// NewService constructs a leaderboard service instance.
func NewService(redis *redis.Client, logger zerolog.Logger, opts ServiceOptions) *Service {
	topN := opts.TopN
	if topN <= 0 {
		topN = 25
	}
	prefix := opts.RedisKeyPrefix
	if prefix == "" {
		prefix = "quizlb"
	}
	return &Service{
		redis:  redis,
		logger: logger.With().Str("component", "leaderboard").Logger(),
		topN:   topN,
		prefix: prefix,
	}
}

func (s *Service) scoresKey() string {
	return s.prefix + ":scores"
}

func (s *Service) namesKey() string {
	return s.prefix + ":names"
}

// Record keeps the learner's best score. Lower results never displace a
// previous personal best.
func (s *Service) Record(ctx context.Context, req RecordRequest) error {
	member := req.LearnerID.String()

	err := s.redis.ZAddGT(ctx, s.scoresKey(), redis.Z{
		Score:  float64(req.Score),
		Member: member,
	}).Err()
	if err != nil {
		return fmt.Errorf("record score: %w", err)
	}

	if req.DisplayName != "" {
		if err := s.redis.HSet(ctx, s.namesKey(), member, req.DisplayName).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("store display name failed")
		}
	}
	return nil
}

// Top returns up to n best scores, highest first.
func (s *Service) Top(ctx context.Context, n int, total int) ([]Entry, error) {
	if n <= 0 || n > s.topN {
		n = s.topN
	}

	ranked, err := s.redis.ZRevRangeWithScores(ctx, s.scoresKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read ranking: %w", err)
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	members := make([]string, len(ranked))
	for i, z := range ranked {
		members[i] = z.Member.(string)
	}
	names, err := s.redis.HMGet(ctx, s.namesKey(), members...).Result()
	if err != nil {
		s.logger.Warn().Err(err).Msg("read display names failed")
		names = make([]interface{}, len(members))
	}

	entries := make([]Entry, 0, len(ranked))
	for i, z := range ranked {
		learnerID, err := uuid.Parse(members[i])
		if err != nil {
			s.logger.Warn().Str("member", members[i]).Msg("skip malformed leaderboard member")
			continue
		}
		name := "Anonymous learner"
		if i < len(names) {
			if str, ok := names[i].(string); ok && str != "" {
				name = str
			}
		}
		entries = append(entries, Entry{
			Rank:        len(entries) + 1,
			LearnerID:   learnerID,
			DisplayName: name,
			Score:       int(z.Score),
			Total:       total,
		})
	}
	return entries, nil
}
