package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dinnerplan/backend/internal/models"
	"github.com/dinnerplan/backend/internal/week"
)

// BadgeChannel is the pub/sub channel badge invalidations are published on.
const BadgeChannel = "shopping:badge"

// BadgeCounts is the shopping badge payload: how many one-off items and how
// many current-week days still have something to buy.
type BadgeCounts struct {
	ExtraItems int64 `json:"extra_items"`
	WeekDays   int64 `json:"week_days"`
}

// BadgeService computes the shopping badge and fans out invalidation events
// to in-process subscribers, plus Redis when configured.
type BadgeService struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger

	mu   sync.Mutex
	subs map[chan BadgeCounts]struct{}
}

// NewBadgeService creates a new BadgeService instance. redisClient may be
// nil; invalidations then stay in-process.
func NewBadgeService(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *BadgeService {
	return &BadgeService{
		db:     db,
		redis:  redisClient,
		logger: logger,
		subs:   make(map[chan BadgeCounts]struct{}),
	}
}

// Counts computes the current badge numbers.
func (s *BadgeService) Counts(ctx context.Context) (*BadgeCounts, error) {
	var counts BadgeCounts

	if err := s.db.WithContext(ctx).Model(&models.ExtraItem{}).
		Where("bought = ?", false).
		Count(&counts.ExtraItems).Error; err != nil {
		return nil, fmt.Errorf("could not count extra items: %w", err)
	}

	current := week.Current()
	if err := s.db.WithContext(ctx).
		Table("days").
		Joins("JOIN days_ingredients ON days_ingredients.day_id = days.id").
		Where("days.week = ? AND days.year = ? AND days_ingredients.bought = ?", current.Week, current.Year, false).
		Distinct("days.id").
		Count(&counts.WeekDays).Error; err != nil {
		return nil, fmt.Errorf("could not count week days with open items: %w", err)
	}

	return &counts, nil
}

// Subscribe registers a channel that receives fresh counts on invalidation.
// The channel is buffered; a slow consumer drops updates instead of blocking
// writers.
func (s *BadgeService) Subscribe() chan BadgeCounts {
	ch := make(chan BadgeCounts, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (s *BadgeService) Unsubscribe(ch chan BadgeCounts) {
	s.mu.Lock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
	s.mu.Unlock()
}

// Invalidate recomputes the badge and broadcasts it. Called after any write
// that can change shopping state. Broadcast failures are logged, never
// surfaced to the triggering request.
func (s *BadgeService) Invalidate(ctx context.Context) {
	counts, err := s.Counts(ctx)
	if err != nil {
		s.logger.Warn("could not recompute badge counts", zap.Error(err))
		return
	}

	s.mu.Lock()
	for ch := range s.subs {
		select {
		case ch <- *counts:
		default:
		}
	}
	s.mu.Unlock()

	if s.redis != nil {
		payload := fmt.Sprintf("%d:%d", counts.ExtraItems, counts.WeekDays)
		if err := s.redis.Publish(ctx, BadgeChannel, payload).Err(); err != nil {
			s.logger.Warn("could not publish badge invalidation", zap.Error(err))
		}
	}
}
