// Package cache holds the in-memory mentor directory cache. The public
// listing is the hottest read in the API and tolerates staleness up to
// the refresh interval.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"
)

// MentorDataSource defines the interface for mentor directory fetching
type MentorDataSource interface {
	GetAll(ctx context.Context) ([]*models.Mentor, error)
}

const (
	mentorKeyPrefix  = "mentor:id:"
	allMentorsKey    = "mentor:all"
	cacheCheckPeriod = 10 * time.Second
	maxRetries       = 3
	initialRetryWait = 2 * time.Second
)

// MentorCacheInterface defines the interface for the mentor directory cache
type MentorCacheInterface interface {
	Initialize(ctx context.Context) error
	IsReady() bool
	Get() ([]*models.Mentor, error)
	GetByID(id string) (*models.Mentor, error)
	Invalidate()
}

// MentorCache keeps the full mentor directory in memory, keyed by mentor
// id, refreshed in the background at TTL intervals. Reads never block on
// the database.
type MentorCache struct {
	cache      *gocache.Cache
	dataSource MentorDataSource

	mu         sync.RWMutex
	refreshing bool
	ready      bool
	ttl        time.Duration
}

// NewMentorCache creates a new mentor directory cache
func NewMentorCache(dataSource MentorDataSource, ttlSeconds int) *MentorCache {
	return &MentorCache{
		cache:      gocache.New(gocache.NoExpiration, cacheCheckPeriod),
		dataSource: dataSource,
		ttl:        time.Duration(ttlSeconds) * time.Second,
	}
}

// Initialize performs the initial synchronous population and starts the
// background refresh scheduler. Call during startup before accepting
// requests.
func (mc *MentorCache) Initialize(ctx context.Context) error {
	logger.Info("Initializing mentor cache...")
	startTime := time.Now()

	if err := mc.refreshWithRetry(ctx); err != nil {
		logger.Error("Failed to initialize mentor cache", zap.Error(err))
		return err
	}

	mc.mu.Lock()
	mc.ready = true
	mc.mu.Unlock()

	logger.Info("Mentor cache initialized successfully",
		zap.Duration("duration", time.Since(startTime)))

	go mc.schedulePeriodicRefresh()

	return nil
}

// IsReady returns true once the initial population has succeeded
func (mc *MentorCache) IsReady() bool {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.ready
}

// Get returns the cached directory listing. Never triggers a database
// fetch; an expired list yields an empty result rather than blocking.
func (mc *MentorCache) Get() ([]*models.Mentor, error) {
	if !mc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	idsData, found := mc.cache.Get(allMentorsKey)
	if !found {
		metrics.CacheMisses.WithLabelValues("mentor_all").Inc()
		logger.Warn("Mentor directory list not in cache, returning empty")
		return []*models.Mentor{}, nil
	}

	ids, ok := idsData.([]string)
	if !ok {
		logger.Error("Invalid cache data type for mentor directory list")
		return []*models.Mentor{}, nil
	}

	metrics.CacheHits.WithLabelValues("mentor_all").Inc()

	mentors := make([]*models.Mentor, 0, len(ids))
	for _, id := range ids {
		mentor, err := mc.GetByID(id)
		if err != nil {
			// Skip missing entries rather than failing the listing
			continue
		}
		mentors = append(mentors, mentor)
	}
	return mentors, nil
}

// GetByID retrieves a single cached mentor without touching the database
func (mc *MentorCache) GetByID(id string) (*models.Mentor, error) {
	if !mc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	key := mentorKeyPrefix + id
	data, found := mc.cache.Get(key)
	if !found {
		metrics.CacheMisses.WithLabelValues("mentor_by_id").Inc()
		return nil, fmt.Errorf("mentor not cached")
	}

	mentor, ok := data.(*models.Mentor)
	if !ok {
		logger.Error("Invalid cache data type", zap.String("mentor_id", id))
		mc.cache.Delete(key)
		return nil, fmt.Errorf("invalid cache data")
	}

	metrics.CacheHits.WithLabelValues("mentor_by_id").Inc()
	return mentor, nil
}

// Invalidate triggers a non-blocking background refresh. Called after
// profile writes so the directory converges without waiting a full TTL.
func (mc *MentorCache) Invalidate() {
	go func() {
		if err := mc.refreshInBackground(context.Background()); err != nil {
			logger.Error("Cache invalidation refresh failed", zap.Error(err))
		}
	}()
}

func (mc *MentorCache) schedulePeriodicRefresh() {
	ticker := time.NewTicker(mc.ttl)
	defer ticker.Stop()

	for range ticker.C {
		if err := mc.refreshInBackground(context.Background()); err != nil {
			// Keep the scheduler alive; next tick retries
			logger.Error("Scheduled cache refresh failed", zap.Error(err))
		}
	}
}

func (mc *MentorCache) refreshInBackground(ctx context.Context) error {
	mc.mu.Lock()
	if mc.refreshing {
		mc.mu.Unlock()
		logger.Debug("Refresh already in progress, skipping")
		return nil
	}
	mc.refreshing = true
	mc.mu.Unlock()

	defer func() {
		mc.mu.Lock()
		mc.refreshing = false
		mc.mu.Unlock()
	}()

	return mc.refresh(ctx)
}

func (mc *MentorCache) refreshWithRetry(ctx context.Context) error {
	var err error
	wait := initialRetryWait

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = mc.refresh(ctx); err == nil {
			return nil
		}
		logger.Warn("Mentor cache refresh attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < maxRetries {
			time.Sleep(wait)
			wait *= 2
		}
	}
	return fmt.Errorf("cache refresh failed after %d attempts: %w", maxRetries, err)
}

func (mc *MentorCache) refresh(ctx context.Context) error {
	startTime := time.Now()

	mentors, err := mc.dataSource.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch mentors: %w", err)
	}

	ids := make([]string, 0, len(mentors))
	for _, mentor := range mentors {
		mc.cache.Set(mentorKeyPrefix+mentor.ID, mentor, gocache.NoExpiration)
		ids = append(ids, mentor.ID)
	}
	mc.cache.Set(allMentorsKey, ids, gocache.NoExpiration)

	metrics.CacheSize.WithLabelValues("mentor_directory").Set(float64(len(ids)))
	logger.Info("Mentor cache refreshed",
		zap.Int("mentor_count", len(ids)),
		zap.Duration("duration", time.Since(startTime)))

	return nil
}
