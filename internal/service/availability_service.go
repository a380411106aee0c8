package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hotelhub/booking-service/internal/models"
	"github.com/hotelhub/booking-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

// areaCountsKey is the Redis hash holding cached area aggregates, one field
// per stay range. Admission deletes the whole hash.
const areaCountsKey = "availability:area_counts"

type AvailabilityService interface {
	// Search returns free, non-damaged rooms for the stay matching the
	// filter, ordered by chain name then room number. An empty result is a
	// valid outcome, not an error.
	Search(ctx context.Context, filter repository.RoomFilter, stay models.StayRange) ([]repository.RoomView, error)
	// ListRooms is Search without date exclusion: the plain inventory view.
	ListRooms(ctx context.Context, filter repository.RoomFilter) ([]repository.RoomView, error)
	// CountByArea returns the number of free rooms per city/province/country
	// for the stay. Results may be served from a short-lived cache; staleness
	// only affects what the caller sees, admission remains the sole
	// correctness gate.
	CountByArea(ctx context.Context, stay models.StayRange) ([]repository.AreaCount, error)
	// InvalidateAreaCounts drops the cached aggregates after the ledger
	// changes. Safe to call with no cache configured.
	InvalidateAreaCounts(ctx context.Context)
}

type availabilityService struct {
	roomRepo repository.RoomRepository
	rdb      *redis.Client // nil disables caching
	cacheTTL time.Duration
}

func NewAvailabilityService(roomRepo repository.RoomRepository, rdb *redis.Client, cacheTTL time.Duration) AvailabilityService {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &availabilityService{roomRepo: roomRepo, rdb: rdb, cacheTTL: cacheTTL}
}

func (s *availabilityService) Search(ctx context.Context, filter repository.RoomFilter, stay models.StayRange) ([]repository.RoomView, error) {
	if !stay.Valid() {
		return nil, ErrInvalidRange
	}
	return s.roomRepo.ListViews(ctx, filter, &stay)
}

func (s *availabilityService) ListRooms(ctx context.Context, filter repository.RoomFilter) ([]repository.RoomView, error) {
	return s.roomRepo.ListViews(ctx, filter, nil)
}

func (s *availabilityService) CountByArea(ctx context.Context, stay models.StayRange) ([]repository.AreaCount, error) {
	if !stay.Valid() {
		return nil, ErrInvalidRange
	}

	field := stay.CheckIn.Format("2006-01-02") + "/" + stay.CheckOut.Format("2006-01-02")

	if s.rdb != nil {
		if raw, err := s.rdb.HGet(ctx, areaCountsKey, field).Result(); err == nil {
			var cached []repository.AreaCount
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	counts, err := s.roomRepo.CountFreeByArea(ctx, stay)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(counts); err == nil {
			pipe := s.rdb.Pipeline()
			pipe.HSet(ctx, areaCountsKey, field, raw)
			pipe.Expire(ctx, areaCountsKey, s.cacheTTL)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Printf("area count cache write failed: %v", err)
			}
		}
	}
	return counts, nil
}

func (s *availabilityService) InvalidateAreaCounts(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, areaCountsKey).Err(); err != nil {
		log.Printf("area count cache invalidation failed: %v", err)
	}
}
