package repository

import (
	"context"

	"github.com/hotelhub/booking-service/internal/models"
	"gorm.io/gorm"
)

// ChainView is a chain with its hotel count computed on read. The count is
// never stored, so there is no counter to keep in sync.
type ChainView struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	HotelCount int64  `json:"hotel_count"`
}

type HotelRepository interface {
	ListChains(ctx context.Context) ([]ChainView, error)
	FindChainByID(ctx context.Context, id uint) (*models.HotelChain, error)
	ListHotelsByChain(ctx context.Context, chainID uint) ([]models.Hotel, error)
	FindHotelByID(ctx context.Context, id uint) (*models.Hotel, error)
}

type hotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) HotelRepository {
	return &hotelRepository{db: db}
}

func (r *hotelRepository) ListChains(ctx context.Context) ([]ChainView, error) {
	var chains []ChainView
	err := r.db.WithContext(ctx).
		Table("hotel_chains").
		Select(`hotel_chains.id, hotel_chains.name, hotel_chains.email,
			hotel_chains.city, hotel_chains.province, hotel_chains.country,
			(SELECT COUNT(*) FROM hotels h WHERE h.chain_id = hotel_chains.id) AS hotel_count`).
		Order("hotel_chains.name ASC").
		Scan(&chains).Error
	if err != nil {
		return nil, err
	}
	return chains, nil
}

func (r *hotelRepository) FindChainByID(ctx context.Context, id uint) (*models.HotelChain, error) {
	var chain models.HotelChain
	if err := r.db.WithContext(ctx).First(&chain, id).Error; err != nil {
		return nil, err
	}
	return &chain, nil
}

func (r *hotelRepository) ListHotelsByChain(ctx context.Context, chainID uint) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := r.db.WithContext(ctx).
		Where("chain_id = ?", chainID).
		Order("id ASC").
		Find(&hotels).Error
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *hotelRepository) FindHotelByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := r.db.WithContext(ctx).First(&hotel, id).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}
