package repository

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"

	"github.com/hazbase/kit/internal/domain"
	"github.com/hazbase/kit/internal/infrastructure/postgres/mappers"
	"github.com/hazbase/kit/internal/infrastructure/postgres/models"
)

type DefaultOfferRepository struct {
	db *gorm.DB
}

func NewDefaultOfferRepository(db *gorm.DB) *DefaultOfferRepository {
	return &DefaultOfferRepository{db: db}
}

func (r *DefaultOfferRepository) CreateOffer(offer *domain.Offer) error {
	if err := r.db.Create(mappers.ToOfferModel(offer)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateOffer
		}
		return err
	}
	return nil
}

func (r *DefaultOfferRepository) UpdateOfferStatus(offerID common.Hash, from, to domain.OfferStatus, settled bool) error {
	// Settled is written unconditionally so a reverted settlement clears the
	// flag along with the status.
	updates := map[string]any{
		"status":     string(to),
		"settled":    settled,
		"updated_at": time.Now(),
	}
	// Guarding on the previous status makes the update a compare-and-swap:
	// a racing transition sees zero rows affected.
	result := r.db.Model(&models.OfferModel{}).
		Where("id = ? AND status = ?", offerID.Hex(), string(from)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.OfferModel{}).Where("id = ?", offerID.Hex()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrOfferNotFound
		}
		return domain.ErrInvalidState
	}
	return nil
}

func (r *DefaultOfferRepository) GetOfferByID(offerID common.Hash) (*domain.Offer, error) {
	var model models.OfferModel
	if err := r.db.Where("id = ?", offerID.Hex()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOffer(&model), nil
}

func (r *DefaultOfferRepository) GetOffersByIssuer(issuer common.Address) ([]*domain.Offer, error) {
	var offerModels []models.OfferModel
	if err := r.db.Where("issuer = ?", issuer.Hex()).Find(&offerModels).Error; err != nil {
		return nil, err
	}
	offers := make([]*domain.Offer, len(offerModels))
	for i := range offerModels {
		offers[i] = mappers.ToDomainOffer(&offerModels[i])
	}
	return offers, nil
}

func (r *DefaultOfferRepository) PruneFinalized(cutoffUnix int64) (int64, error) {
	terminal := []string{
		string(domain.OfferAccepted),
		string(domain.OfferRejected),
		string(domain.OfferCancelled),
	}
	// Payload columns are blanked rather than rows deleted: the tombstone
	// still answers duplicate-id and isSettled lookups.
	result := r.db.Model(&models.OfferModel{}).
		Where("status IN ? AND updated_at < ? AND issuer <> ''", terminal, time.Unix(cutoffUnix, 0)).
		Updates(map[string]any{
			"issuer":        "",
			"investor":      "",
			"token":         "",
			"partition":     "",
			"token_id":      "",
			"amount":        "",
			"class_id":      "",
			"nonce_id":      "",
			"document_hash": "",
			"document_uri":  "",
			"delegated_to":  "",
			"issuer_sig":    nil,
			"custody_token": "",
		})
	return result.RowsAffected, result.Error
}
