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

type DefaultDisputeRepository struct {
	db *gorm.DB
}

func NewDefaultDisputeRepository(db *gorm.DB) *DefaultDisputeRepository {
	return &DefaultDisputeRepository{db: db}
}

func (r *DefaultDisputeRepository) CreateDispute(dispute *domain.Dispute) error {
	if err := r.db.Create(mappers.ToDisputeModel(dispute)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateDispute
		}
		return err
	}
	return nil
}

func (r *DefaultDisputeRepository) UpdateDisputeStatus(disputeID common.Hash, from, to domain.DisputeStatus) error {
	result := r.db.Model(&models.DisputeModel{}).
		Where("id = ? AND status = ?", disputeID.Hex(), string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.DisputeModel{}).Where("id = ?", disputeID.Hex()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrDisputeNotFound
		}
		return domain.ErrInvalidState
	}
	return nil
}

func (r *DefaultDisputeRepository) GetDisputeByID(disputeID common.Hash) (*domain.Dispute, error) {
	var model models.DisputeModel
	if err := r.db.Where("id = ?", disputeID.Hex()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDisputeNotFound
		}
		return nil, err
	}
	return mappers.ToDomainDispute(&model), nil
}

func (r *DefaultDisputeRepository) GetDisputesByOfferID(offerID common.Hash) ([]*domain.Dispute, error) {
	var disputeModels []models.DisputeModel
	if err := r.db.Where("offer_id = ?", offerID.Hex()).Find(&disputeModels).Error; err != nil {
		return nil, err
	}
	disputes := make([]*domain.Dispute, len(disputeModels))
	for i := range disputeModels {
		disputes[i] = mappers.ToDomainDispute(&disputeModels[i])
	}
	return disputes, nil
}
