package repository

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"

	"github.com/hazbase/kit/internal/domain"
	"github.com/hazbase/kit/internal/infrastructure/postgres/models"
)

type DefaultNonceRepository struct {
	db *gorm.DB
}

func NewDefaultNonceRepository(db *gorm.DB) *DefaultNonceRepository {
	return &DefaultNonceRepository{db: db}
}

func (r *DefaultNonceRepository) MarkUsed(issuer common.Address, nonce uint64) error {
	model := models.NonceModel{Issuer: issuer.Hex(), Nonce: nonce}
	if err := r.db.Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrNonceAlreadyUsed
		}
		return err
	}
	return nil
}

func (r *DefaultNonceRepository) Release(issuer common.Address, nonce uint64) error {
	return r.db.Delete(&models.NonceModel{Issuer: issuer.Hex(), Nonce: nonce}).Error
}

func (r *DefaultNonceRepository) Used(issuer common.Address, nonce uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.NonceModel{}).
		Where("issuer = ? AND nonce = ?", issuer.Hex(), nonce).
		Count(&count).Error
	return count > 0, err
}

func (r *DefaultNonceRepository) NextNonce(issuer common.Address) (uint64, error) {
	var next uint64
	err := r.db.Model(&models.NonceModel{}).
		Select("COALESCE(MAX(nonce) + 1, 0)").
		Where("issuer = ?", issuer.Hex()).
		Scan(&next).Error
	return next, err
}
