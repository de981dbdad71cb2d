package mappers

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/hazbase/kit/internal/domain"
	"github.com/hazbase/kit/internal/infrastructure/postgres/models"
)

func ToDisputeModel(dispute *domain.Dispute) *models.DisputeModel {
	return &models.DisputeModel{
		ID:          dispute.ID.Hex(),
		Claimant:    dispute.Claimant.Hex(),
		OfferID:     dispute.OfferID.Hex(),
		EvidenceURI: dispute.EvidenceURI,
		Status:      string(dispute.Status),
		CreatedAt:   dispute.CreatedAt,
		UpdatedAt:   dispute.UpdatedAt,
	}
}

func ToDomainDispute(model *models.DisputeModel) *domain.Dispute {
	return &domain.Dispute{
		ID:          common.HexToHash(model.ID),
		Claimant:    common.HexToAddress(model.Claimant),
		OfferID:     common.HexToHash(model.OfferID),
		EvidenceURI: model.EvidenceURI,
		Status:      domain.DisputeStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
