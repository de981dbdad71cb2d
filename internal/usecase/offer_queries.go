package usecase

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hazbase/kit/internal/domain"
)

func (uc *DefaultOfferUsecase) GetOfferByID(offerID common.Hash) (*domain.Offer, error) {
	offer, err := uc.OfferRepo.GetOfferByID(offerID)
	if err != nil {
		return nil, status.Error(codes.NotFound, domain.ErrOfferNotFound.Error())
	}
	return offer, nil
}

func (uc *DefaultOfferUsecase) GetOffersByIssuer(issuer common.Address) ([]*domain.Offer, error) {
	return uc.OfferRepo.GetOffersByIssuer(issuer)
}

func (uc *DefaultOfferUsecase) IsSettled(offerID common.Hash) (bool, error) {
	offer, err := uc.OfferRepo.GetOfferByID(offerID)
	if err != nil {
		return false, status.Error(codes.NotFound, domain.ErrOfferNotFound.Error())
	}
	return offer.Settled, nil
}

func (uc *DefaultOfferUsecase) UsedNonce(issuer common.Address, nonce uint64) (bool, error) {
	return uc.NonceRepo.Used(issuer, nonce)
}

func (uc *DefaultOfferUsecase) NextNonce(issuer common.Address) (uint64, error) {
	return uc.NonceRepo.NextNonce(issuer)
}

// PruneFinalizedOffers compacts terminal offers older than the retention
// window down to id/status tombstones.
func (uc *DefaultOfferUsecase) PruneFinalizedOffers(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).Unix()
	return uc.OfferRepo.PruneFinalized(cutoff)
}
