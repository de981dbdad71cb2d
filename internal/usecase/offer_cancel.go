package usecase

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hazbase/kit/internal/domain"
	publisher "github.com/hazbase/kit/internal/infrastructure/kafka"
)

// CancelOffer lets the issuer withdraw a pending offer and reclaim escrow.
// Cancellation stays available after expiry: acceptance is already blocked
// then, and the cleanup path keeps escrowed funds from being stranded.
func (uc *DefaultOfferUsecase) CancelOffer(offerID common.Hash, caller common.Address) error {
	defer uc.observe("cancelOffer", time.Now())

	offer, err := uc.OfferRepo.GetOfferByID(offerID)
	if err != nil {
		return uc.recordError("cancelOffer", status.Error(codes.NotFound, domain.ErrOfferNotFound.Error()))
	}
	if caller != offer.Issuer {
		return uc.recordError("cancelOffer",
			status.Error(codes.PermissionDenied, "only the issuer may cancel this offer"))
	}
	if offer.Status != domain.OfferOffered {
		return uc.recordError("cancelOffer", status.Error(codes.FailedPrecondition, domain.ErrInvalidState.Error()))
	}

	if err := uc.OfferRepo.UpdateOfferStatus(offerID, domain.OfferOffered, domain.OfferCancelled, false); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			return uc.recordError("cancelOffer", status.Error(codes.FailedPrecondition, err.Error()))
		}
		return uc.recordError("cancelOffer", status.Errorf(codes.Internal, "failed to update offer status: %v", err))
	}

	if offer.CustodyToken != "" {
		if err := uc.releaseEscrow(offer, offer.Issuer); err != nil {
			uc.revertStatus(offerID, domain.OfferCancelled)
			return uc.recordError("cancelOffer", status.Errorf(codes.Internal, "escrow release failed: %v", err))
		}
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordOfferClosed(string(offer.Asset.Kind), string(domain.OfferCancelled), offer.CustodyToken != "")
	}

	go uc.publishEvent(offerCancelledTopic, offer.ID.Hex(), publisher.OfferEvent{
		EventID: uuid.New().String(),
		OfferID: offer.ID.Hex(),
		Status:  string(domain.OfferCancelled),
	})

	return nil
}
