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

// RejectOffer lets the investor decline a pending offer; escrow returns to
// the issuer. Unlike acceptance, rejection needs no signature: it authorizes
// no asset movement toward the caller.
func (uc *DefaultOfferUsecase) RejectOffer(offerID common.Hash, caller common.Address) error {
	defer uc.observe("rejectOffer", time.Now())

	offer, err := uc.OfferRepo.GetOfferByID(offerID)
	if err != nil {
		return uc.recordError("rejectOffer", status.Error(codes.NotFound, domain.ErrOfferNotFound.Error()))
	}
	if caller != offer.Investor {
		return uc.recordError("rejectOffer",
			status.Error(codes.PermissionDenied, "only the investor may reject this offer"))
	}
	if offer.Status != domain.OfferOffered {
		return uc.recordError("rejectOffer", status.Error(codes.FailedPrecondition, domain.ErrInvalidState.Error()))
	}

	if err := uc.OfferRepo.UpdateOfferStatus(offerID, domain.OfferOffered, domain.OfferRejected, false); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			return uc.recordError("rejectOffer", status.Error(codes.FailedPrecondition, err.Error()))
		}
		return uc.recordError("rejectOffer", status.Errorf(codes.Internal, "failed to update offer status: %v", err))
	}

	if offer.CustodyToken != "" {
		if err := uc.releaseEscrow(offer, offer.Issuer); err != nil {
			uc.revertStatus(offerID, domain.OfferRejected)
			return uc.recordError("rejectOffer", status.Errorf(codes.Internal, "escrow release failed: %v", err))
		}
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordOfferClosed(string(offer.Asset.Kind), string(domain.OfferRejected), offer.CustodyToken != "")
	}

	go uc.publishEvent(offerRejectedTopic, offer.ID.Hex(), publisher.OfferEvent{
		EventID: uuid.New().String(),
		OfferID: offer.ID.Hex(),
		Status:  string(domain.OfferRejected),
	})

	return nil
}
