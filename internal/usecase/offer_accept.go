package usecase

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hazbase/kit/internal/domain"
	publisher "github.com/hazbase/kit/internal/infrastructure/kafka"
)

// AcceptOffer settles an offer: the escrowed asset moves to the investor and
// the offer becomes terminal. When the offer names a delegate, only the
// delegate may call this; the investor address itself is refused.
func (uc *DefaultOfferUsecase) AcceptOffer(offerID common.Hash, caller common.Address, investorSig []byte) error {
	defer uc.observe("acceptOffer", time.Now())

	offer, err := uc.OfferRepo.GetOfferByID(offerID)
	if err != nil {
		return uc.recordError("acceptOffer", status.Error(codes.NotFound, domain.ErrOfferNotFound.Error()))
	}
	if offer.Status != domain.OfferOffered {
		return uc.recordError("acceptOffer", status.Error(codes.FailedPrecondition, domain.ErrInvalidState.Error()))
	}
	if time.Now().After(offer.Expiry) {
		return uc.recordError("acceptOffer", status.Error(codes.InvalidArgument, domain.ErrOfferExpired.Error()))
	}

	if offer.Delegated() {
		if caller != offer.DelegatedTo {
			return uc.recordError("acceptOffer",
				status.Error(codes.PermissionDenied, "only the delegated address may accept this offer"))
		}
	} else if caller != offer.Investor {
		return uc.recordError("acceptOffer",
			status.Error(codes.PermissionDenied, "only the investor may accept this offer"))
	}

	// The investor authorizes settlement over the same signing digest the
	// issuer signed; delegates execute but never sign.
	if err := uc.verifySignature(offer, investorSig, offer.Investor); err != nil {
		return uc.recordError("acceptOffer", err)
	}

	// Flip the status first: the compare-and-swap guarantees exactly one of a
	// racing accept/cancel pair wins, and the loser observes a stale status.
	if err := uc.OfferRepo.UpdateOfferStatus(offerID, domain.OfferOffered, domain.OfferAccepted, true); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			return uc.recordError("acceptOffer", status.Error(codes.FailedPrecondition, err.Error()))
		}
		return uc.recordError("acceptOffer", status.Errorf(codes.Internal, "failed to update offer status: %v", err))
	}

	if offer.CustodyToken != "" {
		if err := uc.releaseEscrow(offer, offer.Investor); err != nil {
			uc.revertStatus(offerID, domain.OfferAccepted)
			return uc.recordError("acceptOffer", status.Errorf(codes.Internal, "escrow release failed: %v", err))
		}
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordOfferClosed(string(offer.Asset.Kind), string(domain.OfferAccepted), offer.CustodyToken != "")
	}

	go uc.publishEvent(offerSettledTopic, offer.ID.Hex(), settledEvent(offer))

	return nil
}

func (uc *DefaultOfferUsecase) releaseEscrow(offer *domain.Offer, to common.Address) error {
	custodian, err := uc.Custodians.For(offer.Asset.Kind)
	if err != nil {
		return err
	}
	return custodian.Release(offer.CustodyToken, to)
}

// revertStatus unwinds a compare-and-swap after a failed custodian call.
func (uc *DefaultOfferUsecase) revertStatus(offerID common.Hash, from domain.OfferStatus) {
	if err := uc.OfferRepo.UpdateOfferStatus(offerID, from, domain.OfferOffered, false); err != nil {
		slog.Error("failed to revert offer status", "offer_id", offerID.Hex(), "error", err.Error())
	}
}

// settledEvent echoes the full field set per the settlement notification
// contract.
func settledEvent(offer *domain.Offer) publisher.OfferEvent {
	event := publisher.OfferEvent{
		EventID:      uuid.New().String(),
		OfferID:      offer.ID.Hex(),
		Status:       string(domain.OfferAccepted),
		Issuer:       offer.Issuer.Hex(),
		Investor:     offer.Investor.Hex(),
		Token:        offer.Asset.Token.Hex(),
		Partition:    offer.Asset.Partition.Hex(),
		DocumentHash: offer.DocumentHash.Hex(),
		DocumentURI:  offer.DocumentURI,
		Expiry:       offer.Expiry.Unix(),
		Nonce:        offer.Nonce,
	}
	if offer.Asset.TokenID != nil {
		event.TokenID = offer.Asset.TokenID.String()
	}
	if offer.Asset.Amount != nil {
		event.Amount = offer.Asset.Amount.String()
	}
	if offer.Asset.ClassID != nil {
		event.ClassID = offer.Asset.ClassID.String()
	}
	if offer.Asset.NonceID != nil {
		event.NonceID = offer.Asset.NonceID.String()
	}
	if offer.Delegated() {
		event.DelegatedTo = offer.DelegatedTo.Hex()
	}
	return event
}
