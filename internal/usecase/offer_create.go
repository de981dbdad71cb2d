package usecase

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hazbase/kit/internal/digest"
	"github.com/hazbase/kit/internal/domain"
	publisher "github.com/hazbase/kit/internal/infrastructure/kafka"
	offerdto "github.com/hazbase/kit/internal/usecase/dto/offer"
)

// CreateOffer validates and records a signed offer, consuming the issuer's
// nonce and taking custody of the referenced asset. All staged effects are
// unwound when a later step fails, so a failed call leaves no trace.
func (uc *DefaultOfferUsecase) CreateOffer(input *offerdto.CreateOfferInput) (common.Hash, error) {
	defer uc.observe("createOffer", time.Now())

	offer := &domain.Offer{
		Issuer:       input.Issuer,
		Investor:     input.Investor,
		Asset:        input.Asset.Clone(),
		DocumentHash: input.DocumentHash,
		DocumentURI:  input.DocumentURI,
		Expiry:       input.Expiry,
		Nonce:        input.Nonce,
		DelegatedTo:  input.DelegatedTo,
		IssuerSig:    append([]byte(nil), input.IssuerSig...),
	}

	if offer.Issuer == (common.Address{}) {
		return common.Hash{}, uc.recordError("createOffer",
			status.Error(codes.InvalidArgument, "issuer must not be the zero address"))
	}
	if offer.Investor == (common.Address{}) {
		return common.Hash{}, uc.recordError("createOffer",
			status.Error(codes.InvalidArgument, "investor must not be the zero address"))
	}
	if !offer.Expiry.After(time.Now()) {
		return common.Hash{}, uc.recordError("createOffer",
			status.Error(codes.InvalidArgument, domain.ErrOfferExpired.Error()))
	}

	escrowed := !offer.Asset.IsZero()
	var custodian domain.EscrowCustodian
	if escrowed {
		var err error
		custodian, err = uc.Custodians.For(offer.Asset.Kind)
		if err != nil {
			return common.Hash{}, uc.recordError("createOffer",
				status.Error(codes.InvalidArgument, err.Error()))
		}
	}

	if err := uc.verifySignature(offer, offer.IssuerSig, offer.Issuer); err != nil {
		return common.Hash{}, uc.recordError("createOffer", err)
	}

	offer.ID = digest.ComputeOfferID(offer)
	if existing, err := uc.OfferRepo.GetOfferByID(offer.ID); err == nil && existing != nil {
		return common.Hash{}, uc.recordError("createOffer",
			status.Error(codes.AlreadyExists, domain.ErrDuplicateOffer.Error()))
	}

	if err := uc.NonceRepo.MarkUsed(offer.Issuer, offer.Nonce); err != nil {
		if errors.Is(err, domain.ErrNonceAlreadyUsed) {
			return common.Hash{}, uc.recordError("createOffer",
				status.Error(codes.FailedPrecondition, err.Error()))
		}
		return common.Hash{}, uc.recordError("createOffer",
			status.Errorf(codes.Internal, "failed to mark nonce: %v", err))
	}

	if escrowed {
		custodyToken, err := custodian.Hold(offer.Issuer, offer.Asset)
		if err != nil {
			uc.rollbackNonce(offer.Issuer, offer.Nonce)
			return common.Hash{}, uc.recordError("createOffer",
				status.Errorf(codes.Internal, "escrow hold failed: %v", err))
		}
		offer.CustodyToken = custodyToken
	}

	now := time.Now()
	offer.Status = domain.OfferOffered
	offer.CreatedAt = now
	offer.UpdatedAt = now

	if err := uc.OfferRepo.CreateOffer(offer); err != nil {
		if escrowed {
			uc.rollbackHold(custodian, offer.CustodyToken, offer.Issuer)
		}
		uc.rollbackNonce(offer.Issuer, offer.Nonce)
		if errors.Is(err, domain.ErrDuplicateOffer) {
			return common.Hash{}, uc.recordError("createOffer",
				status.Error(codes.AlreadyExists, err.Error()))
		}
		return common.Hash{}, uc.recordError("createOffer",
			status.Errorf(codes.Internal, "failed to store offer: %v", err))
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordOfferCreated(string(offer.Asset.Kind), escrowed)
	}

	go uc.publishEvent(offerCreatedTopic, offer.ID.Hex(), publisher.OfferEvent{
		EventID:  uuid.New().String(),
		OfferID:  offer.ID.Hex(),
		Status:   string(domain.OfferOffered),
		Issuer:   offer.Issuer.Hex(),
		Investor: offer.Investor.Hex(),
	})

	return offer.ID, nil
}

func (uc *DefaultOfferUsecase) rollbackNonce(issuer common.Address, nonce uint64) {
	if err := uc.NonceRepo.Release(issuer, nonce); err != nil {
		slog.Error("failed to roll back staged nonce", "issuer", issuer.Hex(), "nonce", nonce, "error", err.Error())
	}
}

func (uc *DefaultOfferUsecase) rollbackHold(custodian domain.EscrowCustodian, custodyToken string, issuer common.Address) {
	if err := custodian.Release(custodyToken, issuer); err != nil {
		slog.Error("failed to roll back escrow hold", "custody_token", custodyToken, "error", err.Error())
	}
}
