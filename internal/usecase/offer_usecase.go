package usecase

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hazbase/kit/internal/digest"
	"github.com/hazbase/kit/internal/domain"
	"github.com/hazbase/kit/internal/infrastructure/metrics"
	"github.com/hazbase/kit/internal/signature"
	offerdto "github.com/hazbase/kit/internal/usecase/dto/offer"
)

const (
	offerCreatedTopic   = "offer-created-events"
	offerSettledTopic   = "offer-settled-events"
	offerCancelledTopic = "offer-cancelled-events"
	offerRejectedTopic  = "offer-rejected-events"
)

type OfferUsecase interface {
	CreateOffer(input *offerdto.CreateOfferInput) (common.Hash, error)
	AcceptOffer(offerID common.Hash, caller common.Address, investorSig []byte) error
	CancelOffer(offerID common.Hash, caller common.Address) error
	RejectOffer(offerID common.Hash, caller common.Address) error

	GetOfferByID(offerID common.Hash) (*domain.Offer, error)
	GetOffersByIssuer(issuer common.Address) ([]*domain.Offer, error)
	IsSettled(offerID common.Hash) (bool, error)
	UsedNonce(issuer common.Address, nonce uint64) (bool, error)
	NextNonce(issuer common.Address) (uint64, error)

	PruneFinalizedOffers(retention time.Duration) (int64, error)
}

type DefaultOfferUsecase struct {
	OfferRepo  domain.OfferRepository
	NonceRepo  domain.NonceRepository
	Custodians *domain.CustodianRegistry
	Authority  signature.Authority
	Domain     digest.SigningDomain
	Publisher  domain.PublisherPort
	Metrics    *metrics.EngineMetrics
}

func NewDefaultOfferUsecase(
	offerRepo domain.OfferRepository,
	nonceRepo domain.NonceRepository,
	custodians *domain.CustodianRegistry,
	authority signature.Authority,
	signingDomain digest.SigningDomain,
	publisher domain.PublisherPort,
	engineMetrics *metrics.EngineMetrics) *DefaultOfferUsecase {

	return &DefaultOfferUsecase{
		OfferRepo:  offerRepo,
		NonceRepo:  nonceRepo,
		Custodians: custodians,
		Authority:  authority,
		Domain:     signingDomain,
		Publisher:  publisher,
		Metrics:    engineMetrics,
	}
}

// verifySignature maps authority failures onto the error taxonomy: malformed
// signatures are validation failures, a recovered-signer mismatch is an
// authorization failure.
func (uc *DefaultOfferUsecase) verifySignature(offer *domain.Offer, sig []byte, signer common.Address) error {
	signingDigest, err := digest.SigningDigest(offer, uc.Domain)
	if err != nil {
		return status.Errorf(codes.Internal, "failed to compute signing digest: %v", err)
	}
	if err := uc.Authority.Verify(signingDigest, sig, signer); err != nil {
		if errors.Is(err, domain.ErrSignerMismatch) {
			return status.Error(codes.PermissionDenied, err.Error())
		}
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

// publishEvent marshals and publishes a transition event. Event delivery is
// best-effort: a broker failure never fails the completed transition.
func (uc *DefaultOfferUsecase) publishEvent(topic, key string, event any) {
	v, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal engine event", "topic", topic, "error", err.Error())
		return
	}
	if err := uc.Publisher.Publish(topic, domain.Message{Key: []byte(key), Value: v}); err != nil {
		slog.Error("failed to publish engine event", "topic", topic, "error", err.Error())
	}
}

func (uc *DefaultOfferUsecase) observe(operation string, startedAt time.Time) {
	if uc.Metrics != nil {
		uc.Metrics.RecordOperationDuration(operation, time.Since(startedAt).Seconds())
	}
}

func (uc *DefaultOfferUsecase) recordError(operation string, err error) error {
	if uc.Metrics != nil {
		uc.Metrics.RecordError(operation, status.Code(err).String())
	}
	return err
}
