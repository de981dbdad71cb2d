package usecase

import (
	"encoding/json"
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
	"github.com/hazbase/kit/internal/infrastructure/metrics"
	disputedto "github.com/hazbase/kit/internal/usecase/dto/dispute"
)

const (
	disputeRaisedTopic = "dispute-raised-events"
	disputeStatusTopic = "dispute-status-events"
)

type DisputeUsecase interface {
	RaiseDispute(input *disputedto.RaiseDisputeInput) (common.Hash, error)
	SetDisputeStatus(disputeID common.Hash, newStatus domain.DisputeStatus, caller common.Address) error
	GetDisputeByID(disputeID common.Hash) (*domain.Dispute, error)
	GetDisputesByOfferID(offerID common.Hash) ([]*domain.Dispute, error)
}

type DefaultDisputeUsecase struct {
	DisputeRepo domain.DisputeRepository
	// Moderator is the only address allowed to finalize disputes.
	Moderator common.Address
	Publisher domain.PublisherPort
	Metrics   *metrics.EngineMetrics
}

func NewDefaultDisputeUsecase(
	disputeRepo domain.DisputeRepository,
	moderator common.Address,
	publisher domain.PublisherPort,
	engineMetrics *metrics.EngineMetrics) *DefaultDisputeUsecase {

	return &DefaultDisputeUsecase{
		DisputeRepo: disputeRepo,
		Moderator:   moderator,
		Publisher:   publisher,
		Metrics:     engineMetrics,
	}
}

// RaiseDispute records a claim. No funds move; any party may raise one, tied
// to an offer or free-standing.
func (uc *DefaultDisputeUsecase) RaiseDispute(input *disputedto.RaiseDisputeInput) (common.Hash, error) {
	if input.Claimant == (common.Address{}) {
		return common.Hash{}, status.Error(codes.InvalidArgument, "claimant must not be the zero address")
	}

	now := time.Now()
	dispute := &domain.Dispute{
		ID:          digest.ComputeDisputeID(input.Claimant, now.Unix(), input.OfferID, input.EvidenceURI),
		Claimant:    input.Claimant,
		OfferID:     input.OfferID,
		EvidenceURI: input.EvidenceURI,
		Status:      domain.DisputeRaised,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.DisputeRepo.CreateDispute(dispute); err != nil {
		if errors.Is(err, domain.ErrDuplicateDispute) {
			return common.Hash{}, status.Error(codes.AlreadyExists, err.Error())
		}
		return common.Hash{}, status.Errorf(codes.Internal, "failed to store dispute: %v", err)
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordDisputeRaised(dispute.OfferID != (common.Hash{}))
	}

	go uc.publishDispute(disputeRaisedTopic, publisher.DisputeEvent{
		EventID:     uuid.New().String(),
		DisputeID:   dispute.ID.Hex(),
		OfferID:     dispute.OfferID.Hex(),
		Claimant:    dispute.Claimant.Hex(),
		EvidenceURI: dispute.EvidenceURI,
		Status:      string(domain.DisputeRaised),
	})

	return dispute.ID, nil
}

// SetDisputeStatus applies the moderator's decision. Only RAISED disputes can
// move, and only into a decided status; decided disputes never reopen.
func (uc *DefaultDisputeUsecase) SetDisputeStatus(disputeID common.Hash, newStatus domain.DisputeStatus, caller common.Address) error {
	if caller != uc.Moderator {
		return status.Error(codes.PermissionDenied, "only the moderator may finalize disputes")
	}
	switch newStatus {
	case domain.DisputeAcknowledged, domain.DisputeResolved, domain.DisputeRejected:
	default:
		return status.Errorf(codes.InvalidArgument, "disallowed target status %q", newStatus)
	}

	if err := uc.DisputeRepo.UpdateDisputeStatus(disputeID, domain.DisputeRaised, newStatus); err != nil {
		if errors.Is(err, domain.ErrDisputeNotFound) {
			return status.Error(codes.NotFound, err.Error())
		}
		if errors.Is(err, domain.ErrInvalidState) {
			return status.Error(codes.FailedPrecondition, err.Error())
		}
		return status.Errorf(codes.Internal, "failed to update dispute status: %v", err)
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordDisputeClosed(string(newStatus))
	}

	go uc.publishDispute(disputeStatusTopic, publisher.DisputeEvent{
		EventID:   uuid.New().String(),
		DisputeID: disputeID.Hex(),
		Status:    string(newStatus),
	})

	return nil
}

func (uc *DefaultDisputeUsecase) publishDispute(topic string, event publisher.DisputeEvent) {
	v, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal DisputeEvent", "topic", topic, "error", err.Error())
		return
	}
	if err := uc.Publisher.Publish(topic, domain.Message{Key: []byte(event.DisputeID), Value: v}); err != nil {
		slog.Error("failed to publish DisputeEvent", "topic", topic, "error", err.Error())
	}
}

func (uc *DefaultDisputeUsecase) GetDisputeByID(disputeID common.Hash) (*domain.Dispute, error) {
	dispute, err := uc.DisputeRepo.GetDisputeByID(disputeID)
	if err != nil {
		return nil, status.Error(codes.NotFound, domain.ErrDisputeNotFound.Error())
	}
	return dispute, nil
}

func (uc *DefaultDisputeUsecase) GetDisputesByOfferID(offerID common.Hash) ([]*domain.Dispute, error) {
	return uc.DisputeRepo.GetDisputesByOfferID(offerID)
}
