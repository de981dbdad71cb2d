package background

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hazbase/kit/internal/domain"
	"github.com/hazbase/kit/internal/usecase"
)

type BackgroundTasks struct {
	OfferUsecase   usecase.OfferUsecase
	DisputeUsecase usecase.DisputeUsecase
	Subscriber     domain.SubscriberPort

	OfferRetention  time.Duration
	ModerationTopic string
	ModerationGroup string
}

func NewBackgroundTasks(
	offerUC usecase.OfferUsecase,
	disputeUC usecase.DisputeUsecase,
	subscriber domain.SubscriberPort,
	offerRetention time.Duration,
	moderationTopic, moderationGroup string) *BackgroundTasks {

	return &BackgroundTasks{
		OfferUsecase:    offerUC,
		DisputeUsecase:  disputeUC,
		Subscriber:      subscriber,
		OfferRetention:  offerRetention,
		ModerationTopic: moderationTopic,
		ModerationGroup: moderationGroup,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startOfferPruner(ctx)
	go bt.startModerationFeed(ctx)
}

// startOfferPruner periodically compacts finalized offers down to id/status
// tombstones once the retention window passes.
func (bt *BackgroundTasks) startOfferPruner(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruned, err := bt.OfferUsecase.PruneFinalizedOffers(bt.OfferRetention)
			if err != nil {
				log.Printf("Offer prune error: %v\n", err)
				continue
			}
			if pruned > 0 {
				log.Printf("Pruned %d finalized offers\n", pruned)
			}
		}
	}
}

// ModerationCommand is the wire format of the dispute-moderation feed. The
// caller field is authorized by the dispute usecase, not trusted here.
type ModerationCommand struct {
	DisputeID string `json:"dispute_id"`
	Status    string `json:"status"`
	Caller    string `json:"caller"`
}

// startModerationFeed consumes moderator decisions from kafka and applies
// them serially, which keeps dispute finalization single-sequencer.
func (bt *BackgroundTasks) startModerationFeed(ctx context.Context) {
	messages, err := bt.Subscriber.Subscribe(bt.ModerationTopic, bt.ModerationGroup)
	if err != nil {
		log.Printf("Failed to subscribe to moderation feed: %v\n", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				log.Println("Moderation feed closed")
				return
			}
			var cmd ModerationCommand
			if err := json.Unmarshal(msg.Value, &cmd); err != nil {
				log.Printf("Malformed moderation command: %v\n", err)
				continue
			}
			err := bt.DisputeUsecase.SetDisputeStatus(
				common.HexToHash(cmd.DisputeID),
				domain.DisputeStatus(cmd.Status),
				common.HexToAddress(cmd.Caller),
			)
			if err != nil {
				log.Printf("Moderation command failed for dispute %s: %v\n", cmd.DisputeID, err)
			}
		}
	}
}
