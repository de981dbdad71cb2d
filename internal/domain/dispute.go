package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type DisputeStatus string

const (
	DisputeNone         DisputeStatus = "NONE"
	DisputeRaised       DisputeStatus = "RAISED"
	DisputeAcknowledged DisputeStatus = "ACKNOWLEDGED"
	DisputeResolved     DisputeStatus = "RESOLVED"
	DisputeRejected     DisputeStatus = "REJECTED"
)

// Dispute is an independent claim record. OfferID may be the zero hash for
// disputes not tied to any offer.
type Dispute struct {
	ID          common.Hash
	Claimant    common.Address
	OfferID     common.Hash
	EvidenceURI string
	Status      DisputeStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type DisputeRepository interface {
	CreateDispute(dispute *Dispute) error
	// UpdateDisputeStatus transitions from->to and returns ErrInvalidState
	// when the stored status no longer equals from.
	UpdateDisputeStatus(disputeID common.Hash, from, to DisputeStatus) error
	GetDisputeByID(disputeID common.Hash) (*Dispute, error)
	GetDisputesByOfferID(offerID common.Hash) ([]*Dispute, error)
}
