package domain

import "github.com/ethereum/go-ethereum/common"

type OfferRepository interface {
	CreateOffer(offer *Offer) error
	// UpdateOfferStatus transitions from->to, optionally flagging settlement.
	// Returns ErrInvalidState when the stored status no longer equals from,
	// so a concurrent accept/cancel pair resolves with exactly one winner.
	UpdateOfferStatus(offerID common.Hash, from, to OfferStatus, settled bool) error
	GetOfferByID(offerID common.Hash) (*Offer, error)
	GetOffersByIssuer(issuer common.Address) ([]*Offer, error)
	// PruneFinalized strips the payload of terminal offers stored earlier than
	// the cutoff, keeping id/status/settled tombstones for idempotence checks.
	PruneFinalized(cutoffUnix int64) (int64, error)
}
