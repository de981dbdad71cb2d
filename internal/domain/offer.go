package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type OfferStatus string

const (
	OfferNone      OfferStatus = "NONE"
	OfferOffered   OfferStatus = "OFFERED"
	OfferAccepted  OfferStatus = "ACCEPTED"
	OfferRejected  OfferStatus = "REJECTED"
	OfferCancelled OfferStatus = "CANCELLED"
)

// Terminal reports whether no further transition is possible from s.
func (s OfferStatus) Terminal() bool {
	switch s {
	case OfferAccepted, OfferRejected, OfferCancelled:
		return true
	}
	return false
}

type Offer struct {
	ID           common.Hash
	Issuer       common.Address
	Investor     common.Address
	Asset        AssetRef
	DocumentHash common.Hash
	DocumentURI  string
	Expiry       time.Time
	Nonce        uint64
	// DelegatedTo, when non-zero, is the only address allowed to accept.
	DelegatedTo  common.Address
	IssuerSig    []byte
	Status       OfferStatus
	Settled      bool
	CustodyToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (o *Offer) Delegated() bool {
	return o.DelegatedTo != (common.Address{})
}

// Clone returns a deep copy so stored offers cannot be mutated through reads.
func (o *Offer) Clone() *Offer {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Asset = o.Asset.Clone()
	if o.IssuerSig != nil {
		clone.IssuerSig = append([]byte(nil), o.IssuerSig...)
	}
	return &clone
}
