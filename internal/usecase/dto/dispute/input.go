package disputedto

import "github.com/ethereum/go-ethereum/common"

type RaiseDisputeInput struct {
	Claimant    common.Address
	OfferID     common.Hash // zero hash for disputes not tied to an offer
	EvidenceURI string
}
