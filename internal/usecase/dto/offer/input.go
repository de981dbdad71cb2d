package offerdto

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hazbase/kit/internal/domain"
)

// CreateOfferInput carries the issuer-signed offer fields. The offer id is
// never supplied by the caller; it is derived from these fields.
type CreateOfferInput struct {
	Issuer       common.Address
	Investor     common.Address
	Asset        domain.AssetRef
	DocumentHash common.Hash
	DocumentURI  string
	Expiry       time.Time
	Nonce        uint64
	DelegatedTo  common.Address
	IssuerSig    []byte
}
