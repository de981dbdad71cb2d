package domain

import "github.com/ethereum/go-ethereum/common"

// EscrowCustodian holds and releases asset amounts on behalf of the ledger.
// The ledger never inspects asset internals; any error is fatal to the
// enclosing operation.
type EscrowCustodian interface {
	// Hold pulls the referenced amount from the owner and returns an opaque
	// custody token identifying the hold.
	Hold(from common.Address, asset AssetRef) (string, error)
	// Release pays out a prior hold to the given recipient.
	Release(custodyToken string, to common.Address) error
}

// CustodianRegistry resolves the custodian implementation for an asset kind.
type CustodianRegistry struct {
	custodians map[AssetKind]EscrowCustodian
}

func NewCustodianRegistry() *CustodianRegistry {
	return &CustodianRegistry{custodians: make(map[AssetKind]EscrowCustodian)}
}

func (r *CustodianRegistry) Register(kind AssetKind, custodian EscrowCustodian) {
	r.custodians[kind] = custodian
}

func (r *CustodianRegistry) For(kind AssetKind) (EscrowCustodian, error) {
	custodian, ok := r.custodians[kind]
	if !ok {
		return nil, ErrUnknownAssetKind
	}
	return custodian, nil
}
