package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type AssetKind string

const (
	KindFungible  AssetKind = "FUNGIBLE"  // ERC20-like amount-only assets
	KindNFT       AssetKind = "NFT"       // single token id
	KindMultiUnit AssetKind = "MULTI"     // id + amount assets
	KindBondUnit  AssetKind = "BOND_UNIT" // classId/nonceId bond series units
)

// AssetRef references the asset side of an offer. A zero-valued ref means the
// offer is escrowless.
type AssetRef struct {
	Kind      AssetKind
	Token     common.Address
	Partition common.Hash
	TokenID   *big.Int
	Amount    *big.Int
	ClassID   *big.Int
	NonceID   *big.Int
}

func (a AssetRef) IsZero() bool {
	return a.Token == (common.Address{}) && !positive(a.Amount)
}

func (a AssetRef) Clone() AssetRef {
	clone := a
	clone.TokenID = copyBig(a.TokenID)
	clone.Amount = copyBig(a.Amount)
	clone.ClassID = copyBig(a.ClassID)
	clone.NonceID = copyBig(a.NonceID)
	return clone
}

func positive(v *big.Int) bool {
	return v != nil && v.Sign() > 0
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
