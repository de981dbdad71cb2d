package digest

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/hazbase/kit/internal/domain"
)

// SigningDomain carries the EIP-712 domain parameters supplied by the
// embedding environment. Changing any of them invalidates every previously
// produced signature, which is what prevents cross-environment replay.
type SigningDomain struct {
	Name              string
	Version           string
	ChainID           int64
	VerifyingContract common.Address
}

var offerTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"Offer": {
		{Name: "issuer", Type: "address"},
		{Name: "investor", Type: "address"},
		{Name: "token", Type: "address"},
		{Name: "partition", Type: "bytes32"},
		{Name: "tokenId", Type: "uint256"},
		{Name: "amount", Type: "uint256"},
		{Name: "classId", Type: "uint256"},
		{Name: "nonceId", Type: "uint256"},
		{Name: "documentHash", Type: "bytes32"},
		{Name: "documentURI", Type: "string"},
		{Name: "expiry", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "delegatedTo", Type: "address"},
	},
}

// SigningDigest computes the domain-separated typed-data digest signatures are
// produced and verified over. It is deliberately independent of
// ComputeOfferID: different field typing plus the domain separator.
func SigningDigest(o *domain.Offer, d SigningDomain) (common.Hash, error) {
	typedData := apitypes.TypedData{
		Types:       offerTypes,
		PrimaryType: "Offer",
		Domain: apitypes.TypedDataDomain{
			Name:              d.Name,
			Version:           d.Version,
			ChainId:           math.NewHexOrDecimal256(d.ChainID),
			VerifyingContract: d.VerifyingContract.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"issuer":       o.Issuer.Hex(),
			"investor":     o.Investor.Hex(),
			"token":        o.Asset.Token.Hex(),
			"partition":    hexutil.Encode(o.Asset.Partition.Bytes()),
			"tokenId":      word(o.Asset.TokenID),
			"amount":       word(o.Asset.Amount),
			"classId":      word(o.Asset.ClassID),
			"nonceId":      word(o.Asset.NonceID),
			"documentHash": hexutil.Encode(o.DocumentHash.Bytes()),
			"documentURI":  o.DocumentURI,
			"expiry":       math.NewHexOrDecimal256(o.Expiry.Unix()),
			"nonce":        word(new(big.Int).SetUint64(o.Nonce)),
			"delegatedTo":  o.DelegatedTo.Hex(),
		},
	}

	digest, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Hash{}, fmt.Errorf("hashing typed data: %w", err)
	}
	return common.BytesToHash(digest), nil
}

func word(v *big.Int) *math.HexOrDecimal256 {
	if v == nil {
		v = new(big.Int)
	}
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}
