package digest

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/hazbase/kit/internal/domain"
)

// Byte tags prefixing each address field of the canonical encoding. Both
// sides of an exchange must produce the identical buffer, so the layout
// below is frozen: tagged 20-byte addresses, then 32-byte big-endian words,
// then 8-byte big-endian expiry and nonce.
const (
	tagIssuer   = 0x01
	tagInvestor = 0x02
	tagToken    = 0x03
)

// EncodeCanonical serializes the id-relevant offer fields into the fixed
// byte layout hashed by ComputeOfferID. The document URI participates as
// keccak256(uri) so the buffer length never depends on URI size.
func EncodeCanonical(o *domain.Offer) []byte {
	buf := make([]byte, 0, 3*21+7*32+16)
	buf = append(buf, tagIssuer)
	buf = append(buf, o.Issuer.Bytes()...)
	buf = append(buf, tagInvestor)
	buf = append(buf, o.Investor.Bytes()...)
	buf = append(buf, tagToken)
	buf = append(buf, o.Asset.Token.Bytes()...)
	buf = append(buf, o.Asset.Partition.Bytes()...)
	buf = appendWord(buf, o.Asset.TokenID)
	buf = appendWord(buf, o.Asset.Amount)
	buf = appendWord(buf, o.Asset.ClassID)
	buf = appendWord(buf, o.Asset.NonceID)
	buf = append(buf, o.DocumentHash.Bytes()...)
	buf = append(buf, crypto.Keccak256(([]byte)(o.DocumentURI))...)
	buf = appendUint64(buf, uint64(o.Expiry.Unix()))
	buf = appendUint64(buf, o.Nonce)
	return buf
}

// ComputeOfferID derives the content-addressed offer identifier. It is a pure
// function of the canonical fields: identical fields yield identical ids on
// both sides without coordination.
func ComputeOfferID(o *domain.Offer) common.Hash {
	return crypto.Keccak256Hash(EncodeCanonical(o))
}

func appendWord(buf []byte, v *big.Int) []byte {
	var word [32]byte
	if v != nil {
		v.FillBytes(word[:])
	}
	return append(buf, word[:]...)
}

func appendUint64(buf []byte, v uint64) []byte {
	return append(buf,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v),
	)
}
