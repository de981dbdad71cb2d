package digest

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ComputeDisputeID derives a dispute identifier from the claimant, the
// creation time, the linked offer id (zero hash when unlinked) and the
// evidence URI hash. The wall-clock component means two disputes raised in
// the same second with identical remaining fields collide; the ledger
// surfaces that as a duplicate-record conflict instead of overwriting.
func ComputeDisputeID(claimant common.Address, createdAtUnix int64, offerID common.Hash, evidenceURI string) common.Hash {
	buf := make([]byte, 0, 20+8+32+32)
	buf = append(buf, claimant.Bytes()...)
	buf = appendUint64(buf, uint64(createdAtUnix))
	buf = append(buf, offerID.Bytes()...)
	buf = append(buf, crypto.Keccak256([]byte(evidenceURI))...)
	return crypto.Keccak256Hash(buf)
}
