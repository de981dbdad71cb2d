package signature

import (
	"github.com/ethereum/go-ethereum/common"
)

// Authority verifies that a signature over a 32-byte digest was produced by a
// claimed signer, and recovers signer identities. The engine's state machine
// only depends on this interface so tests can swap in a deterministic stub.
type Authority interface {
	Recover(digest common.Hash, sig []byte) (common.Address, error)
	Verify(digest common.Hash, sig []byte, signer common.Address) error
}
