package signature

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/hazbase/kit/internal/domain"
)

const sigLength = 65

// ECDSAAuthority recovers secp256k1 signers from 65-byte [R || S || V]
// signatures over 32-byte digests. V is accepted as 0/1 or 27/28.
type ECDSAAuthority struct{}

func NewECDSAAuthority() *ECDSAAuthority {
	return &ECDSAAuthority{}
}

func (a *ECDSAAuthority) Recover(digest common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != sigLength {
		return common.Address{}, fmt.Errorf("%w: length %d", domain.ErrBadSignature, len(sig))
	}
	normalized := append([]byte(nil), sig...)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	if normalized[64] > 1 {
		return common.Address{}, fmt.Errorf("%w: recovery id %d", domain.ErrBadSignature, sig[64])
	}
	pub, err := crypto.SigToPub(digest.Bytes(), normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", domain.ErrBadSignature, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

func (a *ECDSAAuthority) Verify(digest common.Hash, sig []byte, signer common.Address) error {
	recovered, err := a.Recover(digest, sig)
	if err != nil {
		return err
	}
	if recovered != signer {
		return fmt.Errorf("%w: recovered %s, claimed %s", domain.ErrSignerMismatch, recovered.Hex(), signer.Hex())
	}
	return nil
}

// Sign produces a signature the authority accepts back. Exposed for embedders
// acting as the issuer or investor side.
func Sign(digest common.Hash, key *ecdsa.PrivateKey) ([]byte, error) {
	return crypto.Sign(digest.Bytes(), key)
}
