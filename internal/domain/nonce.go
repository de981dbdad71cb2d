package domain

import "github.com/ethereum/go-ethereum/common"

// NonceRepository tracks consumed per-issuer nonces. Only non-reuse is
// enforced; issuers are free to skip values.
type NonceRepository interface {
	// MarkUsed consumes the nonce, failing with ErrNonceAlreadyUsed if it was
	// consumed before.
	MarkUsed(issuer common.Address, nonce uint64) error
	// Release undoes a MarkUsed staged within a failed createOffer. It must
	// never be called for nonces of offers that were actually created.
	Release(issuer common.Address, nonce uint64) error
	Used(issuer common.Address, nonce uint64) (bool, error)
	// NextNonce is advisory: max consumed nonce + 1.
	NextNonce(issuer common.Address) (uint64, error)
}
