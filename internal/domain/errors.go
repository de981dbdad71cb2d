package domain

import "errors"

var (
	ErrOfferExpired     = errors.New("offer expired")
	ErrNonceAlreadyUsed = errors.New("nonce already used")
	ErrBadSignature     = errors.New("bad signature")
	ErrSignerMismatch   = errors.New("recovered signer mismatch")
	ErrDuplicateOffer   = errors.New("duplicate offer")
	ErrOfferNotFound    = errors.New("offer not found")
	ErrDisputeNotFound  = errors.New("dispute not found")
	ErrDuplicateDispute = errors.New("duplicate dispute")
	ErrInvalidState     = errors.New("invalid state transition")
	ErrEscrowHold       = errors.New("escrow hold failed")
	ErrEscrowRelease    = errors.New("escrow release failed")
	ErrUnknownAssetKind = errors.New("no custodian for asset kind")
)
