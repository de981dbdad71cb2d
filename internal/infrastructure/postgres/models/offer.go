package models

import (
	"time"
)

// OfferModel stores addresses and hashes as 0x-prefixed hex and big integers
// as decimal strings, so rows stay greppable from psql.
type OfferModel struct {
	ID           string `gorm:"primaryKey;size:66"`
	Issuer       string `gorm:"size:42;index"`
	Investor     string `gorm:"size:42;index"`
	AssetKind    string
	Token        string `gorm:"size:42"`
	Partition    string `gorm:"size:66"`
	TokenID      string
	Amount       string
	ClassID      string
	NonceID      string
	DocumentHash string `gorm:"size:66"`
	DocumentURI  string
	Expiry       time.Time
	Nonce        uint64
	DelegatedTo  string `gorm:"size:42"`
	IssuerSig    []byte
	Status       string `gorm:"index"`
	Settled      bool
	CustodyToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
