package models

import "time"

// NonceModel rows are insert-only: a row's existence is the "used" mark.
type NonceModel struct {
	Issuer    string `gorm:"primaryKey;size:42"`
	Nonce     uint64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}
