package models

import (
	"time"
)

type DisputeModel struct {
	ID          string `gorm:"primaryKey;size:66"`
	Claimant    string `gorm:"size:42;index"`
	OfferID     string `gorm:"size:66;index"`
	EvidenceURI string
	Status      string `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
