package kafka

type DisputeEvent struct {
	EventID     string `json:"event_id"`
	DisputeID   string `json:"dispute_id"`
	OfferID     string `json:"offer_id"`
	Claimant    string `json:"claimant"`
	EvidenceURI string `json:"evidence_uri,omitempty"`
	Status      string `json:"status"`
}
