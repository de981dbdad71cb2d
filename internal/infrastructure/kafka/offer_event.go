package kafka

// OfferEvent is emitted once per completed offer transition. Settlement
// events echo the full field set; the other transitions carry only the
// identifying payload.
type OfferEvent struct {
	EventID      string `json:"event_id"`
	OfferID      string `json:"offer_id"`
	Status       string `json:"status"`
	Issuer       string `json:"issuer,omitempty"`
	Investor     string `json:"investor,omitempty"`
	Token        string `json:"token,omitempty"`
	Partition    string `json:"partition,omitempty"`
	TokenID      string `json:"token_id,omitempty"`
	Amount       string `json:"amount,omitempty"`
	ClassID      string `json:"class_id,omitempty"`
	NonceID      string `json:"nonce_id,omitempty"`
	DocumentHash string `json:"document_hash,omitempty"`
	DocumentURI  string `json:"document_uri,omitempty"`
	Expiry       int64  `json:"expiry,omitempty"`
	Nonce        uint64 `json:"nonce,omitempty"`
	DelegatedTo  string `json:"delegated_to,omitempty"`
}
