package memory

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hazbase/kit/internal/domain"
)

// OfferRepository is a map-backed store satisfying domain.OfferRepository.
// Each engine instance owns its own repository, so tests can run many engines
// without shared state.
type OfferRepository struct {
	mu     sync.RWMutex
	offers map[common.Hash]*domain.Offer
}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{offers: make(map[common.Hash]*domain.Offer)}
}

func (r *OfferRepository) CreateOffer(offer *domain.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offers[offer.ID]; ok {
		return domain.ErrDuplicateOffer
	}
	r.offers[offer.ID] = offer.Clone()
	return nil
}

func (r *OfferRepository) UpdateOfferStatus(offerID common.Hash, from, to domain.OfferStatus, settled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	offer, ok := r.offers[offerID]
	if !ok {
		return domain.ErrOfferNotFound
	}
	if offer.Status != from {
		return domain.ErrInvalidState
	}
	offer.Status = to
	offer.Settled = settled
	return nil
}

func (r *OfferRepository) GetOfferByID(offerID common.Hash) (*domain.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	offer, ok := r.offers[offerID]
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	return offer.Clone(), nil
}

func (r *OfferRepository) GetOffersByIssuer(issuer common.Address) ([]*domain.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var offers []*domain.Offer
	for _, offer := range r.offers {
		if offer.Issuer == issuer {
			offers = append(offers, offer.Clone())
		}
	}
	return offers, nil
}

func (r *OfferRepository) PruneFinalized(cutoffUnix int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pruned int64
	for id, offer := range r.offers {
		if !offer.Status.Terminal() || offer.UpdatedAt.Unix() > cutoffUnix {
			continue
		}
		// Keep a tombstone answering "is id known, what terminal status".
		tombstone := &domain.Offer{
			ID:        id,
			Status:    offer.Status,
			Settled:   offer.Settled,
			CreatedAt: offer.CreatedAt,
			UpdatedAt: offer.UpdatedAt,
		}
		r.offers[id] = tombstone
		pruned++
	}
	return pruned, nil
}
