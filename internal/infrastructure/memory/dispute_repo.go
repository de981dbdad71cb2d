package memory

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hazbase/kit/internal/domain"
)

type DisputeRepository struct {
	mu       sync.RWMutex
	disputes map[common.Hash]*domain.Dispute
}

func NewDisputeRepository() *DisputeRepository {
	return &DisputeRepository{disputes: make(map[common.Hash]*domain.Dispute)}
}

func (r *DisputeRepository) CreateDispute(dispute *domain.Dispute) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.disputes[dispute.ID]; ok {
		return domain.ErrDuplicateDispute
	}
	clone := *dispute
	r.disputes[dispute.ID] = &clone
	return nil
}

func (r *DisputeRepository) UpdateDisputeStatus(disputeID common.Hash, from, to domain.DisputeStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dispute, ok := r.disputes[disputeID]
	if !ok {
		return domain.ErrDisputeNotFound
	}
	if dispute.Status != from {
		return domain.ErrInvalidState
	}
	dispute.Status = to
	return nil
}

func (r *DisputeRepository) GetDisputeByID(disputeID common.Hash) (*domain.Dispute, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dispute, ok := r.disputes[disputeID]
	if !ok {
		return nil, domain.ErrDisputeNotFound
	}
	clone := *dispute
	return &clone, nil
}

func (r *DisputeRepository) GetDisputesByOfferID(offerID common.Hash) ([]*domain.Dispute, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var disputes []*domain.Dispute
	for _, dispute := range r.disputes {
		if dispute.OfferID == offerID {
			clone := *dispute
			disputes = append(disputes, &clone)
		}
	}
	return disputes, nil
}
