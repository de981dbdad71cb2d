package memory

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hazbase/kit/internal/domain"
)

type NonceRepository struct {
	mu   sync.RWMutex
	used map[common.Address]map[uint64]bool
	next map[common.Address]uint64
}

func NewNonceRepository() *NonceRepository {
	return &NonceRepository{
		used: make(map[common.Address]map[uint64]bool),
		next: make(map[common.Address]uint64),
	}
}

func (r *NonceRepository) MarkUsed(issuer common.Address, nonce uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.used[issuer]
	if !ok {
		set = make(map[uint64]bool)
		r.used[issuer] = set
	}
	if set[nonce] {
		return domain.ErrNonceAlreadyUsed
	}
	set[nonce] = true
	if nonce+1 > r.next[issuer] {
		r.next[issuer] = nonce + 1
	}
	return nil
}

func (r *NonceRepository) Release(issuer common.Address, nonce uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if set, ok := r.used[issuer]; ok {
		delete(set, nonce)
	}
	return nil
}

func (r *NonceRepository) Used(issuer common.Address, nonce uint64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.used[issuer][nonce], nil
}

func (r *NonceRepository) NextNonce(issuer common.Address) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.next[issuer], nil
}
