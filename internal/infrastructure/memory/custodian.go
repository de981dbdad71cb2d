package memory

import (
	"log"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jaevor/go-nanoid"

	"github.com/hazbase/kit/internal/domain"
)

type hold struct {
	From     common.Address
	Asset    domain.AssetRef
	Released bool
	To       common.Address
}

// Custodian is an in-process escrow custodian that records holds and releases
// without moving real assets. It backs unit tests and local runs.
type Custodian struct {
	mu    sync.Mutex
	holds map[string]*hold
	newID func() string

	FailHold    bool
	FailRelease bool
}

func NewCustodian() *Custodian {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		log.Fatalf("failed to init custody token generator: %v", err)
	}
	return &Custodian{
		holds: make(map[string]*hold),
		newID: idGenerator,
	}
}

func (c *Custodian) Hold(from common.Address, asset domain.AssetRef) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailHold {
		return "", domain.ErrEscrowHold
	}
	token := c.newID()
	c.holds[token] = &hold{From: from, Asset: asset.Clone()}
	return token, nil
}

func (c *Custodian) Release(custodyToken string, to common.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.FailRelease {
		return domain.ErrEscrowRelease
	}
	h, ok := c.holds[custodyToken]
	if !ok || h.Released {
		return domain.ErrEscrowRelease
	}
	h.Released = true
	h.To = to
	return nil
}

// Holding reports the current state of a custody token for assertions.
func (c *Custodian) Holding(custodyToken string) (from, to common.Address, released, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, found := c.holds[custodyToken]
	if !found {
		return common.Address{}, common.Address{}, false, false
	}
	return h.From, h.To, h.Released, true
}

// OpenHolds counts holds that were taken but not yet released.
func (c *Custodian) OpenHolds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	open := 0
	for _, h := range c.holds {
		if !h.Released {
			open++
		}
	}
	return open
}
