package currency

import (
	"fmt"
	"sync"

	"huddle-auction/internal/auctionerrors"
)

// Service moves value between accounts on behalf of the auction core.
// Reserve parks value from an account's free balance while its bid is
// winning; Release gives it back when the bid is surpassed; Transfer moves
// reserved value to the host's free balance on claim. All three can fail
// and the caller is expected to roll back its own pending state when one
// does.
type Service interface {
	Reserve(account string, value uint64) error
	Release(account string, value uint64) error
	Transfer(from, to string, value uint64) error
}

// MemoryLedger is a concurrency-safe in-memory implementation of Service
type MemoryLedger struct {
	mu       sync.Mutex
	free     map[string]uint64
	reserved map[string]uint64
	seed     uint64
	seen     map[string]bool
}

// NewMemoryLedger creates an empty in-memory ledger
func NewMemoryLedger() *MemoryLedger {
	return NewSeededLedger(0)
}

// NewSeededLedger creates an in-memory ledger that credits each account the
// given free balance the first time it is touched. Intended for development
// setups where no real balance service backs the auction.
func NewSeededLedger(seed uint64) *MemoryLedger {
	return &MemoryLedger{
		free:     make(map[string]uint64),
		reserved: make(map[string]uint64),
		seed:     seed,
		seen:     make(map[string]bool),
	}
}

// touch applies the first-sight seed credit. Callers hold the lock.
func (l *MemoryLedger) touch(account string) {
	if l.seed == 0 || l.seen[account] {
		return
	}
	l.seen[account] = true
	l.free[account] += l.seed
}

// Deposit credits an account's free balance. Intended for seeding and tests.
func (l *MemoryLedger) Deposit(account string, value uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.free[account] += value
}

// FreeBalance returns an account's unreserved balance
func (l *MemoryLedger) FreeBalance(account string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.free[account]
}

// ReservedBalance returns an account's reserved balance
func (l *MemoryLedger) ReservedBalance(account string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reserved[account]
}

// Reserve parks value from an account's free balance
func (l *MemoryLedger) Reserve(account string, value uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.touch(account)
	if l.free[account] < value {
		return fmt.Errorf("reserve %d for %s: %w", value, account, auctionerrors.ErrInsufficientBalance)
	}
	l.free[account] -= value
	l.reserved[account] += value
	return nil
}

// Release returns reserved value to an account's free balance
func (l *MemoryLedger) Release(account string, value uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.reserved[account] < value {
		return fmt.Errorf("release %d for %s: %w", value, account, auctionerrors.ErrInsufficientBalance)
	}
	l.reserved[account] -= value
	l.free[account] += value
	return nil
}

// Transfer moves reserved value from one account to another's free balance
func (l *MemoryLedger) Transfer(from, to string, value uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.reserved[from] < value {
		return fmt.Errorf("transfer %d from %s to %s: %w", value, from, to, auctionerrors.ErrInsufficientBalance)
	}
	l.reserved[from] -= value
	l.free[to] += value
	return nil
}
