package repository

import (
	"fmt"
	"sync"

	"huddle-auction/internal/auctionerrors"
	model "huddle-auction/internal/models"
)

// AuctionStore defines the persistent state surface for the auction system.
// Mutating methods re-verify their preconditions against stored state under
// the store's lock, so a commit can never act on a stale read made earlier
// in the same call chain.
type AuctionStore interface {
	SaveBinding(binding model.IdentityBinding) error
	GetBinding(accountID string) (model.IdentityBinding, error)
	HasBinding(accountID string) bool

	CreateHuddle(hostID string, scheduledTime int64, floorPrice uint64, status model.HuddleStatus) (model.Huddle, error)
	GetHuddle(huddleID uint64) (model.Huddle, error)
	GetHuddlesByHost(hostID string) ([]model.Huddle, error)
	ScheduleHuddle(huddleID uint64, scheduledTime int64) (model.Huddle, error)
	CloseHuddle(huddleID uint64) (model.Huddle, error)
	MarkClaimed(huddleID uint64) (model.Huddle, error)

	RecordBid(bid model.Bid) (model.Bid, error)
	GetBidsByHuddle(huddleID uint64) ([]model.Bid, error)
	GetWinningBid(huddleID uint64) (model.Bid, error)

	RecordRating(entry model.ReputationEntry) error
	GetScore(accountID string) model.Score
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore
type MemoryStore struct {
	mu       sync.RWMutex
	bindings map[string]model.IdentityBinding // key: accountID
	huddles  map[uint64]model.Huddle          // key: huddleID
	bids     map[uint64][]model.Bid           // key: huddleID -> bids in acceptance order
	ratings  map[string]model.ReputationEntry // key: huddleID:raterID:rateeID
	scores   map[string]*scoreAccumulator     // key: rateeID
	lastID   uint64                           // monotonic huddle id counter
}

type scoreAccumulator struct {
	total uint64
	count int
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bindings: make(map[string]model.IdentityBinding),
		huddles:  make(map[uint64]model.Huddle),
		bids:     make(map[uint64][]model.Bid),
		ratings:  make(map[string]model.ReputationEntry),
		scores:   make(map[string]*scoreAccumulator),
	}
}

// SaveBinding stores an identity binding for an account. A binding is
// written once and never updated.
func (s *MemoryStore) SaveBinding(binding model.IdentityBinding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bindings[binding.AccountID]; ok {
		return fmt.Errorf("save binding for %s: %w", binding.AccountID, auctionerrors.ErrAlreadyRegistered)
	}
	s.bindings[binding.AccountID] = binding
	return nil
}

// GetBinding returns the identity binding of an account
func (s *MemoryStore) GetBinding(accountID string) (model.IdentityBinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	binding, ok := s.bindings[accountID]
	if !ok {
		return model.IdentityBinding{}, fmt.Errorf("get binding for %s: %w", accountID, auctionerrors.ErrNotRegistered)
	}
	return binding, nil
}

// HasBinding reports whether an account holds an identity binding
func (s *MemoryStore) HasBinding(accountID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.bindings[accountID]
	return ok
}

// CreateHuddle stores a new huddle and assigns it the next monotonic id
func (s *MemoryStore) CreateHuddle(hostID string, scheduledTime int64, floorPrice uint64, status model.HuddleStatus) (model.Huddle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	huddle := model.Huddle{
		HuddleID:      s.lastID,
		HostID:        hostID,
		ScheduledTime: scheduledTime,
		FloorPrice:    floorPrice,
		Status:        status,
	}
	s.huddles[huddle.HuddleID] = huddle
	return huddle, nil
}

// GetHuddle returns a huddle by id
func (s *MemoryStore) GetHuddle(huddleID uint64) (model.Huddle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	huddle, ok := s.huddles[huddleID]
	if !ok {
		return model.Huddle{}, fmt.Errorf("get huddle %d: %w", huddleID, auctionerrors.ErrHuddleNotFound)
	}
	return huddle, nil
}

// GetHuddlesByHost returns all huddles owned by a host, oldest first
func (s *MemoryStore) GetHuddlesByHost(hostID string) ([]model.Huddle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var huddles []model.Huddle
	for id := uint64(1); id <= s.lastID; id++ {
		if h, ok := s.huddles[id]; ok && h.HostID == hostID {
			huddles = append(huddles, h)
		}
	}
	return huddles, nil
}

// ScheduleHuddle transitions a guest-pending huddle to open with the given
// scheduled time. Bids recorded while the huddle was pending are kept.
func (s *MemoryStore) ScheduleHuddle(huddleID uint64, scheduledTime int64) (model.Huddle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	huddle, ok := s.huddles[huddleID]
	if !ok {
		return model.Huddle{}, fmt.Errorf("schedule huddle %d: %w", huddleID, auctionerrors.ErrHuddleNotFound)
	}
	if huddle.Status != model.HuddleGuestPending {
		return model.Huddle{}, fmt.Errorf("schedule huddle %d: %w", huddleID, auctionerrors.ErrNotPending)
	}

	huddle.ScheduledTime = scheduledTime
	huddle.Status = model.HuddleOpen
	s.huddles[huddleID] = huddle
	return huddle, nil
}

// CloseHuddle transitions an open huddle to closed, fixing the current
// winning bid as the final winner.
func (s *MemoryStore) CloseHuddle(huddleID uint64) (model.Huddle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	huddle, ok := s.huddles[huddleID]
	if !ok {
		return model.Huddle{}, fmt.Errorf("close huddle %d: %w", huddleID, auctionerrors.ErrHuddleNotFound)
	}
	if huddle.Status != model.HuddleOpen {
		return model.Huddle{}, fmt.Errorf("close huddle %d: %w", huddleID, auctionerrors.ErrNotOpen)
	}

	if huddle.WinningBidID != "" {
		s.setBidStatus(huddleID, huddle.WinningBidID, model.BidWinner)
	}
	huddle.Status = model.HuddleClosed
	s.huddles[huddleID] = huddle
	return huddle, nil
}

// MarkClaimed transitions a closed huddle to claimed
func (s *MemoryStore) MarkClaimed(huddleID uint64) (model.Huddle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	huddle, ok := s.huddles[huddleID]
	if !ok {
		return model.Huddle{}, fmt.Errorf("mark claimed %d: %w", huddleID, auctionerrors.ErrHuddleNotFound)
	}
	switch huddle.Status {
	case model.HuddleClaimed:
		return model.Huddle{}, fmt.Errorf("mark claimed %d: %w", huddleID, auctionerrors.ErrAlreadyClaimed)
	case model.HuddleClosed:
	default:
		return model.Huddle{}, fmt.Errorf("mark claimed %d: %w", huddleID, auctionerrors.ErrNotClosed)
	}

	huddle.Status = model.HuddleClaimed
	s.huddles[huddleID] = huddle
	return huddle, nil
}

// RecordBid appends a bid and promotes it to the huddle's current winning
// bid. The strictly-greater rule is re-checked here against stored state, so
// an interleaved submission that was committed after the caller's validation
// read fails with ErrBidTooLow instead of silently overtaking. Returns the
// bid that was surpassed, if any.
func (s *MemoryStore) RecordBid(bid model.Bid) (model.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	huddle, ok := s.huddles[bid.HuddleID]
	if !ok {
		return model.Bid{}, fmt.Errorf("record bid for huddle %d: %w", bid.HuddleID, auctionerrors.ErrHuddleNotFound)
	}
	if huddle.Status != model.HuddleOpen && huddle.Status != model.HuddleGuestPending {
		return model.Bid{}, fmt.Errorf("record bid for huddle %d: %w", bid.HuddleID, auctionerrors.ErrNotOpen)
	}

	var surpassed model.Bid
	floor := huddle.FloorPrice
	if huddle.WinningBidID != "" {
		current, err := s.findBid(bid.HuddleID, huddle.WinningBidID)
		if err != nil {
			return model.Bid{}, err
		}
		surpassed = current
		floor = current.Value
	}
	if bid.Value <= floor {
		return model.Bid{}, fmt.Errorf("record bid for huddle %d: value %d vs current %d: %w",
			bid.HuddleID, bid.Value, floor, auctionerrors.ErrBidTooLow)
	}

	if surpassed.BidID != "" {
		s.setBidStatus(bid.HuddleID, surpassed.BidID, model.BidSurpassed)
	}
	bid.Status = model.BidWinning
	s.bids[bid.HuddleID] = append(s.bids[bid.HuddleID], bid)

	huddle.WinningBidID = bid.BidID
	s.huddles[bid.HuddleID] = huddle
	return surpassed, nil
}

// GetBidsByHuddle returns all bids for a huddle in acceptance order
func (s *MemoryStore) GetBidsByHuddle(huddleID uint64) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.huddles[huddleID]; !ok {
		return nil, fmt.Errorf("get bids for huddle %d: %w", huddleID, auctionerrors.ErrHuddleNotFound)
	}
	return append([]model.Bid(nil), s.bids[huddleID]...), nil
}

// GetWinningBid returns the huddle's current winning bid
func (s *MemoryStore) GetWinningBid(huddleID uint64) (model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	huddle, ok := s.huddles[huddleID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get winning bid for huddle %d: %w", huddleID, auctionerrors.ErrHuddleNotFound)
	}
	if huddle.WinningBidID == "" {
		return model.Bid{}, fmt.Errorf("get winning bid for huddle %d: %w", huddleID, auctionerrors.ErrNoBids)
	}
	return s.findBid(huddleID, huddle.WinningBidID)
}

// RecordRating stores a reputation entry and folds it into the ratee's
// running average. Each (huddle, rater, ratee) direction is recorded once.
func (s *MemoryStore) RecordRating(entry model.ReputationEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ratingKey(entry.HuddleID, entry.RaterID, entry.RateeID)
	if _, ok := s.ratings[key]; ok {
		return fmt.Errorf("record rating for huddle %d: %w", entry.HuddleID, auctionerrors.ErrAlreadyRated)
	}
	s.ratings[key] = entry

	acc, ok := s.scores[entry.RateeID]
	if !ok {
		acc = &scoreAccumulator{}
		s.scores[entry.RateeID] = acc
	}
	acc.total += uint64(entry.Stars)
	acc.count++
	return nil
}

// GetScore returns the running average rating of an account
func (s *MemoryStore) GetScore(accountID string) model.Score {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.scores[accountID]
	if !ok || acc.count == 0 {
		return model.Score{AccountID: accountID}
	}
	return model.Score{
		AccountID: accountID,
		Average:   float64(acc.total) / float64(acc.count),
		Count:     acc.count,
		Rated:     true,
	}
}

// findBid looks a bid up within its huddle's history. Callers hold the lock.
func (s *MemoryStore) findBid(huddleID uint64, bidID string) (model.Bid, error) {
	for _, b := range s.bids[huddleID] {
		if b.BidID == bidID {
			return b, nil
		}
	}
	return model.Bid{}, fmt.Errorf("find bid %s in huddle %d: %w", bidID, huddleID, auctionerrors.ErrBidNotFound)
}

// setBidStatus updates one bid's status in place. Callers hold the lock.
func (s *MemoryStore) setBidStatus(huddleID uint64, bidID string, status model.BidStatus) {
	bids := s.bids[huddleID]
	for i := range bids {
		if bids[i].BidID == bidID {
			bids[i].Status = status
			return
		}
	}
}

func ratingKey(huddleID uint64, raterID, rateeID string) string {
	return fmt.Sprintf("%d:%s:%s", huddleID, raterID, rateeID)
}
