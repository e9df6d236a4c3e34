package huddle

import (
	"fmt"

	"huddle-auction/internal/auctionerrors"
	"huddle-auction/internal/clock"
	"huddle-auction/internal/currency"
	"huddle-auction/internal/events"
	"huddle-auction/internal/models"
	"huddle-auction/internal/repository"
)

// Registry is the host-eligibility check consumed from the identity side
type Registry interface {
	IsRegistered(accountID string) bool
}

// HuddleService owns the huddle lifecycle: creation, guest-open and
// acceptance, time-gated closing, and payout claiming.
type HuddleService struct {
	store    repository.AuctionStore
	registry Registry
	bank     currency.Service
	clk      clock.Clock
	sink     events.Sink
}

// NewHuddleService creates a new HuddleService instance
func NewHuddleService(store repository.AuctionStore, registry Registry, bank currency.Service, clk clock.Clock, sink events.Sink) *HuddleService {
	return &HuddleService{
		store:    store,
		registry: registry,
		bank:     bank,
		clk:      clk,
		sink:     sink,
	}
}

// CreateHuddle opens a new huddle for a registered host at a strictly
// future scheduled time.
func (s *HuddleService) CreateHuddle(hostID string, scheduledTime int64, floorPrice uint64) (models.Huddle, error) {
	if hostID == "" {
		return models.Huddle{}, fmt.Errorf("service: %w - empty host ID", auctionerrors.ErrInvalidInput)
	}
	if !s.registry.IsRegistered(hostID) {
		return models.Huddle{}, fmt.Errorf("service: host %s: %w", hostID, auctionerrors.ErrNotRegistered)
	}
	if scheduledTime <= s.clk.Now() {
		return models.Huddle{}, fmt.Errorf("service: scheduled time %d: %w", scheduledTime, auctionerrors.ErrInvalidTime)
	}

	created, err := s.store.CreateHuddle(hostID, scheduledTime, floorPrice, models.HuddleOpen)
	if err != nil {
		return models.Huddle{}, fmt.Errorf("service: failed to create huddle for %s: %w", hostID, err)
	}

	s.sink.Emit(events.HuddleCreated, map[string]any{
		"huddle_id":      created.HuddleID,
		"host_id":        hostID,
		"scheduled_time": scheduledTime,
		"floor_price":    floorPrice,
	})
	return created, nil
}

// OpenHuddleForHost lets any caller propose a huddle on a host's behalf.
// The slot carries no schedule yet, so the future-time check does not
// apply; the huddle stays guest-pending until the host accepts it.
func (s *HuddleService) OpenHuddleForHost(requestedHostID string, floorPrice uint64) (models.Huddle, error) {
	if requestedHostID == "" {
		return models.Huddle{}, fmt.Errorf("service: %w - empty host ID", auctionerrors.ErrInvalidInput)
	}

	created, err := s.store.CreateHuddle(requestedHostID, 0, floorPrice, models.HuddleGuestPending)
	if err != nil {
		return models.Huddle{}, fmt.Errorf("service: failed to open huddle for %s: %w", requestedHostID, err)
	}

	s.sink.Emit(events.HuddleCreated, map[string]any{
		"huddle_id":   created.HuddleID,
		"host_id":     requestedHostID,
		"floor_price": floorPrice,
		"status":      string(models.HuddleGuestPending),
	})
	return created, nil
}

// AcceptHuddle lets the requested host take ownership of a guest-opened
// huddle by scheduling it. Bids placed while the huddle was pending stay on
// the ledger.
func (s *HuddleService) AcceptHuddle(hostID string, huddleID uint64, scheduledTime int64) (models.Huddle, error) {
	existing, err := s.store.GetHuddle(huddleID)
	if err != nil {
		return models.Huddle{}, fmt.Errorf("service: failed to accept huddle %d: %w", huddleID, err)
	}
	if existing.HostID != hostID {
		return models.Huddle{}, fmt.Errorf("service: account %s: %w", hostID, auctionerrors.ErrNotHost)
	}
	if !s.registry.IsRegistered(hostID) {
		return models.Huddle{}, fmt.Errorf("service: host %s: %w", hostID, auctionerrors.ErrNotRegistered)
	}
	if existing.Status != models.HuddleGuestPending {
		return models.Huddle{}, fmt.Errorf("service: huddle %d is %s: %w", huddleID, existing.Status, auctionerrors.ErrNotPending)
	}
	if scheduledTime <= s.clk.Now() {
		return models.Huddle{}, fmt.Errorf("service: scheduled time %d: %w", scheduledTime, auctionerrors.ErrInvalidTime)
	}

	accepted, err := s.store.ScheduleHuddle(huddleID, scheduledTime)
	if err != nil {
		return models.Huddle{}, fmt.Errorf("service: failed to schedule huddle %d: %w", huddleID, err)
	}

	s.sink.Emit(events.HuddleAccepted, map[string]any{
		"huddle_id":      huddleID,
		"host_id":        hostID,
		"scheduled_time": scheduledTime,
	})
	return accepted, nil
}

// Finalize closes an open huddle once its scheduled time has been reached,
// fixing the current winning bid as final. It is permissionless and
// idempotent: finalizing an already closed or claimed huddle is a no-op.
func (s *HuddleService) Finalize(huddleID uint64) (models.Huddle, error) {
	now := s.clk.Now()

	existing, err := s.store.GetHuddle(huddleID)
	if err != nil {
		return models.Huddle{}, fmt.Errorf("service: failed to finalize huddle %d: %w", huddleID, err)
	}
	switch existing.Status {
	case models.HuddleClosed, models.HuddleClaimed:
		return existing, nil
	case models.HuddleGuestPending:
		return models.Huddle{}, fmt.Errorf("service: huddle %d was never scheduled: %w", huddleID, auctionerrors.ErrNotOpen)
	}
	if now < existing.ScheduledTime {
		return models.Huddle{}, fmt.Errorf("service: huddle %d: %w", huddleID, auctionerrors.ErrTimeNotReached)
	}

	closed, err := s.store.CloseHuddle(huddleID)
	if err != nil {
		return models.Huddle{}, fmt.Errorf("service: failed to close huddle %d: %w", huddleID, err)
	}

	payload := map[string]any{
		"huddle_id": huddleID,
		"host_id":   closed.HostID,
	}
	if closed.WinningBidID != "" {
		if winner, werr := s.store.GetWinningBid(huddleID); werr == nil {
			payload["winner_id"] = winner.BidderID
			payload["value"] = winner.Value
		}
	}
	s.sink.Emit(events.HuddleClosed, payload)
	return closed, nil
}

// Claim pays the winning bid's value out to the host of a closed huddle.
// The transfer happens before the status flip, so a bank failure leaves the
// huddle closed and still claimable. Exactly one claim can ever succeed.
func (s *HuddleService) Claim(hostID string, huddleID uint64) (models.Huddle, error) {
	existing, err := s.store.GetHuddle(huddleID)
	if err != nil {
		return models.Huddle{}, fmt.Errorf("service: failed to claim huddle %d: %w", huddleID, err)
	}
	if existing.HostID != hostID {
		return models.Huddle{}, fmt.Errorf("service: account %s: %w", hostID, auctionerrors.ErrNotHost)
	}
	switch existing.Status {
	case models.HuddleClaimed:
		return models.Huddle{}, fmt.Errorf("service: huddle %d: %w", huddleID, auctionerrors.ErrAlreadyClaimed)
	case models.HuddleClosed:
	default:
		return models.Huddle{}, fmt.Errorf("service: huddle %d is %s: %w", huddleID, existing.Status, auctionerrors.ErrNotClosed)
	}
	if existing.WinningBidID == "" {
		return models.Huddle{}, fmt.Errorf("service: huddle %d: %w", huddleID, auctionerrors.ErrNoWinner)
	}

	winner, err := s.store.GetWinningBid(huddleID)
	if err != nil {
		return models.Huddle{}, fmt.Errorf("service: failed to resolve winner of huddle %d: %w", huddleID, err)
	}
	if err := s.bank.Transfer(winner.BidderID, hostID, winner.Value); err != nil {
		return models.Huddle{}, fmt.Errorf("service: failed to transfer winning bid of huddle %d: %w", huddleID, err)
	}

	claimed, err := s.store.MarkClaimed(huddleID)
	if err != nil {
		return models.Huddle{}, fmt.Errorf("service: failed to mark huddle %d claimed: %w", huddleID, err)
	}

	s.sink.Emit(events.Claimed, map[string]any{
		"huddle_id": huddleID,
		"host_id":   hostID,
		"winner_id": winner.BidderID,
		"value":     winner.Value,
	})
	return claimed, nil
}

// GetHuddle returns a huddle by id
func (s *HuddleService) GetHuddle(huddleID uint64) (models.Huddle, error) {
	h, err := s.store.GetHuddle(huddleID)
	if err != nil {
		return models.Huddle{}, fmt.Errorf("service: failed to get huddle %d: %w", huddleID, err)
	}
	return h, nil
}

// GetHuddlesByHost returns all huddles owned by a host
func (s *HuddleService) GetHuddlesByHost(hostID string) ([]models.Huddle, error) {
	if hostID == "" {
		return nil, fmt.Errorf("service: %w - empty host ID", auctionerrors.ErrInvalidInput)
	}
	huddles, err := s.store.GetHuddlesByHost(hostID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get huddles for %s: %w", hostID, err)
	}
	return huddles, nil
}
