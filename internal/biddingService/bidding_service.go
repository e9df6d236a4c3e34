package bidding

import (
	"errors"
	"fmt"

	"huddle-auction/internal/auctionerrors"
	"huddle-auction/internal/clock"
	"huddle-auction/internal/currency"
	"huddle-auction/internal/events"
	"huddle-auction/internal/models"
	"huddle-auction/internal/repository"
	"huddle-auction/utils"
)

// BiddingService is the bid ledger: it validates, reserves funds for, and
// records bids against a huddle, tracking the current winner.
type BiddingService struct {
	store repository.AuctionStore
	bank  currency.Service
	clk   clock.Clock
	sink  events.Sink
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(store repository.AuctionStore, bank currency.Service, clk clock.Clock, sink events.Sink) *BiddingService {
	return &BiddingService{
		store: store,
		bank:  bank,
		clk:   clk,
		sink:  sink,
	}
}

// PlaceBid validates and records a bid, moving the funds reservation from
// the surpassed bidder to the new one. Either every effect lands or none
// does: a failure after the reservation releases it again, and a failure
// after the previous bidder's release re-reserves their funds.
func (s *BiddingService) PlaceBid(bidderID string, huddleID uint64, value uint64) (models.Bid, error) {
	if bidderID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty bidder ID", auctionerrors.ErrInvalidInput)
	}
	if value == 0 {
		return models.Bid{}, fmt.Errorf("service: %w - zero bid value", auctionerrors.ErrInvalidInput)
	}

	now := s.clk.Now()

	huddle, err := s.store.GetHuddle(huddleID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to place bid on huddle %d: %w", huddleID, err)
	}
	if bidderID == huddle.HostID {
		return models.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrOwnHuddle)
	}
	if huddle.Status != models.HuddleOpen && huddle.Status != models.HuddleGuestPending {
		return models.Bid{}, fmt.Errorf("service: huddle %d is %s: %w", huddleID, huddle.Status, auctionerrors.ErrNotOpen)
	}
	// ScheduledTime 0 means the slot is guest-opened and not yet time-gated.
	if huddle.ScheduledTime != 0 && now >= huddle.ScheduledTime {
		return models.Bid{}, fmt.Errorf("service: huddle %d: %w", huddleID, auctionerrors.ErrExpired)
	}

	prev, err := s.store.GetWinningBid(huddleID)
	switch {
	case err == nil:
		if value <= prev.Value {
			return models.Bid{}, fmt.Errorf("service: %w - current winning bid is %d", auctionerrors.ErrBidTooLow, prev.Value)
		}
	case errors.Is(err, auctionerrors.ErrNoBids):
		prev = models.Bid{}
		if value <= huddle.FloorPrice {
			return models.Bid{}, fmt.Errorf("service: %w - floor price is %d", auctionerrors.ErrBidTooLow, huddle.FloorPrice)
		}
	default:
		return models.Bid{}, fmt.Errorf("service: failed to check winning bid: %w", err)
	}

	if err := s.bank.Reserve(bidderID, value); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to reserve funds for %s: %w", bidderID, err)
	}
	if prev.BidID != "" {
		if err := s.bank.Release(prev.BidderID, prev.Value); err != nil {
			s.rollbackReserve(bidderID, value)
			return models.Bid{}, fmt.Errorf("service: failed to release surpassed bidder %s: %w", prev.BidderID, err)
		}
	}

	bid := models.Bid{
		BidID:       utils.GenerateID(),
		HuddleID:    huddleID,
		BidderID:    bidderID,
		Value:       value,
		SubmittedAt: now,
	}
	if _, err := s.store.RecordBid(bid); err != nil {
		// The store re-checked against freshest state and refused; put the
		// money back where it was.
		s.rollbackReserve(bidderID, value)
		if prev.BidID != "" {
			if rerr := s.bank.Reserve(prev.BidderID, prev.Value); rerr != nil {
				utils.Error("PlaceBid: failed to re-reserve surpassed bidder after aborted commit", map[string]any{
					"huddle_id": huddleID,
					"bidder_id": prev.BidderID,
					"error":     rerr.Error(),
				})
			}
		}
		return models.Bid{}, fmt.Errorf("service: failed to record bid on huddle %d: %w", huddleID, err)
	}

	s.sink.Emit(events.BidPlaced, map[string]any{
		"huddle_id": huddleID,
		"bidder_id": bidderID,
		"value":     value,
	})
	return bid, nil
}

// GetBidsForHuddle returns a huddle's full bid history
func (s *BiddingService) GetBidsForHuddle(huddleID uint64) ([]models.Bid, error) {
	bids, err := s.store.GetBidsByHuddle(huddleID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for huddle %d: %w", huddleID, err)
	}
	return bids, nil
}

// GetWinningBid returns the current winning bid for a huddle
func (s *BiddingService) GetWinningBid(huddleID uint64) (models.Bid, error) {
	bid, err := s.store.GetWinningBid(huddleID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for huddle %d: %w", huddleID, err)
	}
	return bid, nil
}

func (s *BiddingService) rollbackReserve(account string, value uint64) {
	if err := s.bank.Release(account, value); err != nil {
		utils.Error("PlaceBid: failed to release reservation during rollback", map[string]any{
			"account": account,
			"error":   err.Error(),
		})
	}
}
