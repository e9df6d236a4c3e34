package reputation

import (
	"errors"
	"fmt"

	"huddle-auction/internal/auctionerrors"
	"huddle-auction/internal/events"
	"huddle-auction/internal/models"
	"huddle-auction/internal/repository"
)

// ReputationService records post-auction ratings between the two
// participants of a closed huddle and keeps a per-account running average.
type ReputationService struct {
	store repository.AuctionStore
	sink  events.Sink
}

// NewReputationService creates a new ReputationService instance
func NewReputationService(store repository.AuctionStore, sink events.Sink) *ReputationService {
	return &ReputationService{
		store: store,
		sink:  sink,
	}
}

// Rate stores one rating between the host and the winning bidder of a
// closed huddle. Each direction is accepted once.
func (s *ReputationService) Rate(raterID string, huddleID uint64, rateeID string, stars uint8) (models.ReputationEntry, error) {
	if raterID == "" || rateeID == "" {
		return models.ReputationEntry{}, fmt.Errorf("service: %w - missing rater or ratee", auctionerrors.ErrInvalidInput)
	}
	if stars < 1 || stars > 5 {
		return models.ReputationEntry{}, fmt.Errorf("service: %d stars: %w", stars, auctionerrors.ErrInvalidStars)
	}

	huddle, err := s.store.GetHuddle(huddleID)
	if err != nil {
		return models.ReputationEntry{}, fmt.Errorf("service: failed to rate huddle %d: %w", huddleID, err)
	}
	if huddle.Status != models.HuddleClosed && huddle.Status != models.HuddleClaimed {
		return models.ReputationEntry{}, fmt.Errorf("service: huddle %d is %s: %w", huddleID, huddle.Status, auctionerrors.ErrNotClosed)
	}

	winner, err := s.store.GetWinningBid(huddleID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			// A huddle that closed without bids has no second participant.
			return models.ReputationEntry{}, fmt.Errorf("service: huddle %d: %w", huddleID, auctionerrors.ErrNotParticipant)
		}
		return models.ReputationEntry{}, fmt.Errorf("service: failed to resolve winner of huddle %d: %w", huddleID, err)
	}

	hostToWinner := raterID == huddle.HostID && rateeID == winner.BidderID
	winnerToHost := raterID == winner.BidderID && rateeID == huddle.HostID
	if !hostToWinner && !winnerToHost {
		return models.ReputationEntry{}, fmt.Errorf("service: %s rating %s: %w", raterID, rateeID, auctionerrors.ErrNotParticipant)
	}

	entry := models.ReputationEntry{
		HuddleID: huddleID,
		RaterID:  raterID,
		RateeID:  rateeID,
		Stars:    stars,
	}
	if err := s.store.RecordRating(entry); err != nil {
		return models.ReputationEntry{}, fmt.Errorf("service: failed to record rating for huddle %d: %w", huddleID, err)
	}

	s.sink.Emit(events.Rated, map[string]any{
		"huddle_id": huddleID,
		"rater_id":  raterID,
		"ratee_id":  rateeID,
		"stars":     stars,
	})
	return entry, nil
}

// GetScore returns the average over all ratings an account has received.
// Score.Rated is false for accounts nobody has rated yet.
func (s *ReputationService) GetScore(accountID string) (models.Score, error) {
	if accountID == "" {
		return models.Score{}, fmt.Errorf("service: %w - empty account ID", auctionerrors.ErrInvalidInput)
	}
	return s.store.GetScore(accountID), nil
}
