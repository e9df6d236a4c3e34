package identity

import (
	"fmt"

	"huddle-auction/internal/auctionerrors"
	"huddle-auction/internal/events"
	"huddle-auction/internal/models"
	"huddle-auction/internal/repository"
	"huddle-auction/internal/socialproof"
)

// IdentityService binds accounts to claimed social handles and answers the
// host-eligibility check used by the auction engine.
type IdentityService struct {
	store    repository.AuctionStore
	verifier socialproof.Verifier
	sink     events.Sink
}

// NewIdentityService creates a new IdentityService instance
func NewIdentityService(store repository.AuctionStore, verifier socialproof.Verifier, sink events.Sink) *IdentityService {
	return &IdentityService{
		store:    store,
		verifier: verifier,
		sink:     sink,
	}
}

// Bind links an account to a social handle backed by a proof reference.
// An account binds exactly once.
func (s *IdentityService) Bind(accountID, handle, proofLink string) (models.IdentityBinding, error) {
	if accountID == "" || handle == "" {
		return models.IdentityBinding{}, fmt.Errorf("service: %w - missing accountID or handle", auctionerrors.ErrInvalidInput)
	}
	if !s.verifier.Validate(proofLink, accountID, handle) {
		return models.IdentityBinding{}, fmt.Errorf("service: %w - %q", auctionerrors.ErrInvalidProof, proofLink)
	}

	binding := models.IdentityBinding{
		AccountID:    accountID,
		SocialHandle: handle,
		ProofLink:    proofLink,
		Verified:     true,
	}
	if err := s.store.SaveBinding(binding); err != nil {
		return models.IdentityBinding{}, fmt.Errorf("service: failed to bind account %s: %w", accountID, err)
	}

	s.sink.Emit(events.BindingCreated, map[string]any{
		"account_id": accountID,
		"handle":     handle,
	})
	return binding, nil
}

// IsRegistered reports whether an account holds an identity binding
func (s *IdentityService) IsRegistered(accountID string) bool {
	return s.store.HasBinding(accountID)
}

// GetBinding returns the identity binding of an account
func (s *IdentityService) GetBinding(accountID string) (models.IdentityBinding, error) {
	if accountID == "" {
		return models.IdentityBinding{}, fmt.Errorf("service: %w - empty account ID", auctionerrors.ErrInvalidInput)
	}

	binding, err := s.store.GetBinding(accountID)
	if err != nil {
		return models.IdentityBinding{}, fmt.Errorf("service: failed to get binding for %s: %w", accountID, err)
	}
	return binding, nil
}
