package models

// HuddleStatus tracks a Huddle through its lifecycle
type HuddleStatus string

const (
	// HuddleGuestPending marks a guest-opened Huddle awaiting host acceptance
	HuddleGuestPending HuddleStatus = "guest_pending"
	// HuddleOpen marks a Huddle accepting bids until its scheduled time
	HuddleOpen HuddleStatus = "open"
	// HuddleClosed marks a Huddle past its scheduled time with the winner fixed
	HuddleClosed HuddleStatus = "closed"
	// HuddleClaimed marks a Huddle whose host collected the winning bid's value
	HuddleClaimed HuddleStatus = "claimed"
)

// BidStatus tracks a bid's standing within its Huddle's auction
type BidStatus string

const (
	// BidWinning marks the current highest bid of a still-running auction
	BidWinning BidStatus = "winning"
	// BidSurpassed marks a bid that was overtaken by a higher one
	BidSurpassed BidStatus = "surpassed"
	// BidWinner marks the final winning bid after the Huddle closed
	BidWinner BidStatus = "winner"
)

// IdentityBinding links an account to its claimed social handle
type IdentityBinding struct {
	AccountID    string `json:"account_id"`
	SocialHandle string `json:"social_handle"`
	ProofLink    string `json:"proof_link"`
	Verified     bool   `json:"verified"`
}

// Huddle represents a schedulable meeting slot auctioned to the highest bidder.
// ScheduledTime is unix seconds; 0 means the slot is guest-opened and not yet
// time-gated. WinningBidID is empty while no bid has been accepted.
type Huddle struct {
	HuddleID      uint64       `json:"huddle_id"`
	HostID        string       `json:"host_id"`
	ScheduledTime int64        `json:"scheduled_time"`
	FloorPrice    uint64       `json:"floor_price"`
	Status        HuddleStatus `json:"status"`
	WinningBidID  string       `json:"winning_bid_id,omitempty"`
}

// Bid represents a user's bid on a Huddle
type Bid struct {
	BidID       string    `json:"bid_id"`
	HuddleID    uint64    `json:"huddle_id"`
	BidderID    string    `json:"bidder_id"`
	Value       uint64    `json:"value"`
	SubmittedAt int64     `json:"submitted_at"`
	Status      BidStatus `json:"status"`
}

// ReputationEntry records a single post-auction rating between the two
// participants of a closed Huddle.
type ReputationEntry struct {
	HuddleID uint64 `json:"huddle_id"`
	RaterID  string `json:"rater_id"`
	RateeID  string `json:"ratee_id"`
	Stars    uint8  `json:"stars"`
}

// Score is the aggregated rating of an account. Rated is false when the
// account has never received a rating.
type Score struct {
	AccountID string  `json:"account_id"`
	Average   float64 `json:"average"`
	Count     int     `json:"count"`
	Rated     bool    `json:"rated"`
}
