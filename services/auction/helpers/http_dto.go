package helpers

// Request/Response DTOs

type BindRequest struct {
	AccountID string `json:"account_id" binding:"required"`
	Handle    string `json:"handle" binding:"required"`
	ProofLink string `json:"proof_link" binding:"required"`
}

type CreateHuddleRequest struct {
	HostID        string `json:"host_id" binding:"required"`
	ScheduledTime int64  `json:"scheduled_time" binding:"required,gt=0"`
	FloorPrice    uint64 `json:"floor_price"`
}

type OpenHuddleRequest struct {
	HostID     string `json:"host_id" binding:"required"`
	FloorPrice uint64 `json:"floor_price"`
}

type AcceptHuddleRequest struct {
	HostID        string `json:"host_id" binding:"required"`
	ScheduledTime int64  `json:"scheduled_time" binding:"required,gt=0"`
}

type ClaimRequest struct {
	HostID string `json:"host_id" binding:"required"`
}

type PlaceBidRequest struct {
	HuddleID uint64 `json:"huddle_id" binding:"required"`
	BidderID string `json:"bidder_id" binding:"required"`
	Value    uint64 `json:"value" binding:"required,gt=0"`
}

type RateRequest struct {
	HuddleID uint64 `json:"huddle_id" binding:"required"`
	RaterID  string `json:"rater_id" binding:"required"`
	RateeID  string `json:"ratee_id" binding:"required"`
	Stars    uint8  `json:"stars" binding:"required,gte=1,lte=5"`
}

type BindingResponse struct {
	AccountID    string `json:"account_id"`
	SocialHandle string `json:"social_handle"`
	ProofLink    string `json:"proof_link"`
	Verified     bool   `json:"verified"`
}

type HuddleResponse struct {
	HuddleID      uint64 `json:"huddle_id"`
	HostID        string `json:"host_id"`
	ScheduledTime int64  `json:"scheduled_time"`
	FloorPrice    uint64 `json:"floor_price"`
	Status        string `json:"status"`
	WinningBidID  string `json:"winning_bid_id,omitempty"`
}

type BidResponse struct {
	BidID       string `json:"bid_id"`
	HuddleID    uint64 `json:"huddle_id"`
	BidderID    string `json:"bidder_id"`
	Value       uint64 `json:"value"`
	SubmittedAt int64  `json:"submitted_at"`
	Status      string `json:"status"`
}

type ScoreResponse struct {
	AccountID string  `json:"account_id"`
	Average   float64 `json:"average"`
	Count     int     `json:"count"`
	Rated     bool    `json:"rated"`
}
