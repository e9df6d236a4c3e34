package huddle

import (
	"testing"

	"huddle-auction/internal/auctionerrors"
	"huddle-auction/internal/clock"
	"huddle-auction/internal/currency"
	"huddle-auction/internal/events"
	identity "huddle-auction/internal/identityService"
	model "huddle-auction/internal/models"
	"huddle-auction/internal/repository"
	"huddle-auction/internal/socialproof"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const t0 = int64(1_700_000_000)

type fixture struct {
	store  *repository.MemoryStore
	ledger *currency.MemoryLedger
	clk    *clock.ManualClock
	sink   *events.MemorySink
	ident  *identity.IdentityService
	svc    *HuddleService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  repository.NewMemoryStore(),
		ledger: currency.NewMemoryLedger(),
		clk:    clock.NewManualClock(t0),
		sink:   events.NewMemorySink(),
	}
	f.ident = identity.NewIdentityService(f.store, socialproof.LinkVerifier{}, f.sink)
	f.svc = NewHuddleService(f.store, f.ident, f.ledger, f.clk, f.sink)
	return f
}

func (f *fixture) registerHost(t *testing.T, accountID, handle string) {
	t.Helper()
	_, err := f.ident.Bind(accountID, handle, "https://social.example/"+handle+"/status/1")
	require.NoError(t, err)
}

func (f *fixture) recordBid(t *testing.T, huddleID uint64, bidder string, value uint64) model.Bid {
	t.Helper()
	bid := model.Bid{BidID: "bid-" + bidder, HuddleID: huddleID, BidderID: bidder, Value: value, SubmittedAt: t0}
	_, err := f.store.RecordBid(bid)
	require.NoError(t, err)
	require.NoError(t, f.ledger.Reserve(bidder, value))
	return bid
}

func TestHuddleService_CreateHuddle(t *testing.T) {
	t.Parallel()

	t.Run("registered_host_future_time", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.registerHost(t, "host", "alice")

		h, err := f.svc.CreateHuddle("host", t0+3600, 100)
		require.NoError(t, err)
		require.Equal(t, uint64(1), h.HuddleID)
		require.Equal(t, model.HuddleOpen, h.Status)
		require.Equal(t, uint64(100), h.FloorPrice)
		require.Equal(t, []string{events.BindingCreated, events.HuddleCreated}, f.sink.Names())
	})

	t.Run("unregistered_host", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.CreateHuddle("stranger", t0+3600, 100)
		require.ErrorIs(t, err, auctionerrors.ErrNotRegistered)
	})

	t.Run("time_not_strictly_future", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.registerHost(t, "host", "alice")

		_, err := f.svc.CreateHuddle("host", t0, 100)
		require.ErrorIs(t, err, auctionerrors.ErrInvalidTime)

		_, err = f.svc.CreateHuddle("host", t0-1, 100)
		require.ErrorIs(t, err, auctionerrors.ErrInvalidTime)
	})
}

func TestHuddleService_OpenAndAccept(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.registerHost(t, "host", "alice")
	f.ledger.Deposit("carol", 100)

	// Anyone may propose a huddle on the host's behalf; no schedule yet.
	pending, err := f.svc.OpenHuddleForHost("host", 40)
	require.NoError(t, err)
	require.Equal(t, model.HuddleGuestPending, pending.Status)
	require.Zero(t, pending.ScheduledTime)

	// A bid lands while the huddle is still pending.
	f.recordBid(t, pending.HuddleID, "carol", 50)

	// Only the requested host may accept.
	_, err = f.svc.AcceptHuddle("mallory", pending.HuddleID, t0+7200)
	require.ErrorIs(t, err, auctionerrors.ErrNotHost)

	// The schedule must be strictly future.
	_, err = f.svc.AcceptHuddle("host", pending.HuddleID, t0)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidTime)

	accepted, err := f.svc.AcceptHuddle("host", pending.HuddleID, t0+7200)
	require.NoError(t, err)
	require.Equal(t, model.HuddleOpen, accepted.Status)
	require.Equal(t, t0+7200, accepted.ScheduledTime)

	// The pre-acceptance bid survived as the current winner.
	winning, err := f.store.GetWinningBid(pending.HuddleID)
	require.NoError(t, err)
	require.Equal(t, uint64(50), winning.Value)

	// Accepting twice is a state error.
	_, err = f.svc.AcceptHuddle("host", pending.HuddleID, t0+9000)
	require.ErrorIs(t, err, auctionerrors.ErrNotPending)
}

func TestHuddleService_AcceptHuddle_UnregisteredHost(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	pending, err := f.svc.OpenHuddleForHost("ghost", 40)
	require.NoError(t, err)

	// Guest-opening needs no binding, accepting does.
	_, err = f.svc.AcceptHuddle("ghost", pending.HuddleID, t0+7200)
	require.ErrorIs(t, err, auctionerrors.ErrNotRegistered)
}

func TestHuddleService_Finalize(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.registerHost(t, "host", "alice")
	f.ledger.Deposit("bob", 500)

	h, err := f.svc.CreateHuddle("host", t0+3600, 100)
	require.NoError(t, err)
	f.recordBid(t, h.HuddleID, "bob", 200)

	// Not before the scheduled time.
	_, err = f.svc.Finalize(h.HuddleID)
	require.ErrorIs(t, err, auctionerrors.ErrTimeNotReached)

	f.clk.Set(t0 + 3600)
	closed, err := f.svc.Finalize(h.HuddleID)
	require.NoError(t, err)
	require.Equal(t, model.HuddleClosed, closed.Status)

	winner, err := f.store.GetWinningBid(h.HuddleID)
	require.NoError(t, err)
	require.Equal(t, model.BidWinner, winner.Status)

	// Idempotent: a second finalize is a no-op success.
	again, err := f.svc.Finalize(h.HuddleID)
	require.NoError(t, err)
	require.Equal(t, model.HuddleClosed, again.Status)

	_, err = f.svc.Finalize(99)
	require.ErrorIs(t, err, auctionerrors.ErrHuddleNotFound)
}

func TestHuddleService_Finalize_GuestPending(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	pending, err := f.svc.OpenHuddleForHost("host", 40)
	require.NoError(t, err)

	// An unscheduled huddle has no time gate to satisfy.
	_, err = f.svc.Finalize(pending.HuddleID)
	require.ErrorIs(t, err, auctionerrors.ErrNotOpen)
}

func TestHuddleService_Finalize_ZeroBids(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.registerHost(t, "host", "alice")

	h, err := f.svc.CreateHuddle("host", t0+3600, 100)
	require.NoError(t, err)

	f.clk.Set(t0 + 4000)
	closed, err := f.svc.Finalize(h.HuddleID)
	require.NoError(t, err)
	require.Equal(t, model.HuddleClosed, closed.Status)
	require.Empty(t, closed.WinningBidID)

	// Nothing to claim on a winnerless huddle.
	_, err = f.svc.Claim("host", h.HuddleID)
	require.ErrorIs(t, err, auctionerrors.ErrNoWinner)
}

func TestHuddleService_Claim(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.registerHost(t, "host", "alice")
	f.ledger.Deposit("bob", 500)

	h, err := f.svc.CreateHuddle("host", t0+3600, 100)
	require.NoError(t, err)
	f.recordBid(t, h.HuddleID, "bob", 200)

	// Claiming an open huddle fails.
	_, err = f.svc.Claim("host", h.HuddleID)
	require.ErrorIs(t, err, auctionerrors.ErrNotClosed)

	f.clk.Set(t0 + 3600)
	_, err = f.svc.Finalize(h.HuddleID)
	require.NoError(t, err)

	// Only the host claims.
	_, err = f.svc.Claim("bob", h.HuddleID)
	require.ErrorIs(t, err, auctionerrors.ErrNotHost)

	claimed, err := f.svc.Claim("host", h.HuddleID)
	require.NoError(t, err)
	require.Equal(t, model.HuddleClaimed, claimed.Status)

	// The winning bid's value moved from bob's reservation to the host.
	require.Zero(t, f.ledger.ReservedBalance("bob"))
	require.Equal(t, uint64(300), f.ledger.FreeBalance("bob"))
	require.Equal(t, uint64(200), f.ledger.FreeBalance("host"))

	// Exactly one successful claim per huddle.
	_, err = f.svc.Claim("host", h.HuddleID)
	require.ErrorIs(t, err, auctionerrors.ErrAlreadyClaimed)
}

func TestHuddleService_Claim_TransferFailureLeavesHuddleClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := repository.NewMemoryStore()
	clk := clock.NewManualClock(t0)
	sink := events.NewMemorySink()
	ident := identity.NewIdentityService(store, socialproof.LinkVerifier{}, sink)
	mockBank := currency.NewMockService(ctrl)
	svc := NewHuddleService(store, ident, mockBank, clk, sink)

	_, err := ident.Bind("host", "alice", "https://social.example/alice/status/1")
	require.NoError(t, err)
	h, err := svc.CreateHuddle("host", t0+3600, 100)
	require.NoError(t, err)
	_, err = store.RecordBid(model.Bid{BidID: "bid-bob", HuddleID: h.HuddleID, BidderID: "bob", Value: 200, SubmittedAt: t0})
	require.NoError(t, err)

	clk.Set(t0 + 3600)
	_, err = svc.Finalize(h.HuddleID)
	require.NoError(t, err)

	mockBank.EXPECT().Transfer("bob", "host", uint64(200)).Return(auctionerrors.ErrInsufficientBalance)

	_, err = svc.Claim("host", h.HuddleID)
	require.ErrorIs(t, err, auctionerrors.ErrInsufficientBalance)

	// No half-applied update: the huddle stays closed and claimable.
	current, err := store.GetHuddle(h.HuddleID)
	require.NoError(t, err)
	require.Equal(t, model.HuddleClosed, current.Status)

	mockBank.EXPECT().Transfer("bob", "host", uint64(200)).Return(nil)
	claimed, err := svc.Claim("host", h.HuddleID)
	require.NoError(t, err)
	require.Equal(t, model.HuddleClaimed, claimed.Status)
}

func TestHuddleService_GetHuddlesByHost(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.registerHost(t, "host", "alice")

	_, err := f.svc.CreateHuddle("host", t0+3600, 100)
	require.NoError(t, err)
	_, err = f.svc.OpenHuddleForHost("host", 40)
	require.NoError(t, err)

	huddles, err := f.svc.GetHuddlesByHost("host")
	require.NoError(t, err)
	require.Len(t, huddles, 2)

	_, err = f.svc.GetHuddlesByHost("")
	require.ErrorIs(t, err, auctionerrors.ErrInvalidInput)
}
