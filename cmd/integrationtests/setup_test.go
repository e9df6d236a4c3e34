package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	bidding "huddle-auction/internal/biddingService"
	"huddle-auction/internal/clock"
	"huddle-auction/internal/currency"
	"huddle-auction/internal/events"
	huddle "huddle-auction/internal/huddleService"
	identity "huddle-auction/internal/identityService"
	"huddle-auction/internal/repository"
	reputation "huddle-auction/internal/reputationService"
	"huddle-auction/internal/server"
	"huddle-auction/internal/socialproof"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const t0 = int64(1_700_000_000)

// TestEnv bundles the router with the collaborators tests drive directly
type TestEnv struct {
	Router *gin.Engine
	Clock  *clock.ManualClock
	Ledger *currency.MemoryLedger
}

// SetupTestEnv wires the full stack on in-memory collaborators with a
// manually driven clock.
func SetupTestEnv() *TestEnv {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	ledger := currency.NewMemoryLedger()
	clk := clock.NewManualClock(t0)
	sink := events.NewMemorySink()

	identitySvc := identity.NewIdentityService(store, socialproof.LinkVerifier{}, sink)
	huddleSvc := huddle.NewHuddleService(store, identitySvc, ledger, clk, sink)
	biddingSvc := bidding.NewBiddingService(store, ledger, clk, sink)
	reputationSvc := reputation.NewReputationService(store, sink)

	return &TestEnv{
		Router: server.SetupRouter(identitySvc, huddleSvc, biddingSvc, reputationSvc),
		Clock:  clk,
		Ledger: ledger,
	}
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request and parses the "data"
// field of the JSON envelope.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := ExecuteRequest(t, router, method, url, body)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	data, _ := envelope["data"].(map[string]any)
	return data, w
}
