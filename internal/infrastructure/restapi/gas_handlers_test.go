package restapi

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gas_checker/internal/app/port"
	"gas_checker/internal/domain/entity"
)

type stubReportService struct {
	report  entity.GasReport
	lookup  entity.QuickLookup
	fid     uint64
	found   bool
	wallets *entity.WalletList
}

func (s *stubReportService) FullReport(_ context.Context, _ string) entity.GasReport {
	return s.report
}

func (s *stubReportService) QuickLookup(_ context.Context, _ string) entity.QuickLookup {
	return s.lookup
}

func (s *stubReportService) ResolveFID(_ context.Context, _ string) (uint64, bool) {
	return s.fid, s.found
}

func (s *stubReportService) ListWallets(_ context.Context, _ string) (*entity.WalletList, bool) {
	return s.wallets, s.wallets != nil
}

type stubChainClient struct {
	identifier string
	connected  bool
}

func (c *stubChainClient) TransactionCount(context.Context, string) (uint64, error) { return 0, nil }
func (c *stubChainClient) NativeBalance(context.Context, string) (*big.Int, error) {
	return big.NewInt(0), nil
}
func (c *stubChainClient) ResolveName(context.Context, string) (string, error) { return "", nil }
func (c *stubChainClient) Connected(context.Context) bool                      { return c.connected }
func (c *stubChainClient) Definition() entity.NetworkDefinition {
	return entity.NetworkDefinition{Identifier: c.identifier}
}

type stubIdentityAPI struct{ configured bool }

func (a *stubIdentityAPI) UserByUsername(context.Context, string) (*entity.Profile, error) {
	return nil, nil
}
func (a *stubIdentityAPI) UserByFID(context.Context, uint64) (*entity.Profile, error) {
	return nil, nil
}
func (a *stubIdentityAPI) UserByAddress(context.Context, string) (*entity.Profile, error) {
	return nil, nil
}
func (a *stubIdentityAPI) Configured() bool { return a.configured }

func newTestRouter(svc port.ReportService, clients []port.BlockchainClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewGasHandler(svc, clients, &stubIdentityAPI{configured: true})

	router := gin.New()
	router.GET("/", handler.IndexHandler)
	api := router.Group("/api")
	api.GET("/health", handler.HealthHandler)
	api.GET("/gas", handler.FullReportHandler)
	api.GET("/quick", handler.QuickLookupHandler)
	api.GET("/fid/:username", handler.ResolveFIDHandler)
	api.GET("/wallets/:username", handler.ListWalletsHandler)
	return router
}

func doRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestFullReportHandlerRequiresUsername(t *testing.T) {
	router := newTestRouter(&stubReportService{}, nil)

	w := doRequest(router, "/api/gas")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFullReportHandlerSuccess(t *testing.T) {
	primary := "0xAAA"
	svc := &stubReportService{report: entity.GasReport{
		Username:        "alice",
		Wallets:         []entity.WalletReport{{Address: primary, IsPrimary: true}},
		PrimaryWallet:   &primary,
		TotalGasPrimary: 0.4,
		TotalGasUSD:     1400,
	}}
	router := newTestRouter(svc, nil)

	w := doRequest(router, "/api/gas?username=alice")

	require.Equal(t, http.StatusOK, w.Code)
	var body GasReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "alice", body.Username)
	require.Len(t, body.Wallets, 1)
	assert.True(t, body.Wallets[0].IsPrimary)
}

func TestFullReportHandlerResolutionFailureIsStill200(t *testing.T) {
	svc := &stubReportService{report: entity.FailedReport("ghost", nil, entity.ErrUserNotFound)}
	router := newTestRouter(svc, nil)

	w := doRequest(router, "/api/gas?username=ghost")

	require.Equal(t, http.StatusOK, w.Code)
	var body GasReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, entity.ErrUserNotFound, *body.Error)
}

func TestQuickLookupHandler(t *testing.T) {
	svc := &stubReportService{lookup: entity.QuickLookup{Username: "alice", WalletCount: 2}}
	router := newTestRouter(svc, nil)

	w := doRequest(router, "/api/quick?username=alice")

	require.Equal(t, http.StatusOK, w.Code)
	var body QuickLookupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.WalletCount)
}

func TestResolveFIDHandlerNotFoundIs404(t *testing.T) {
	router := newTestRouter(&stubReportService{found: false}, nil)

	w := doRequest(router, "/api/fid/ghost")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResolveFIDHandlerFound(t *testing.T) {
	router := newTestRouter(&stubReportService{fid: 42, found: true}, nil)

	w := doRequest(router, "/api/fid/alice")

	require.Equal(t, http.StatusOK, w.Code)
	var body FIDResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint64(42), body.FID)
}

func TestListWalletsHandlerNotFoundIs404(t *testing.T) {
	router := newTestRouter(&stubReportService{}, nil)

	w := doRequest(router, "/api/wallets/ghost")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListWalletsHandlerFound(t *testing.T) {
	svc := &stubReportService{wallets: &entity.WalletList{
		Username:    "alice",
		WalletCount: 1,
		Wallets:     []entity.WalletReport{{Address: "0xAAA"}},
	}}
	router := newTestRouter(svc, nil)

	w := doRequest(router, "/api/wallets/alice")

	require.Equal(t, http.StatusOK, w.Code)
	var body entity.WalletList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.WalletCount)
}

func TestHealthHandlerDegradedOnDisconnectedChain(t *testing.T) {
	clients := []port.BlockchainClient{
		&stubChainClient{identifier: "ethereum", connected: true},
		&stubChainClient{identifier: "base", connected: false},
	}
	router := newTestRouter(&stubReportService{}, clients)

	w := doRequest(router, "/api/health")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Status string          `json:"status"`
		Chains map[string]bool `json:"chains"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.True(t, body.Chains["ethereum"])
	assert.False(t, body.Chains["base"])
}

func TestHealthHandlerAllConnected(t *testing.T) {
	clients := []port.BlockchainClient{
		&stubChainClient{identifier: "ethereum", connected: true},
	}
	router := newTestRouter(&stubReportService{}, clients)

	w := doRequest(router, "/api/health")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
}
