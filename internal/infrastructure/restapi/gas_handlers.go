package restapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gas_checker/internal/app/port"
	"gas_checker/internal/domain/entity"
)

// GasReportResponse wraps a report with an explicit success flag so that
// callers do not have to inspect the error field.
type GasReportResponse struct {
	Success bool `json:"success"`
	entity.GasReport
}

// QuickLookupResponse wraps a quick lookup with an explicit success flag.
type QuickLookupResponse struct {
	Success bool `json:"success"`
	entity.QuickLookup
}

// FIDResponse is the resolve-only response body.
type FIDResponse struct {
	Username string `json:"username"`
	FID      uint64 `json:"fid"`
}

// GasHandler handles HTTP requests for identity gas reports.
type GasHandler struct {
	reportService port.ReportService
	chainClients  []port.BlockchainClient
	identityAPI   port.IdentityAPI
}

// NewGasHandler creates a new GasHandler.
func NewGasHandler(rs port.ReportService, chainClients []port.BlockchainClient, identityAPI port.IdentityAPI) *GasHandler {
	return &GasHandler{
		reportService: rs,
		chainClients:  chainClients,
		identityAPI:   identityAPI,
	}
}

// IndexHandler describes the service and its entry points.
func (h *GasHandler) IndexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "gas_checker",
		"endpoints": gin.H{
			"full_report":  "/api/gas?username=<handle>",
			"quick_lookup": "/api/quick?username=<handle>",
			"resolve_fid":  "/api/fid/<handle>",
			"wallets":      "/api/wallets/<handle>",
			"health":       "/api/health",
		},
	})
}

// HealthHandler reports RPC connectivity per chain and whether the identity
// provider has a credential. A degraded status still answers 200; the body
// carries the detail.
func (h *GasHandler) HealthHandler(c *gin.Context) {
	ctx := c.Request.Context()

	chains := gin.H{}
	healthy := true
	for _, client := range h.chainClients {
		connected := client.Connected(ctx)
		chains[client.Definition().Identifier] = connected
		if !connected {
			healthy = false
		}
	}

	status := "ok"
	if !healthy {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                  status,
		"chains":                  chains,
		"identity_api_configured": h.identityAPI.Configured(),
	})
}

// FullReportHandler runs the complete resolution and aggregation pipeline.
// Resolution failures are reported in the body with a 200 status; only a
// missing username parameter is a client error.
func (h *GasHandler) FullReportHandler(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username query parameter is required"})
		return
	}

	report := h.reportService.FullReport(c.Request.Context(), username)
	c.JSON(http.StatusOK, GasReportResponse{Success: report.Success(), GasReport: report})
}

// QuickLookupHandler resolves identity and primary wallet without the
// per-wallet aggregation pass.
func (h *GasHandler) QuickLookupHandler(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username query parameter is required"})
		return
	}

	lookup := h.reportService.QuickLookup(c.Request.Context(), username)
	c.JSON(http.StatusOK, QuickLookupResponse{Success: lookup.Success(), QuickLookup: lookup})
}

// ResolveFIDHandler resolves a handle to its numeric identity only.
func (h *GasHandler) ResolveFIDHandler(c *gin.Context) {
	username := c.Param("username")

	fid, ok := h.reportService.ResolveFID(c.Request.Context(), username)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": entity.ErrUserNotFound})
		return
	}
	c.JSON(http.StatusOK, FIDResponse{Username: username, FID: fid})
}

// ListWalletsHandler returns the verified wallets with per-chain stats.
func (h *GasHandler) ListWalletsHandler(c *gin.Context) {
	username := c.Param("username")

	list, ok := h.reportService.ListWallets(c.Request.Context(), username)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": entity.ErrUserNotFound})
		return
	}
	c.JSON(http.StatusOK, list)
}
