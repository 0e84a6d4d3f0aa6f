package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/SscSPs/rate_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/rate_ledger/internal/core/ports/services"
	"github.com/SscSPs/rate_ledger/internal/core/services"
	"github.com/SscSPs/rate_ledger/internal/dto"
	"github.com/SscSPs/rate_ledger/internal/middleware"
	"github.com/SscSPs/rate_ledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// NextPageTokenHeader carries the token of the next history page.
const NextPageTokenHeader = "X-Next-Page-Token"

// conversionRateHandler handles HTTP requests related to the conversion rate ledger.
type conversionRateHandler struct {
	ledger   portssvc.RateLedgerSvcFacade
	insights portssvc.RateInsightsSvc
}

func newConversionRateHandler(ledger portssvc.RateLedgerSvcFacade, insights portssvc.RateInsightsSvc) *conversionRateHandler {
	return &conversionRateHandler{ledger: ledger, insights: insights}
}

// RegisterConversionRateRoutes registers the ledger routes. writeGuards run before the
// write handler, after whatever authentication rg already applies.
func RegisterConversionRateRoutes(rg *gin.RouterGroup, ledger portssvc.RateLedgerSvcFacade, insights portssvc.RateInsightsSvc, writeGuards ...gin.HandlerFunc) {
	h := newConversionRateHandler(ledger, insights)

	rates := rg.Group("/conversion-rates")
	{
		rates.GET("", h.listConversionRates)
		writeChain := append(slices.Clone(writeGuards), h.recordConversionRate)
		rates.POST("", writeChain...)
		rates.GET("/stats", h.getDailyStats)
		rates.GET("/trend", h.getRecentTrend)
		rates.GET("/dashboard", h.getDashboard)
	}
}

// listConversionRates godoc
// @Summary Read conversion rates
// @Description With current=true returns the rate in effect; with yearmonth=YYYYMM returns the rate in effect within that month; otherwise returns the history, latest effective month first. Single-record reads answer null when nothing matches.
// @Tags conversion rates
// @Produce json
// @Param current query bool false "Return only the current rate"
// @Param yearmonth query string false "Calendar month as YYYYMM"
// @Param limit query int false "Maximum number of history records"
// @Param pageToken query string false "Token from the X-Next-Page-Token header of the previous page"
// @Success 200 {array} dto.ConversionRateResponse
// @Header 200 {string} X-Next-Page-Token "Token of the next history page"
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 503 {object} handlers.ErrorResponse "Rate store unavailable"
// @Security BearerAuth
// @Router /conversion-rates [get]
func (h *conversionRateHandler) listConversionRates(c *gin.Context) {
	var params dto.ListConversionRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	switch {
	case params.Current && params.YearMonth != "":
		badRequest(c, "Invalid query parameters", errors.New("current and yearmonth cannot be combined"))
	case params.Current:
		h.getCurrentRate(c)
	case params.YearMonth != "":
		h.getRateForPeriod(c, params.YearMonth)
	default:
		h.listHistory(c, params)
	}
}

func (h *conversionRateHandler) getCurrentRate(c *gin.Context) {
	rate, err := h.ledger.GetCurrentRate(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get current conversion rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToConversionRateResponse(rate))
}

func (h *conversionRateHandler) getRateForPeriod(c *gin.Context, yearMonth string) {
	year, month, err := services.ParseYearMonth(yearMonth)
	if err != nil {
		respondError(c, err, "Invalid yearmonth")
		return
	}
	rate, err := h.ledger.GetRateForPeriod(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err, "Failed to get conversion rate for period")
		return
	}
	c.JSON(http.StatusOK, dto.ToConversionRateResponse(rate))
}

func (h *conversionRateHandler) listHistory(c *gin.Context, params dto.ListConversionRatesParams) {
	var after *domain.RateRecord
	if params.PageToken != "" {
		cursor, err := pagination.DecodeHistoryToken(params.PageToken)
		if err != nil {
			badRequest(c, "Invalid pageToken", err)
			return
		}
		after = &cursor
	}

	rates := []dto.ConversionRateResponse{}
	var last domain.RateRecord
	hasMore := false
	for rec, err := range h.ledger.ListHistory(c.Request.Context()) {
		if err != nil {
			respondError(c, err, "Failed to list conversion rates")
			return
		}
		// history order is SupersedesRate descending, so the next page starts
		// at the first record the cursor supersedes
		if after != nil && !domain.SupersedesRate(*after, rec) {
			continue
		}
		if params.Limit > 0 && len(rates) == params.Limit {
			hasMore = true
			break
		}
		rates = append(rates, *dto.ToConversionRateResponse(&rec))
		last = rec
	}

	if hasMore {
		c.Header(NextPageTokenHeader, pagination.EncodeHistoryToken(last))
	}
	c.JSON(http.StatusOK, rates)
}

// recordConversionRate godoc
// @Summary Record a conversion rate
// @Description Appends a new rate record. Corrections are new records; nothing is ever overwritten.
// @Tags conversion rates
// @Accept json
// @Produce json
// @Param rate body dto.RecordRateRequest true "Rate and effective month"
// @Success 201 {object} dto.ConversionRateResponse
// @Failure 400 {object} handlers.ErrorResponse "Missing or invalid fields"
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse "Caller may not record rates"
// @Failure 429 {object} handlers.ErrorResponse "Too many requests"
// @Failure 503 {object} handlers.ErrorResponse "Rate store unavailable"
// @Security BearerAuth
// @Router /conversion-rates [post]
func (h *conversionRateHandler) recordConversionRate(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.RecordRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger.Info("Received request to record conversion rate",
		slog.String("rate", req.Rate.String()),
		slog.String("effective_month", req.EffectiveMonth))

	rate, err := h.ledger.RecordRate(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to record conversion rate")
		return
	}
	c.JSON(http.StatusCreated, dto.ToConversionRateResponse(rate))
}

// getDailyStats godoc
// @Summary Daily extrema statistics
// @Description Highest, lowest and average of the daily representative rates. An empty ledger answers a zero state.
// @Tags conversion rates
// @Produce json
// @Success 200 {object} domain.DailyStats
// @Failure 503 {object} handlers.ErrorResponse "Rate store unavailable"
// @Security BearerAuth
// @Router /conversion-rates/stats [get]
func (h *conversionRateHandler) getDailyStats(c *gin.Context) {
	stats, err := h.insights.GetDailyStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute daily stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// getRecentTrend godoc
// @Summary Recent trend
// @Description The last window records in write order with consecutive repeats collapsed.
// @Tags conversion rates
// @Produce json
// @Param window query int false "Number of recent records to consider"
// @Success 200 {array} domain.TrendPoint
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 503 {object} handlers.ErrorResponse "Rate store unavailable"
// @Security BearerAuth
// @Router /conversion-rates/trend [get]
func (h *conversionRateHandler) getRecentTrend(c *gin.Context) {
	var params dto.TrendParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	trend, err := h.insights.GetRecentTrend(c.Request.Context(), params.Window)
	if err != nil {
		respondError(c, err, "Failed to compute recent trend")
		return
	}
	if trend == nil {
		trend = []domain.TrendPoint{}
	}
	c.JSON(http.StatusOK, trend)
}

// getDashboard godoc
// @Summary Conversion dashboard
// @Description Current rate, daily stats and recent trend in one payload.
// @Tags conversion rates
// @Produce json
// @Param window query int false "Trend window"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 503 {object} handlers.ErrorResponse "Rate store unavailable"
// @Security BearerAuth
// @Router /conversion-rates/dashboard [get]
func (h *conversionRateHandler) getDashboard(c *gin.Context) {
	var params dto.TrendParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	dashboard, err := h.insights.GetDashboard(c.Request.Context(), params.Window)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard))
}
