package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
	"github.com/fajarprasetia/smartone-finance/internal/dto"
	"github.com/fajarprasetia/smartone-finance/internal/middleware"
	"github.com/fajarprasetia/smartone-finance/internal/utils/pagination"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	periodService  portssvc.PeriodSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade, periodService portssvc.PeriodSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
		periodService:  periodService,
	}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, periodService portssvc.PeriodSvcFacade) {
	h := newJournalHandler(journalService, periodService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.POST("/:entryID/cancel", h.cancelEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
	}
}

// respondJournalError maps service errors to HTTP responses. An unbalanced
// entry gets a detail payload with both totals and their difference.
func respondJournalError(c *gin.Context, logger *slog.Logger, err error, action string) {
	var unbalanced *apperrors.UnbalancedEntryError
	switch {
	case errors.As(err, &unbalanced):
		logger.Warn("Unbalanced journal entry rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Journal entry is not balanced",
			"details": gin.H{
				"totalDebits":  unbalanced.TotalDebits,
				"totalCredits": unbalanced.TotalCredits,
				"difference":   unbalanced.Difference(),
			},
		})
	case errors.Is(err, apperrors.ErrPostedImmutable):
		logger.Warn("Posted entry mutation rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPeriodClosed):
		logger.Warn("Closed period mutation rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondJournalError(c, logger, err, "create journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondJournalError(c, logger, err, "retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	entries, total, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondJournalError(c, logger, err, "list journal entries")
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context())
	if err != nil {
		respondJournalError(c, logger, err, "list journal entries")
		return
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}

	page := pagination.Normalize(params.Page, params.PageSize, "", "", "", nil)
	c.JSON(http.StatusOK, dto.ListJournalEntriesResponse{
		Entries: responses,
		Pagination: dto.PaginationResponse{
			TotalCount:  total,
			TotalPages:  page.TotalPages(total),
			CurrentPage: page.Page,
			PageSize:    page.PageSize,
		},
		Filters: dto.JournalEntryListFilters{
			Periods: dto.ToPeriodResponses(periods),
			Statuses: []string{
				string(domain.Draft),
				string(domain.Posted),
				string(domain.Cancelled),
			},
		},
	})
}

func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), entryID, req, userID)
	if err != nil {
		respondJournalError(c, logger, err, "update journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) cancelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CancelEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		respondJournalError(c, logger, err, "cancel journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.DeleteEntry(c.Request.Context(), entryID, userID); err != nil {
		respondJournalError(c, logger, err, "delete journal entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
