package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
	"github.com/fajarprasetia/smartone-finance/internal/dto"
	"github.com/fajarprasetia/smartone-finance/internal/middleware"
)

// budgetHandler handles HTTP requests for budgets.
type budgetHandler struct {
	budgetService    portssvc.BudgetSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

func newBudgetHandler(budgetService portssvc.BudgetSvcFacade, reportingService portssvc.ReportingSvcFacade) *budgetHandler {
	return &budgetHandler{
		budgetService:    budgetService,
		reportingService: reportingService,
	}
}

func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newBudgetHandler(budgetService, reportingService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:budgetID", h.getBudget)
		budgets.PUT("/:budgetID", h.updateBudget)
		budgets.DELETE("/:budgetID", h.deleteBudget)
	}
}

func respondBudgetError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondBudgetError(c, logger, err, "create budget")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

func (h *budgetHandler) getBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")

	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), budgetID)
	if err != nil {
		respondBudgetError(c, logger, err, "retrieve budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// listBudgets returns the budgets for a year alongside the year's
// budget-vs-actual comparison, which the budget screens render side by side.
func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), &year)
	if err != nil {
		respondBudgetError(c, logger, err, "list budgets")
		return
	}

	comparison, err := h.reportingService.BudgetVsActual(c.Request.Context(), year)
	if err != nil {
		respondBudgetError(c, logger, err, "list budgets")
		return
	}

	responses := make([]dto.BudgetResponse, len(budgets))
	for i := range budgets {
		responses[i] = dto.ToBudgetResponse(&budgets[i])
	}
	if comparison == nil {
		comparison = []domain.BudgetVsActualRow{}
	}

	c.JSON(http.StatusOK, dto.ListBudgetsResponse{
		Budgets:        responses,
		BudgetVsActual: comparison,
	})
}

func (h *budgetHandler) updateBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")

	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateBudget", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), budgetID, req, userID)
	if err != nil {
		respondBudgetError(c, logger, err, "update budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

func (h *budgetHandler) deleteBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("budgetID")

	if err := h.budgetService.DeleteBudget(c.Request.Context(), budgetID); err != nil {
		respondBudgetError(c, logger, err, "delete budget")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
}
