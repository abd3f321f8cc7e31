package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
	"github.com/fajarprasetia/smartone-finance/internal/dto"
	"github.com/fajarprasetia/smartone-finance/internal/middleware"
	"github.com/fajarprasetia/smartone-finance/internal/utils/pagination"
)

// cashHandler handles HTTP requests for the cash ledger.
type cashHandler struct {
	cashService portssvc.CashSvcFacade
}

func newCashHandler(cashService portssvc.CashSvcFacade) *cashHandler {
	return &cashHandler{cashService: cashService}
}

func registerCashRoutes(rg *gin.RouterGroup, cashService portssvc.CashSvcFacade) {
	h := newCashHandler(cashService)

	cash := rg.Group("/cash-transactions")
	{
		cash.POST("", h.recordTransaction)
		cash.GET("", h.listTransactions)
	}
}

func (h *cashHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordCashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.cashService.RecordCashTransaction(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAccountNotFound), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record cash transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record cash transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.RecordCashTransactionResponse{
		Success:     true,
		Transaction: dto.ToCashTransactionResponse(txn),
	})
}

func (h *cashHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCashTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	txns, total, err := h.cashService.ListCashTransactions(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list cash transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cash transactions"})
		return
	}

	responses := make([]dto.CashTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = dto.ToCashTransactionResponse(&txns[i])
	}

	page := pagination.Normalize(params.Page, params.PageSize, "", "", "", nil)
	c.JSON(http.StatusOK, dto.ListCashTransactionsResponse{
		Transactions: responses,
		Pagination: dto.PaginationResponse{
			TotalCount:  total,
			TotalPages:  page.TotalPages(total),
			CurrentPage: page.Page,
			PageSize:    page.PageSize,
		},
	})
}
