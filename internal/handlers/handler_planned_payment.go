package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pennyflow/penny_tracker_app/internal/apperrors"
	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	portssvc "github.com/pennyflow/penny_tracker_app/internal/core/ports/services"
	"github.com/pennyflow/penny_tracker_app/internal/dto"
	"github.com/pennyflow/penny_tracker_app/internal/middleware"
)

// plannedPaymentHandler handles HTTP requests related to planned payments.
type plannedPaymentHandler struct {
	plannedPaymentService portssvc.PlannedPaymentSvcFacade
}

func newPlannedPaymentHandler(ps portssvc.PlannedPaymentSvcFacade) *plannedPaymentHandler {
	return &plannedPaymentHandler{plannedPaymentService: ps}
}

// registerPlannedPaymentRoutes registers routes related to planned payments.
func registerPlannedPaymentRoutes(rg *gin.RouterGroup, plannedPaymentService portssvc.PlannedPaymentSvcFacade) {
	h := newPlannedPaymentHandler(plannedPaymentService)

	payments := rg.Group("/planned-payments")
	{
		payments.POST("", h.createPlannedPayment)
		payments.GET("/:id", h.getPlannedPayment)
		payments.GET("", h.listPlannedPayments)
		payments.PUT("/:id", h.updatePlannedPayment)
		payments.DELETE("/:id", h.deletePlannedPayment)
		payments.POST("/:id/execute", h.executePlannedPayment)
		payments.GET("/:id/upcoming", h.previewUpcomingOccurrences)
	}
}

func (h *plannedPaymentHandler) createPlannedPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePlannedPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePlannedPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.plannedPaymentService.CreatePlannedPayment(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating planned payment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create planned payment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create planned payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPlannedPaymentResponse(payment))
}

func (h *plannedPaymentHandler) getPlannedPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plannedPaymentID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.plannedPaymentService.GetPlannedPaymentByID(c.Request.Context(), userID, plannedPaymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Planned payment not found"})
		} else {
			logger.Error("Failed to get planned payment from service", slog.String("error", err.Error()), slog.String("planned_payment_id", plannedPaymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve planned payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPlannedPaymentResponse(payment))
}

func (h *plannedPaymentHandler) listPlannedPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPlannedPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var payments []domain.PlannedPayment
	var err error
	if params.Due {
		asOf := time.Now()
		if params.AsOf != nil {
			asOf = *params.AsOf
		}
		payments, err = h.plannedPaymentService.ListDuePlannedPayments(c.Request.Context(), userID, asOf)
	} else {
		payments, err = h.plannedPaymentService.ListPlannedPayments(c.Request.Context(), userID)
	}
	if err != nil {
		logger.Error("Failed to list planned payments from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list planned payments"})
		return
	}

	c.JSON(http.StatusOK, dto.ListPlannedPaymentsResponse{PlannedPayments: dto.ToPlannedPaymentResponses(payments)})
}

func (h *plannedPaymentHandler) updatePlannedPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plannedPaymentID := c.Param("id")

	var req dto.UpdatePlannedPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePlannedPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.plannedPaymentService.UpdatePlannedPayment(c.Request.Context(), userID, plannedPaymentID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Planned payment not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update planned payment in service", slog.String("error", err.Error()), slog.String("planned_payment_id", plannedPaymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update planned payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPlannedPaymentResponse(payment))
}

func (h *plannedPaymentHandler) deletePlannedPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plannedPaymentID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.plannedPaymentService.DeletePlannedPayment(c.Request.Context(), userID, plannedPaymentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Planned payment not found"})
		} else {
			logger.Error("Failed to delete planned payment in service", slog.String("error", err.Error()), slog.String("planned_payment_id", plannedPaymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete planned payment"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// executePlannedPayment turns the planned payment into a real ledger
// transaction and advances its schedule.
func (h *plannedPaymentHandler) executePlannedPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plannedPaymentID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.plannedPaymentService.ExecutePlannedPayment(c.Request.Context(), userID, plannedPaymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to execute planned payment", slog.String("error", err.Error()), slog.String("planned_payment_id", plannedPaymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute planned payment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// previewUpcomingOccurrences projects the next occurrences of one planned
// payment without writing anything.
func (h *plannedPaymentHandler) previewUpcomingOccurrences(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plannedPaymentID := c.Param("id")

	var params dto.UpcomingOccurrencesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	occurrences, err := h.plannedPaymentService.PreviewUpcomingOccurrences(c.Request.Context(), userID, plannedPaymentID, params.Count)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Planned payment not found"})
		} else {
			logger.Error("Failed to preview planned payment occurrences", slog.String("error", err.Error()), slog.String("planned_payment_id", plannedPaymentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview occurrences"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.UpcomingOccurrencesResponse{
		PlannedPaymentID: plannedPaymentID,
		Occurrences:      occurrences,
	})
}
