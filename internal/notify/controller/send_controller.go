package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/notify/usecase"
)

type SendCampaignUseCase interface {
	Run(ctx context.Context, t domain.MessageType, opts usecase.RunOptions) (*usecase.RunResult, error)
}

type SendController struct {
	useCase SendCampaignUseCase
	logger  *zap.Logger
}

func NewSendController(useCase SendCampaignUseCase, logger *zap.Logger) *SendController {
	return &SendController{
		useCase: useCase,
		logger:  logger,
	}
}

type sendRequest struct {
	Type     string `json:"type"`
	Headless bool   `json:"headless"`
}

type sendResponse struct {
	TraceID       string    `json:"traceId"`
	MessageType   string    `json:"messageType"`
	Processed     int       `json:"processed"`
	FailedNumbers []string  `json:"failedNumbers"`
	Timestamp     time.Time `json:"timestamp"`
}

type errorResponse struct {
	TraceID   string                       `json:"traceId"`
	Status    int                          `json:"status"`
	Code      string                       `json:"code"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

// Send runs one campaign for the requested message type. The call blocks for
// the duration of the run, which is minutes for a non-trivial recipient set.
func (c *SendController) Send(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", []apperrors.ValidationDetail{
			{Field: "body", Message: "request body must be valid JSON"},
		})
		return
	}

	messageType, ok := domain.ParseMessageType(req.Type)
	if !ok {
		logger.Warn("unknown message type", zap.String("type", req.Type))
		c.writeError(w, traceID, http.StatusBadRequest, "VALIDATION_ERROR", "unknown message type", []apperrors.ValidationDetail{
			{Field: "type", Message: "type must be one of confirmation, return, cancelled, valued, tracking"},
		})
		return
	}

	result, err := c.useCase.Run(r.Context(), messageType, usecase.RunOptions{Headless: req.Headless})
	if err != nil {
		c.handleRunError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, sendResponse{
		TraceID:       traceID,
		MessageType:   messageType.String(),
		Processed:     result.Processed,
		FailedNumbers: result.FailedNumbers,
		Timestamp:     time.Now().UTC(),
	})
}

func (c *SendController) handleRunError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if se, ok := apperrors.IsSessionError(err); ok {
		logger.Error("automation session failed", zap.Error(se))
		c.writeError(w, traceID, http.StatusBadGateway, "SESSION_FAILED", se.Message, nil)
		return
	}

	logger.Error("campaign failed", zap.Error(err))
	c.writeError(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

func (c *SendController) writeError(w http.ResponseWriter, traceID string, status int, code, message string, details []apperrors.ValidationDetail) {
	c.writeJSON(w, status, errorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

func (c *SendController) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.logger.Error("writing response", zap.Error(err))
	}
}
