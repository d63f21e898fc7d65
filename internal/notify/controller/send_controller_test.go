package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/notify/usecase"
)

type mockSendCampaignUseCase struct {
	RunFunc func(ctx context.Context, t domain.MessageType, opts usecase.RunOptions) (*usecase.RunResult, error)
}

func (m *mockSendCampaignUseCase) Run(ctx context.Context, t domain.MessageType, opts usecase.RunOptions) (*usecase.RunResult, error) {
	return m.RunFunc(ctx, t, opts)
}

func performSend(t *testing.T, uc SendCampaignUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := NewSendController(uc, zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/notifications/send", strings.NewReader(body))
	rr := httptest.NewRecorder()
	ctrl.Send(rr, req)
	return rr
}

func TestSend_Success(t *testing.T) {
	uc := &mockSendCampaignUseCase{
		RunFunc: func(ctx context.Context, mt domain.MessageType, opts usecase.RunOptions) (*usecase.RunResult, error) {
			if mt != domain.MessageTypeConfirmation {
				t.Errorf("expected confirmation, got %s", mt)
			}
			if !opts.Headless {
				t.Error("expected headless option passed through")
			}
			return &usecase.RunResult{Processed: 3, FailedNumbers: []string{"+92300000002"}}, nil
		},
	}

	rr := performSend(t, uc, `{"type":"confirmation","headless":true}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp sendResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Processed != 3 {
		t.Errorf("expected processed 3, got %d", resp.Processed)
	}
	if len(resp.FailedNumbers) != 1 || resp.FailedNumbers[0] != "+92300000002" {
		t.Errorf("unexpected failed numbers %v", resp.FailedNumbers)
	}
	if resp.MessageType != "confirmation" {
		t.Errorf("unexpected message type %q", resp.MessageType)
	}
	if resp.TraceID == "" {
		t.Error("expected trace id")
	}
}

func TestSend_EmptyFailedNumbersRendersAsArray(t *testing.T) {
	uc := &mockSendCampaignUseCase{
		RunFunc: func(ctx context.Context, mt domain.MessageType, opts usecase.RunOptions) (*usecase.RunResult, error) {
			return &usecase.RunResult{Processed: 0, FailedNumbers: []string{}}, nil
		},
	}

	rr := performSend(t, uc, `{"type":"tracking"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"failedNumbers":[]`) {
		t.Errorf("expected empty array in body, got %s", rr.Body.String())
	}
}

func TestSend_UnknownMessageType(t *testing.T) {
	uc := &mockSendCampaignUseCase{
		RunFunc: func(ctx context.Context, mt domain.MessageType, opts usecase.RunOptions) (*usecase.RunResult, error) {
			t.Fatal("use case must not run for an unknown type")
			return nil, nil
		},
	}

	rr := performSend(t, uc, `{"type":"promo"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %q", resp.Code)
	}
	if len(resp.Details) != 1 || resp.Details[0].Field != "type" {
		t.Errorf("unexpected details %v", resp.Details)
	}
}

func TestSend_InvalidJSON(t *testing.T) {
	uc := &mockSendCampaignUseCase{}

	rr := performSend(t, uc, `{"type":`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSend_SessionFailure(t *testing.T) {
	uc := &mockSendCampaignUseCase{
		RunFunc: func(ctx context.Context, mt domain.MessageType, opts usecase.RunOptions) (*usecase.RunResult, error) {
			return nil, apperrors.NewSessionError("opening whatsapp web session", errors.New("profile locked"))
		},
	}

	rr := performSend(t, uc, `{"type":"confirmation"}`)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Code != "SESSION_FAILED" {
		t.Errorf("expected SESSION_FAILED, got %q", resp.Code)
	}
}

func TestSend_InternalFailure(t *testing.T) {
	uc := &mockSendCampaignUseCase{
		RunFunc: func(ctx context.Context, mt domain.MessageType, opts usecase.RunOptions) (*usecase.RunResult, error) {
			return nil, errors.New("boom")
		},
	}

	rr := performSend(t, uc, `{"type":"valued"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
