package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func contactBody() []byte {
	body, _ := json.Marshal(usecase.ContactLeadInput{
		LeadID:    "lead-123",
		LeadName:  "Jane Doe",
		LeadEmail: "jane@x.com",
		Message:   "Podemos agendar uma call?",
		Timestamp: "2026-08-28T10:00:00Z",
	})
	return body
}

func TestContactHandlerSuccess(t *testing.T) {
	mockRelay := new(MockContactRelay)
	mockRelay.On("Forward", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewContactLeadUseCase(mockRelay)
	handler := handlers.NewContactHandler(uc)

	req := httptest.NewRequest("POST", "/api/contact", bytes.NewReader(contactBody()))
	w := httptest.NewRecorder()

	handler.Handle(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]bool
	json.NewDecoder(w.Body).Decode(&response)
	assert.True(t, response["success"])
	mockRelay.AssertExpectations(t)
}

func TestContactHandlerMissingMessage(t *testing.T) {
	mockRelay := new(MockContactRelay)
	uc := usecase.NewContactLeadUseCase(mockRelay)
	handler := handlers.NewContactHandler(uc)

	body, _ := json.Marshal(usecase.ContactLeadInput{LeadID: "lead-123"})
	req := httptest.NewRequest("POST", "/api/contact", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Handle(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRelay.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
}

func TestContactHandlerRelayFailure(t *testing.T) {
	mockRelay := new(MockContactRelay)
	mockRelay.On("Forward", mock.Anything, mock.Anything).
		Return(errors.New("webhook n8n falhou (status 502)"))

	uc := usecase.NewContactLeadUseCase(mockRelay)
	handler := handlers.NewContactHandler(uc)

	req := httptest.NewRequest("POST", "/api/contact", bytes.NewReader(contactBody()))
	w := httptest.NewRecorder()

	handler.Handle(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var errResponse map[string]string
	json.NewDecoder(w.Body).Decode(&errResponse)
	assert.NotEmpty(t, errResponse["error"])
}
