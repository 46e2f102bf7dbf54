package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sunwatch/landing-api/internal/infra/http/middleware"
	"github.com/sunwatch/landing-api/internal/usecase"
)

type WaitlistHandler struct {
	submitLead *usecase.SubmitLeadUseCase
}

func NewWaitlistHandler(submitLead *usecase.SubmitLeadUseCase) *WaitlistHandler {
	return &WaitlistHandler{submitLead: submitLead}
}

type SubmitLeadRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Dates             string `json:"dates"`
	Message           string `json:"message"`
	ABHeadlineVariant string `json:"ab_headline_variant"`
	FBTestEventCode   string `json:"fb_test_event_code"`
}

type SubmitLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	LeadID  int64  `json:"leadId"`
}

func (h *WaitlistHandler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSubmitLeadRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	input := usecase.SubmitLeadInput{
		Name:          req.Name,
		Email:         req.Email,
		Dates:         req.Dates,
		Message:       req.Message,
		Variant:       req.ABHeadlineVariant,
		TestEventCode: req.FBTestEventCode,
		ClientIP:      getClientIP(r),
		UserAgent:     r.UserAgent(),
	}

	output, err := h.submitLead.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.RecordLeadCaptured(output.Variant)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SubmitLeadResponse{
		Success: true,
		Message: "Successfully added to waitlist",
		LeadID:  output.LeadID,
	})
}

// The landing form posts JSON; plain HTML submission falls back to
// form-encoding. Both are accepted, like the original page.
func decodeSubmitLeadRequest(r *http.Request) (SubmitLeadRequest, error) {
	var req SubmitLeadRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Name = r.PostFormValue("name")
	req.Email = r.PostFormValue("email")
	req.Dates = r.PostFormValue("dates")
	req.Message = r.PostFormValue("message")
	req.ABHeadlineVariant = r.PostFormValue("ab_headline_variant")
	req.FBTestEventCode = r.PostFormValue("fb_test_event_code")
	return req, nil
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First hop is the client when behind a proxy chain.
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
