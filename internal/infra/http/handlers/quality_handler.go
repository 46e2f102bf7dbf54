package handlers

import (
	"context"
	"log"
	"net/http"
)

type DatasetQualityChecker interface {
	DatasetQuality(ctx context.Context) ([]byte, error)
}

// QualityHandler proxies the dataset-quality report so the dashboard never
// sees the access token.
type QualityHandler struct {
	checker DatasetQualityChecker
}

func NewQualityHandler(checker DatasetQualityChecker) *QualityHandler {
	return &QualityHandler{checker: checker}
}

func (h *QualityHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := h.checker.DatasetQuality(r.Context())
	if err != nil {
		log.Printf("fb-quality: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch dataset quality.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
