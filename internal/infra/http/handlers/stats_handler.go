package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sunwatch/landing-api/internal/usecase"
)

type StatsHandler struct {
	getStats *usecase.GetStatsUseCase
}

func NewStatsHandler(getStats *usecase.GetStatsUseCase) *StatsHandler {
	return &StatsHandler{getStats: getStats}
}

func (h *StatsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	output, err := h.getStats.Execute(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(output)
}
