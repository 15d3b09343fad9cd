package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/intelligrit/incident-atlas/internal/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":       "healthy",
		"model_loaded": s.Predictor.Available(),
		"data_loaded":  s.Data != nil,
	})
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	if s.Data == nil {
		writeJSON(w, &model.Metadata{Countries: map[int]string{}, Regions: map[int]string{}})
		return
	}

	meta, err := s.Data.Metadata()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, meta)
}

func (s *Server) handleGlobeData(w http.ResponseWriter, r *http.Request) {
	if s.Data == nil {
		writeJSON(w, map[string]any{"stats": []model.CountryAggregate{}})
		return
	}

	stats, err := s.Data.Globe()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"stats": stats})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.Data == nil {
		writeJSON(w, &model.History{Years: []int{}, Counts: []int{}})
		return
	}

	countryID, err := strconv.Atoi(r.URL.Query().Get("country_id"))
	if err != nil {
		http.Error(w, "invalid 'country_id' parameter", http.StatusBadRequest)
		return
	}

	history, err := s.Data.History(countryID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, history)
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	if s.Data == nil {
		writeJSON(w, map[string]any{"incidents": []model.IncidentRecord{}})
		return
	}

	region, err := strconv.Atoi(r.URL.Query().Get("region"))
	if err != nil {
		http.Error(w, "invalid 'region' parameter", http.StatusBadRequest)
		return
	}
	attackType := r.URL.Query().Get("attack_type")
	if attackType == "" {
		http.Error(w, "missing 'attack_type' parameter", http.StatusBadRequest)
		return
	}

	incidents, err := s.Data.Similar(region, attackType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"incidents": incidents})
}

// predictRequest mirrors model.PredictionRequest with pointer fields so that
// absent keys are distinguishable from zero values. All eight fields are
// required.
type predictRequest struct {
	Year       *int    `json:"iyear"`
	Month      *int    `json:"imonth"`
	Day        *int    `json:"iday"`
	Country    *int    `json:"country"`
	Region     *int    `json:"region"`
	AttackType *string `json:"attacktype1_txt"`
	TargetType *string `json:"targtype1_txt"`
	WeaponType *string `json:"weaptype1_txt"`
}

func (p *predictRequest) missingFields() []string {
	var missing []string
	check := func(name string, absent bool) {
		if absent {
			missing = append(missing, name)
		}
	}
	check("iyear", p.Year == nil)
	check("imonth", p.Month == nil)
	check("iday", p.Day == nil)
	check("country", p.Country == nil)
	check("region", p.Region == nil)
	check("attacktype1_txt", p.AttackType == nil)
	check("targtype1_txt", p.TargetType == nil)
	check("weaptype1_txt", p.WeaponType == nil)
	return missing
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusUnprocessableEntity)
		return
	}
	if missing := req.missingFields(); len(missing) > 0 {
		http.Error(w, "missing required fields: "+strings.Join(missing, ", "), http.StatusUnprocessableEntity)
		return
	}

	result, err := s.Predictor.Predict(model.PredictionRequest{
		Year:       *req.Year,
		Month:      *req.Month,
		Day:        *req.Day,
		Country:    *req.Country,
		Region:     *req.Region,
		AttackType: *req.AttackType,
		TargetType: *req.TargetType,
		WeaponType: *req.WeaponType,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleAdvisory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req model.AdvisoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusUnprocessableEntity)
		return
	}

	// Advise never fails; degraded results carry source="fallback".
	writeJSON(w, s.Advisor.Advise(r.Context(), req))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	// Wildcard CORS — the dashboard is served from a different origin.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_ = json.NewEncoder(w).Encode(v)
}
