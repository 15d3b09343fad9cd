package web

import (
	"fmt"
	"net/http"

	"github.com/intelligrit/incident-atlas/internal/advisory"
	"github.com/intelligrit/incident-atlas/internal/dataset"
	"github.com/intelligrit/incident-atlas/internal/predictor"
)

// Server serves the prediction and analytics API consumed by the dashboard.
// Data may be nil (dataset file absent); the query endpoints then serve their
// empty shapes. Prediction availability is handled inside the predictor.
type Server struct {
	Data      *dataset.Index
	Predictor *predictor.Service
	Advisor   *advisory.Generator
	Addr      string
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	fmt.Printf("Serving at http://%s\n", s.Addr)
	return http.ListenAndServe(s.Addr, s.Handler())
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/metadata", s.handleMetadata)
	mux.HandleFunc("/globe_data", s.handleGlobeData)
	mux.HandleFunc("/history", s.handleHistory)
	mux.HandleFunc("/similar", s.handleSimilar)
	mux.HandleFunc("/predict", s.handlePredict)
	mux.HandleFunc("/genai/advisory", s.handleAdvisory)

	return mux
}
