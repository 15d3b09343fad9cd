// Package predictor turns a hypothetical incident into a fatality estimate
// using the loaded artifact bundle.
package predictor

import (
	"fmt"
	"math"

	"github.com/intelligrit/incident-atlas/internal/artifact"
	"github.com/intelligrit/incident-atlas/internal/model"
)

// Categorical columns encoded before prediction, by training-time name.
const (
	colAttackType = "attacktype1_txt"
	colTargetType = "targtype1_txt"
	colWeaponType = "weaptype1_txt"
)

// Service produces fatality estimates. A nil Artifacts bundle is valid and
// means prediction is unavailable, not broken.
type Service struct {
	Artifacts *artifact.Bundle
}

// New creates a Service over an optionally-absent artifact bundle.
func New(bundle *artifact.Bundle) *Service {
	return &Service{Artifacts: bundle}
}

// Available reports whether the model artifacts are loaded.
func (s *Service) Available() bool {
	return s.Artifacts != nil
}

// Predict estimates fatalities for a hypothetical incident. With no artifacts
// loaded it returns a warning result rather than an error. An error return
// means the pipeline itself failed despite artifacts being present, which
// indicates an artifact/schema mismatch rather than missing data.
func (s *Service) Predict(req model.PredictionRequest) (*model.PredictionResult, error) {
	if s.Artifacts == nil {
		return &model.PredictionResult{
			PredictedFatalities: 0,
			Status:              model.StatusWarning,
			Message:             "Model not loaded.",
		}, nil
	}

	enc := s.Artifacts.Encoders

	// Feature vector in training-time column order.
	features := []float64{
		float64(req.Year),
		float64(req.Month),
		float64(req.Day),
		float64(req.Country),
		float64(req.Region),
		float64(enc.Code(colAttackType, req.AttackType)),
		float64(enc.Code(colTargetType, req.TargetType)),
		float64(enc.Code(colWeaponType, req.WeaponType)),
	}

	scaled, err := s.Artifacts.Scaler.Transform(features)
	if err != nil {
		return nil, fmt.Errorf("scaling features: %w", err)
	}

	// Fatalities cannot be negative; clamp before rounding.
	estimate := math.Max(0, s.Artifacts.Model.PredictSingle(scaled, 0))

	return &model.PredictionResult{
		PredictedFatalities: math.Round(estimate*100) / 100,
		Status:              model.StatusSuccess,
	}, nil
}
