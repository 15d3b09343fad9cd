// Package artifact loads the pre-trained model bundle: the gradient-boosted
// regressor, the feature scaler, and the per-column categorical encoders.
// The bundle is built once at startup and treated as immutable afterward.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitryikh/leaves"
)

// Artifact file names inside the models directory. The model is an XGBoost
// binary dump; the scaler and encoders are exported to JSON at training time.
const (
	ModelFile    = "model.xgb"
	ScalerFile   = "scaler.json"
	EncodersFile = "encoders.json"
)

// Regressor is the inference contract the prediction pipeline needs from the
// trained model. *leaves.Ensemble satisfies it.
type Regressor interface {
	PredictSingle(fvals []float64, nEstimators int) float64
}

// Scaler applies the standard scaling learned at training time: for each
// feature i, (x[i] - Mean[i]) / Scale[i].
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform scales a feature vector in training-time column order. The input
// is not modified.
func (s *Scaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) || len(features) != len(s.Scale) {
		return nil, fmt.Errorf("feature vector has %d values, scaler expects %d", len(features), len(s.Mean))
	}
	out := make([]float64, len(features))
	for i, v := range features {
		centered := v - s.Mean[i]
		if s.Scale[i] != 0 {
			centered /= s.Scale[i]
		}
		out[i] = centered
	}
	return out, nil
}

// Encoders holds the per-column string-to-code vocabularies learned at
// training time.
type Encoders map[string]map[string]int

// Code returns the integer code for a categorical value. Values never seen
// during training (and columns with no vocabulary at all) encode to 0 rather
// than failing the request.
func (e Encoders) Code(column, value string) int {
	vocab, ok := e[column]
	if !ok {
		return 0
	}
	code, ok := vocab[value]
	if !ok {
		return 0
	}
	return code
}

// Bundle is the complete set of prediction artifacts. Either all three parts
// are present and usable, or the bundle as a whole is absent.
type Bundle struct {
	Model    Regressor
	Scaler   *Scaler
	Encoders Encoders
}

// Load reads the artifact bundle from dir. A missing model file means the
// service was deployed without artifacts: Load returns (nil, nil) and callers
// must treat prediction as unavailable. Any other failure is an error; the
// caller logs it and continues serving without a bundle.
func Load(dir string) (*Bundle, error) {
	modelPath := filepath.Join(dir, ModelFile)
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, nil
	}

	model, err := leaves.XGEnsembleFromFile(modelPath, false)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}

	scaler := &Scaler{}
	if err := readJSON(filepath.Join(dir, ScalerFile), scaler); err != nil {
		return nil, fmt.Errorf("loading scaler: %w", err)
	}

	encoders := Encoders{}
	if err := readJSON(filepath.Join(dir, EncodersFile), &encoders); err != nil {
		return nil, fmt.Errorf("loading encoders: %w", err)
	}

	return &Bundle{Model: model, Scaler: scaler, Encoders: encoders}, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
