package predictor

import (
	"testing"

	"github.com/intelligrit/incident-atlas/internal/artifact"
	"github.com/intelligrit/incident-atlas/internal/model"
)

// stubModel records the feature vector it was given and returns a fixed value.
type stubModel struct {
	out float64
	got []float64
}

func (m *stubModel) PredictSingle(fvals []float64, nEstimators int) float64 {
	m.got = fvals
	return m.out
}

// identityBundle builds a bundle whose scaler leaves all 8 features unchanged.
func identityBundle(t *testing.T, m *stubModel) *artifact.Bundle {
	t.Helper()
	scaler := &artifact.Scaler{
		Mean:  make([]float64, 8),
		Scale: []float64{1, 1, 1, 1, 1, 1, 1, 1},
	}
	return &artifact.Bundle{
		Model:  m,
		Scaler: scaler,
		Encoders: artifact.Encoders{
			"attacktype1_txt": {"Bombing/Explosion": 3},
			"targtype1_txt":   {"Military": 2},
			"weaptype1_txt":   {"Explosives": 5},
		},
	}
}

func validRequest() model.PredictionRequest {
	return model.PredictionRequest{
		Year: 2017, Month: 1, Day: 1, Country: 4, Region: 6,
		AttackType: "Bombing/Explosion",
		TargetType: "Military",
		WeaponType: "Explosives",
	}
}

func TestPredictWithoutArtifacts(t *testing.T) {
	svc := New(nil)

	if svc.Available() {
		t.Error("expected Available() = false without artifacts")
	}

	result, err := svc.Predict(validRequest())
	if err != nil {
		t.Fatalf("missing artifacts must not be an error, got %v", err)
	}
	if result.Status != model.StatusWarning {
		t.Errorf("expected warning status, got %q", result.Status)
	}
	if result.PredictedFatalities != 0 {
		t.Errorf("expected 0 fatalities, got %v", result.PredictedFatalities)
	}
	if result.Message == "" {
		t.Error("expected an explanatory message")
	}
}

func TestPredictFeatureOrder(t *testing.T) {
	m := &stubModel{out: 4.2}
	svc := New(identityBundle(t, m))

	result, err := svc.Predict(validRequest())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if result.Status != model.StatusSuccess {
		t.Errorf("expected success, got %q", result.Status)
	}

	want := []float64{2017, 1, 1, 4, 6, 3, 2, 5}
	if len(m.got) != len(want) {
		t.Fatalf("expected %d features, got %d", len(want), len(m.got))
	}
	for i := range want {
		if m.got[i] != want[i] {
			t.Errorf("feature %d: expected %v, got %v", i, want[i], m.got[i])
		}
	}
}

func TestPredictUnseenCategoryFallsBackToZero(t *testing.T) {
	m := &stubModel{out: 1.5}
	svc := New(identityBundle(t, m))

	req := validRequest()
	req.AttackType = "Never Seen In Training"
	req.WeaponType = "Also Unseen"

	result, err := svc.Predict(req)
	if err != nil {
		t.Fatalf("unseen categories must not fail the request: %v", err)
	}
	if result.Status != model.StatusSuccess {
		t.Errorf("expected success, got %q", result.Status)
	}
	if m.got[5] != 0 {
		t.Errorf("unseen attack type should encode to 0, got %v", m.got[5])
	}
	if m.got[7] != 0 {
		t.Errorf("unseen weapon type should encode to 0, got %v", m.got[7])
	}
}

func TestPredictClampsNegativeEstimates(t *testing.T) {
	m := &stubModel{out: -3.7}
	svc := New(identityBundle(t, m))

	result, err := svc.Predict(validRequest())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if result.PredictedFatalities != 0 {
		t.Errorf("negative estimate should clamp to 0, got %v", result.PredictedFatalities)
	}
}

func TestPredictRoundsToTwoDecimals(t *testing.T) {
	m := &stubModel{out: 3.14159}
	svc := New(identityBundle(t, m))

	result, err := svc.Predict(validRequest())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if result.PredictedFatalities != 3.14 {
		t.Errorf("expected 3.14, got %v", result.PredictedFatalities)
	}
}

func TestPredictScalerMismatchIsAnError(t *testing.T) {
	bundle := identityBundle(t, &stubModel{})
	bundle.Scaler = &artifact.Scaler{Mean: make([]float64, 4), Scale: make([]float64, 4)}
	svc := New(bundle)

	if _, err := svc.Predict(validRequest()); err == nil {
		t.Error("expected error for scaler/feature-vector mismatch")
	}
}
