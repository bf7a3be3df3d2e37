package stats

import (
	"math"
	"testing"
)

func TestNDiffsStationary(t *testing.T) {
	n := 100
	stationary := make([]float64, n)
	for i := 0; i < n; i++ {
		stationary[i] = float64(i%10-5) + float64((i*7)%11-5)*0.5
	}

	d := NDiffs(monthlySeries(stationary), 2, "kpss")
	t.Logf("Stationary series ndiffs: %d", d)
	if d != 0 {
		t.Errorf("Stationary series should need 0 differences, got %d", d)
	}
}

func TestNDiffsTrend(t *testing.T) {
	n := 100
	trend := make([]float64, n)
	for i := 0; i < n; i++ {
		trend[i] = 100 + float64(i)*2 + float64((i*3)%7-3)*0.5
	}

	d := NDiffs(monthlySeries(trend), 2, "kpss")
	t.Logf("Trend series ndiffs: %d", d)
	if d < 1 {
		t.Errorf("Trending series should need at least 1 difference, got %d", d)
	}
}

func TestNDiffsRandomWalk(t *testing.T) {
	n := 100
	randomWalk := make([]float64, n)
	for i := 1; i < n; i++ {
		randomWalk[i] = randomWalk[i-1] + float64((i*7)%11-5)*0.3
	}

	d := NDiffs(monthlySeries(randomWalk), 2, "adf")
	t.Logf("Random walk ndiffs (adf): %d", d)
	if d > 2 {
		t.Errorf("NDiffs must respect maxD=2, got %d", d)
	}
}

func TestNSDiffsSeasonal(t *testing.T) {
	n := 120
	seasonal := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = 100 + float64(i)*0.5 + 15*math.Sin(2*math.Pi*float64(i)/12)
	}

	sd := NSDiffs(monthlySeries(seasonal), 12, 1)
	t.Logf("Seasonal series (period 12) nsdiffs: %d", sd)
	if sd < 1 {
		t.Errorf("Expected at least 1 seasonal difference for injected seasonality, got %d", sd)
	}
}

func TestNSDiffsNonSeasonal(t *testing.T) {
	n := 120
	nonSeasonal := make([]float64, n)
	for i := 0; i < n; i++ {
		nonSeasonal[i] = 100 + float64((i*7)%20-10)*0.5
	}

	sd := NSDiffs(monthlySeries(nonSeasonal), 12, 1)
	t.Logf("Non-seasonal series nsdiffs: %d", sd)
	if sd != 0 {
		t.Errorf("Non-seasonal series should need 0 seasonal differences, got %d", sd)
	}
}

func TestNSDiffsShortSeries(t *testing.T) {
	short := make([]float64, 18)
	for i := range short {
		short[i] = 10 * math.Sin(2*math.Pi*float64(i)/12)
	}
	if sd := NSDiffs(monthlySeries(short), 12, 1); sd != 0 {
		t.Errorf("Series shorter than two periods should need 0 seasonal differences, got %d", sd)
	}
}

func TestCalculateIC(t *testing.T) {
	logLik := -50.0
	nObs := 100
	nParams := 3

	ic := CalculateIC(logLik, nObs, nParams)

	expectedAIC := -2*logLik + 2*float64(nParams)
	if math.Abs(ic.AIC-expectedAIC) > 1e-10 {
		t.Errorf("AIC incorrect: got %f, expected %f", ic.AIC, expectedAIC)
	}

	expectedBIC := -2*logLik + float64(nParams)*math.Log(float64(nObs))
	if math.Abs(ic.BIC-expectedBIC) > 1e-10 {
		t.Errorf("BIC incorrect: got %f, expected %f", ic.BIC, expectedBIC)
	}

	k := float64(nParams)
	n := float64(nObs)
	expectedAICc := expectedAIC + 2*k*(k+1)/(n-k-1)
	if math.Abs(ic.AICc-expectedAICc) > 1e-10 {
		t.Errorf("AICc incorrect: got %f, expected %f", ic.AICc, expectedAICc)
	}

	t.Logf("LogLik=%.2f, n=%d, k=%d -> AIC=%.2f, AICc=%.2f, BIC=%.2f",
		logLik, nObs, nParams, ic.AIC, ic.AICc, ic.BIC)
}

func TestCalculateICSmallSample(t *testing.T) {
	// The AICc correction blows up when n-k-1 <= 0.
	ic := CalculateIC(-10, 5, 5)
	if !math.IsInf(ic.AICc, 1) {
		t.Errorf("AICc should be +Inf when n-k-1 <= 0, got %f", ic.AICc)
	}
}

func TestScore(t *testing.T) {
	ic := CalculateIC(-50, 100, 3)

	for _, tt := range []struct {
		criterion string
		want      float64
	}{
		{"", ic.AIC},
		{"aic", ic.AIC},
		{"aicc", ic.AICc},
		{"bic", ic.BIC},
	} {
		got, err := ic.Score(tt.criterion)
		if err != nil {
			t.Fatalf("Score(%q) failed: %v", tt.criterion, err)
		}
		if got != tt.want {
			t.Errorf("Score(%q) = %f, want %f", tt.criterion, got, tt.want)
		}
	}

	if _, err := ic.Score("hqic"); err == nil {
		t.Error("Expected an error for an unknown criterion")
	}
}

func TestSeasonalStrength(t *testing.T) {
	n := 120

	strong := make([]float64, n)
	for i := 0; i < n; i++ {
		strong[i] = 100 + 20*math.Sin(2*math.Pi*float64(i)/12)
	}
	strongDecomp, err := Decompose(monthlySeries(strong), 12)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	strongStrength := strongDecomp.SeasonalStrength()
	t.Logf("Strong seasonal pattern strength: %.4f", strongStrength)
	if strongStrength < nsdiffsStrengthThreshold {
		t.Errorf("Expected strength above %.2f for a pure seasonal pattern, got %.4f",
			nsdiffsStrengthThreshold, strongStrength)
	}

	weak := make([]float64, n)
	for i := 0; i < n; i++ {
		weak[i] = 100 + float64((i*7)%20-10)*0.5
	}
	weakDecomp, err := Decompose(monthlySeries(weak), 12)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}
	weakStrength := weakDecomp.SeasonalStrength()
	t.Logf("Weak seasonal pattern strength: %.4f", weakStrength)
	if weakStrength >= strongStrength {
		t.Errorf("Expected weak pattern strength (%.4f) below strong pattern strength (%.4f)",
			weakStrength, strongStrength)
	}
}
