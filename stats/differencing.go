package stats

import (
	"fmt"
	"math"

	"github.com/calderaproj/housecast/timeseries"
)

// nsdiffsStrengthThreshold is the seasonal-strength cutoff above which one
// seasonal difference is recommended, following Wang, Smith & Hyndman.
const nsdiffsStrengthThreshold = 0.64

// NDiffs estimates the number of first differences required to make a series
// stationary, testing repeatedly with the named test ("kpss", the default, or
// "adf") up to maxD (default 2). A series too short to test stops the
// recursion at the current order.
func NDiffs(s *timeseries.Series, maxD int, test string) int {
	if maxD <= 0 {
		maxD = 2
	}
	if test == "" {
		test = "kpss"
	}

	current := s
	for d := 0; d < maxD; d++ {
		if isStationary(current, test) {
			return d
		}
		current = current.Diff()
		if current.Len() < minTestObservations {
			return d
		}
	}
	return maxD
}

func isStationary(s *timeseries.Series, test string) bool {
	switch test {
	case "adf":
		result, err := ADF(s, 0)
		return err == nil && result.Stationary
	default:
		result, err := KPSS(s, 0)
		return err == nil && result.Stationary
	}
}

// NSDiffs estimates the number of seasonal differences required at the given
// period, up to maxD (default 1), using the seasonal-strength measure from
// classical decomposition.
func NSDiffs(s *timeseries.Series, period, maxD int) int {
	if maxD <= 0 {
		maxD = 1
	}
	if period <= 1 || s.Len() < 2*period {
		return 0
	}

	current := s
	for d := 0; d < maxD; d++ {
		decomp, err := Decompose(current, period)
		if err != nil || decomp.SeasonalStrength() < nsdiffsStrengthThreshold {
			return d
		}
		current = current.SeasonalDiff(period)
		if current.Len() < 2*period {
			return d + 1
		}
	}
	return maxD
}

// InformationCriteria holds the penalized-likelihood scores for one fitted
// model.
type InformationCriteria struct {
	LogLik float64
	AIC    float64
	AICc   float64
	BIC    float64
}

// CalculateIC computes AIC, AICc, and BIC from a log-likelihood, observation
// count, and parameter count. AICc degenerates to +Inf when the correction
// denominator is not positive.
func CalculateIC(logLik float64, nObs, nParams int) *InformationCriteria {
	k := float64(nParams)
	n := float64(nObs)

	aic := -2*logLik + 2*k
	bic := -2*logLik + k*math.Log(n)

	aicc := math.Inf(1)
	if n-k-1 > 0 {
		aicc = aic + 2*k*(k+1)/(n-k-1)
	}

	return &InformationCriteria{
		LogLik: logLik,
		AIC:    aic,
		AICc:   aicc,
		BIC:    bic,
	}
}

// Score returns the named criterion value: "aic", "aicc", or "bic".
func (ic *InformationCriteria) Score(criterion string) (float64, error) {
	switch criterion {
	case "", "aic":
		return ic.AIC, nil
	case "aicc":
		return ic.AICc, nil
	case "bic":
		return ic.BIC, nil
	}
	return 0, fmt.Errorf("unknown information criterion %q", criterion)
}
