package forecast

import (
	"fmt"
	"math"

	"github.com/calderaproj/housecast/timeseries"
)

// Report holds validation accuracy of a forecast against held-out data.
type Report struct {
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`

	// MAPE is in percent. NaN when any actual value is zero.
	MAPE float64 `json:"mape"`

	N int `json:"n"`
}

// Accuracy scores a validation forecast against the held-out test series.
// The forecast horizon must equal the test length.
func Accuracy(r *Result, test *timeseries.Series) (*Report, error) {
	if test == nil || test.Len() == 0 {
		return nil, timeseries.ErrEmptySeries
	}
	if r == nil || r.Horizon() != test.Len() {
		horizon := 0
		if r != nil {
			horizon = r.Horizon()
		}
		return nil, fmt.Errorf("%w: forecast horizon %d vs test length %d",
			ErrLengthMismatch, horizon, test.Len())
	}

	n := test.Len()
	sse, sae, sape := 0.0, 0.0, 0.0
	mapeOK := true
	for i := 0; i < n; i++ {
		err := r.Forecast[i] - test.Values[i]
		sse += err * err
		sae += math.Abs(err)
		if test.Values[i] == 0 {
			mapeOK = false
		} else {
			sape += math.Abs(err / test.Values[i])
		}
	}

	mape := math.NaN()
	if mapeOK {
		mape = sape / float64(n) * 100
	}

	return &Report{
		RMSE: math.Sqrt(sse / float64(n)),
		MAE:  sae / float64(n),
		MAPE: mape,
		N:    n,
	}, nil
}
