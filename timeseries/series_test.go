package timeseries

import (
	"math"
	"testing"
	"time"
)

func monthlyStart() time.Time {
	return time.Date(2012, time.January, 31, 0, 0, 0, 0, time.UTC)
}

func TestNewMonthly(t *testing.T) {
	values := []float64{100000, 101000, 102500, 101800, 103200}
	s := NewMonthly("30331", monthlyStart(), values)

	if s.Len() != 5 {
		t.Errorf("Expected length 5, got %d", s.Len())
	}
	if s.Name != "30331" {
		t.Errorf("Expected name 30331, got %s", s.Name)
	}

	for i, v := range s.Values {
		if v != values[i] {
			t.Errorf("Expected value %f at index %d, got %f", values[i], i, v)
		}
	}
	for i := 1; i < s.Len(); i++ {
		if !s.Timestamps[i].After(s.Timestamps[i-1]) {
			t.Errorf("Timestamps not increasing at index %d", i)
		}
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Expected valid series, got error: %v", err)
	}
}

func TestNewValidation(t *testing.T) {
	base := monthlyStart()

	tests := []struct {
		name       string
		timestamps []time.Time
		values     []float64
		wantErr    bool
	}{
		{
			"valid",
			[]time.Time{base, base.AddDate(0, 1, 0), base.AddDate(0, 2, 0)},
			[]float64{1, 2, 3},
			false,
		},
		{
			"length mismatch",
			[]time.Time{base, base.AddDate(0, 1, 0)},
			[]float64{1, 2, 3},
			true,
		},
		{
			"duplicate timestamp",
			[]time.Time{base, base, base.AddDate(0, 2, 0)},
			[]float64{1, 2, 3},
			true,
		},
		{
			"decreasing timestamps",
			[]time.Time{base.AddDate(0, 1, 0), base, base.AddDate(0, 2, 0)},
			[]float64{1, 2, 3},
			true,
		},
		{
			"non-finite value",
			[]time.Time{base, base.AddDate(0, 1, 0), base.AddDate(0, 2, 0)},
			[]float64{1, math.NaN(), 3},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("z", tt.timestamps, tt.values)
			if tt.wantErr && err == nil {
				t.Error("Expected an error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestMeanStd(t *testing.T) {
	s := NewMonthly("z", monthlyStart(), []float64{2, 4, 4, 4, 5, 5, 7, 9})

	if math.Abs(s.Mean()-5.0) > 1e-10 {
		t.Errorf("Expected mean 5, got %f", s.Mean())
	}
	expectedVar := 4.571428571428571
	if math.Abs(s.Variance()-expectedVar) > 1e-10 {
		t.Errorf("Expected variance %f, got %f", expectedVar, s.Variance())
	}
	if math.Abs(s.Std()-math.Sqrt(expectedVar)) > 1e-10 {
		t.Errorf("Expected std %f, got %f", math.Sqrt(expectedVar), s.Std())
	}
}

func TestMinMax(t *testing.T) {
	s := NewMonthly("z", monthlyStart(), []float64{5, 2, 8, 1, 9, 3})

	if s.Min() != 1 {
		t.Errorf("Expected min 1, got %f", s.Min())
	}
	if s.Max() != 9 {
		t.Errorf("Expected max 9, got %f", s.Max())
	}
}

func TestFirstLast(t *testing.T) {
	s := NewMonthly("z", monthlyStart(), []float64{10, 20, 30})

	if s.First() != 10 {
		t.Errorf("Expected first 10, got %f", s.First())
	}
	if s.Last() != 30 {
		t.Errorf("Expected last 30, got %f", s.Last())
	}
	if !s.EndTime().Equal(monthlyStart().AddDate(0, 2, 0)) {
		t.Errorf("Expected end time two months after start, got %v", s.EndTime())
	}
}

func TestSlice(t *testing.T) {
	s := NewMonthly("z", monthlyStart(), []float64{1, 2, 3, 4, 5})
	sliced := s.Slice(1, 4)

	expected := []float64{2, 3, 4}
	if len(sliced.Values) != len(expected) {
		t.Fatalf("Expected length %d, got %d", len(expected), len(sliced.Values))
	}
	for i, v := range sliced.Values {
		if v != expected[i] {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
	if !sliced.Timestamps[0].Equal(s.Timestamps[1]) {
		t.Error("Slice did not carry timestamps")
	}

	// Clipped bounds return what exists.
	if got := s.Slice(-5, 100).Len(); got != 5 {
		t.Errorf("Expected clipped slice length 5, got %d", got)
	}
	if got := s.Slice(4, 2).Len(); got != 0 {
		t.Errorf("Expected empty slice, got length %d", got)
	}
}

func TestCopyIsDeep(t *testing.T) {
	s := NewMonthly("z", monthlyStart(), []float64{1, 2, 3})
	copied := s.Copy()

	s.Values[0] = 100

	if copied.Values[0] != 1 {
		t.Error("Copy was modified when original changed")
	}
}

func TestDiff(t *testing.T) {
	s := NewMonthly("z", monthlyStart(), []float64{1, 3, 6, 10, 15})
	diff := s.Diff()

	expected := []float64{2, 3, 4, 5}
	if len(diff.Values) != len(expected) {
		t.Fatalf("Expected length %d, got %d", len(expected), len(diff.Values))
	}
	for i, v := range diff.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestSeasonalDiff(t *testing.T) {
	values := []float64{10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 11, 13, 15, 17}
	s := NewMonthly("z", monthlyStart(), values)

	diff := s.SeasonalDiff(12)

	expected := []float64{1, 1, 1, 1}
	if len(diff.Values) != len(expected) {
		t.Fatalf("Expected length %d, got %d", len(expected), len(diff.Values))
	}
	for i, v := range diff.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestLastYears(t *testing.T) {
	values := make([]float64, 120)
	for i := range values {
		values[i] = float64(i)
	}
	s := NewMonthly("z", monthlyStart(), values)

	recent := s.LastYears(5, 12)
	if recent.Len() != 60 {
		t.Fatalf("Expected 60 observations, got %d", recent.Len())
	}
	if recent.Values[0] != 60 {
		t.Errorf("Expected window to start at 60, got %f", recent.Values[0])
	}

	// Window longer than the series returns the whole series.
	whole := s.LastYears(20, 12)
	if whole.Len() != 120 {
		t.Errorf("Expected whole series, got %d observations", whole.Len())
	}
}

func TestFutureTimestampsMonthly(t *testing.T) {
	s := NewMonthly("z", monthlyStart(), []float64{1, 2, 3, 4, 5, 6})

	future := s.FutureTimestamps(4)
	if len(future) != 4 {
		t.Fatalf("Expected 4 timestamps, got %d", len(future))
	}

	prev := s.EndTime()
	for i, ts := range future {
		if !ts.After(prev) {
			t.Errorf("Timestamp %d not after its predecessor", i)
		}
		prev = ts
	}
	if !future[0].Equal(s.EndTime().AddDate(0, 1, 0)) {
		t.Errorf("Expected first future timestamp one month after %v, got %v", s.EndTime(), future[0])
	}
}

func TestFutureTimestampsNonMonthly(t *testing.T) {
	base := monthlyStart()
	timestamps := []time.Time{base, base.Add(24 * time.Hour), base.Add(48 * time.Hour)}
	s, err := New("daily", timestamps, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	future := s.FutureTimestamps(2)
	if len(future) != 2 {
		t.Fatalf("Expected 2 timestamps, got %d", len(future))
	}
	if !future[0].Equal(base.Add(72 * time.Hour)) {
		t.Errorf("Expected daily continuation, got %v", future[0])
	}
}
