package autoarima

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/calderaproj/housecast/sarima"
	"github.com/calderaproj/housecast/stats"
	"github.com/calderaproj/housecast/timeseries"
)

// ErrNoModel is returned when no candidate order converged at all.
var ErrNoModel = errors.New("no candidate order could be fitted")

// DefaultMaxOrder bounds the p, q, P, and Q search dimensions when a config
// leaves them at zero. One shared default; per-dimension overrides remain
// available on Config.
const DefaultMaxOrder = 5

// Config bounds and steers the order search.
type Config struct {
	// M is the seasonal period. Zero or one disables seasonal terms.
	M int

	// Search maxima for the four searched dimensions. Zero means
	// DefaultMaxOrder.
	MaxP  int
	MaxQ  int
	MaxSP int
	MaxSQ int

	// Differencing bounds. Zero means the stats package defaults
	// (2 non-seasonal, 1 seasonal).
	MaxD  int
	MaxSD int

	// Criterion ranks candidates: "aic" (default), "aicc", or "bic".
	Criterion string

	// StationarityTest feeds NDiffs: "kpss" (default) or "adf".
	StationarityTest string

	// Stepwise walks a Hyndman-Khandakar-style neighborhood instead of the
	// exhaustive grid. On by default through DefaultConfig.
	Stepwise bool

	// Logger receives skipped-candidate and progress events. Defaults to a
	// no-op logger.
	Logger zerolog.Logger
}

// DefaultConfig returns the search configuration for monthly data at the
// given seasonal period.
func DefaultConfig(m int) *Config {
	return &Config{
		M:         m,
		MaxP:      DefaultMaxOrder,
		MaxQ:      DefaultMaxOrder,
		MaxSP:     DefaultMaxOrder,
		MaxSQ:     DefaultMaxOrder,
		Criterion: "aic",
		Stepwise:  true,
		Logger:    zerolog.Nop(),
	}
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.MaxP == 0 {
		out.MaxP = DefaultMaxOrder
	}
	if out.MaxQ == 0 {
		out.MaxQ = DefaultMaxOrder
	}
	if out.MaxSP == 0 {
		out.MaxSP = DefaultMaxOrder
	}
	if out.MaxSQ == 0 {
		out.MaxSQ = DefaultMaxOrder
	}
	if out.Criterion == "" {
		out.Criterion = "aic"
	}
	if out.M <= 1 {
		out.MaxSP = 0
		out.MaxSQ = 0
	}
	return &out
}

// Result is the outcome of an order search: the winning order, its fitted
// model, and how the search went.
type Result struct {
	Order     sarima.Order
	Model     *sarima.Model
	Criterion string
	Score     float64
	Evaluated int
	Skipped   int
}

// Search selects a model order for s. Differencing orders d and D are fixed
// up front from stationarity tests and seasonal strength; p, q, P, and Q are
// then searched within the configured maxima, minimizing the information
// criterion. Candidate orders whose fit fails are skipped and logged at
// debug level; the search only errors if every candidate failed.
func Search(s *timeseries.Series, cfg *Config) (*Result, error) {
	if s == nil || s.Len() == 0 {
		return nil, timeseries.ErrEmptySeries
	}
	if cfg == nil {
		cfg = DefaultConfig(0)
	}
	cfg = cfg.withDefaults()

	d := stats.NDiffs(s, cfg.MaxD, cfg.StationarityTest)
	sd := 0
	if cfg.M > 1 {
		sd = stats.NSDiffs(s, cfg.M, cfg.MaxSD)
	}

	cfg.Logger.Debug().
		Str("series", s.Name).
		Int("d", d).
		Int("sd", sd).
		Int("m", cfg.M).
		Bool("stepwise", cfg.Stepwise).
		Msg("order search started")

	search := &searcher{series: s, cfg: cfg, d: d, sd: sd, bestScore: math.Inf(1)}
	if cfg.Stepwise {
		search.stepwise()
	} else {
		search.exhaustive()
	}

	if search.bestModel == nil {
		return nil, fmt.Errorf("%w: %d candidates tried for series %q",
			ErrNoModel, search.evaluated+search.skipped, s.Name)
	}

	cfg.Logger.Debug().
		Stringer("order", search.bestOrder).
		Float64("score", search.bestScore).
		Int("evaluated", search.evaluated).
		Int("skipped", search.skipped).
		Msg("order search finished")

	return &Result{
		Order:     search.bestOrder,
		Model:     search.bestModel,
		Criterion: cfg.Criterion,
		Score:     search.bestScore,
		Evaluated: search.evaluated,
		Skipped:   search.skipped,
	}, nil
}

type candidate struct {
	p, q, sp, sq int
}

type searcher struct {
	series *timeseries.Series
	cfg    *Config
	d, sd  int

	bestOrder sarima.Order
	bestModel *sarima.Model
	bestScore float64
	evaluated int
	skipped   int
	tried     map[candidate]bool
}

// try fits one candidate and keeps it if it improves the criterion. Fit
// failures are the recoverable error class of the pipeline: logged, counted,
// and swallowed.
func (s *searcher) try(c candidate) bool {
	if s.tried == nil {
		s.tried = make(map[candidate]bool)
	}
	if s.tried[c] {
		return false
	}
	s.tried[c] = true

	order := sarima.Order{
		P: c.p, D: s.d, Q: c.q,
		SP: c.sp, SD: s.sd, SQ: c.sq, M: s.cfg.M,
	}
	model, err := sarima.New(order)
	if err == nil {
		err = model.Fit(s.series)
	}
	if err != nil {
		s.skipped++
		s.cfg.Logger.Debug().
			Stringer("order", order).
			Err(err).
			Msg("candidate skipped")
		return false
	}

	score, err := model.IC.Score(s.cfg.Criterion)
	if err != nil || math.IsNaN(score) {
		s.skipped++
		s.cfg.Logger.Debug().Stringer("order", order).Msg("candidate score unusable")
		return false
	}
	s.evaluated++

	if score < s.bestScore {
		s.bestScore = score
		s.bestOrder = order
		s.bestModel = model
		return true
	}
	return false
}

func (s *searcher) inBounds(c candidate) bool {
	return c.p >= 0 && c.p <= s.cfg.MaxP &&
		c.q >= 0 && c.q <= s.cfg.MaxQ &&
		c.sp >= 0 && c.sp <= s.cfg.MaxSP &&
		c.sq >= 0 && c.sq <= s.cfg.MaxSQ
}

// stepwise starts from a handful of standard simple models and repeatedly
// moves to the best improving neighbor, one step in any single dimension or
// the joint (p,q) diagonal.
func (s *searcher) stepwise() {
	starts := []candidate{
		{0, 0, 0, 0},
		{1, 0, 1, 0},
		{0, 1, 0, 1},
		{1, 1, 1, 1},
		{2, 2, 1, 1},
	}
	for _, c := range starts {
		if s.inBounds(c) {
			s.try(c)
		}
	}
	if s.bestModel == nil {
		return
	}

	for improved := true; improved; {
		improved = false
		b := candidate{s.bestOrder.P, s.bestOrder.Q, s.bestOrder.SP, s.bestOrder.SQ}
		neighbors := []candidate{
			{b.p + 1, b.q, b.sp, b.sq},
			{b.p - 1, b.q, b.sp, b.sq},
			{b.p, b.q + 1, b.sp, b.sq},
			{b.p, b.q - 1, b.sp, b.sq},
			{b.p, b.q, b.sp + 1, b.sq},
			{b.p, b.q, b.sp - 1, b.sq},
			{b.p, b.q, b.sp, b.sq + 1},
			{b.p, b.q, b.sp, b.sq - 1},
			{b.p + 1, b.q + 1, b.sp, b.sq},
			{b.p - 1, b.q - 1, b.sp, b.sq},
		}
		for _, c := range neighbors {
			if s.inBounds(c) && s.try(c) {
				improved = true
			}
		}
	}
}

func (s *searcher) exhaustive() {
	for p := 0; p <= s.cfg.MaxP; p++ {
		for q := 0; q <= s.cfg.MaxQ; q++ {
			for sp := 0; sp <= s.cfg.MaxSP; sp++ {
				for sq := 0; sq <= s.cfg.MaxSQ; sq++ {
					s.try(candidate{p, q, sp, sq})
				}
			}
		}
	}
}
