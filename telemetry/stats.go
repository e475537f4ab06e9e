package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	SessionID       string  `csv:"session_id"`
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Population int `csv:"population"`

	// Events during window
	Births    int `csv:"births"`
	Mutations int `csv:"mutations"`
	Deaths    int `csv:"deaths"`

	// Culls during window, by cause
	CulledHeat      int `csv:"culled_heat"`
	CulledCold      int `csv:"culled_cold"`
	CulledRadiation int `csv:"culled_radiation"`
	CulledTreatment int `csv:"culled_treatment"`

	// Environment at window end
	Food        float64 `csv:"food"`
	Temperature float64 `csv:"temperature"`
	Radiation   float64 `csv:"radiation"`

	// Immunity-set size distribution (sampled at window end)
	MaxImmunities int     `csv:"max_immunities"`
	Resistance    float64 `csv:"resistance"`
	ImmunityMean  float64 `csv:"immunity_mean"`
	ImmunityStd   float64 `csv:"immunity_std"`
	ImmunityP10   float64 `csv:"immunity_p10"`
	ImmunityP50   float64 `csv:"immunity_p50"`
	ImmunityP90   float64 `csv:"immunity_p90"`

	// Live carriers of each immunity
	HoldPenicillin   int `csv:"hold_penicillin"`
	HoldCephalexin   int `csv:"hold_cephalexin"`
	HoldTetracycline int `csv:"hold_tetracycline"`
	HoldPeroxide     int `csv:"hold_peroxide"`
	HoldAlcohol      int `csv:"hold_alcohol"`
	HoldBleach       int `csv:"hold_bleach"`
	HoldHeat         int `csv:"hold_heat"`
	HoldCold         int `csv:"hold_cold"`
	HoldRadiation    int `csv:"hold_radiation"`
}

// Culled returns the total culls in the window.
func (s WindowStats) Culled() int {
	return s.CulledHeat + s.CulledCold + s.CulledRadiation + s.CulledTreatment
}

// ComputeDistribution calculates the population mean, standard deviation
// and empirical 10th/50th/90th percentiles of values.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session_id", s.SessionID),
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("population", s.Population),
		slog.Int("births", s.Births),
		slog.Int("mutations", s.Mutations),
		slog.Int("deaths", s.Deaths),
		slog.Int("culled", s.Culled()),
		slog.Float64("food", s.Food),
		slog.Float64("temperature", s.Temperature),
		slog.Float64("radiation", s.Radiation),
		slog.Int("max_immunities", s.MaxImmunities),
		slog.Float64("resistance", s.Resistance),
		slog.Float64("immunity_mean", s.ImmunityMean),
		slog.Float64("immunity_p90", s.ImmunityP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"session_id", s.SessionID,
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"population", s.Population,
		"births", s.Births,
		"mutations", s.Mutations,
		"deaths", s.Deaths,
		"culled_heat", s.CulledHeat,
		"culled_cold", s.CulledCold,
		"culled_radiation", s.CulledRadiation,
		"culled_treatment", s.CulledTreatment,
		"food", s.Food,
		"temperature", s.Temperature,
		"radiation", s.Radiation,
		"max_immunities", s.MaxImmunities,
		"resistance", s.Resistance,
		"immunity_mean", s.ImmunityMean,
		"immunity_std", s.ImmunityStd,
		"immunity_p50", s.ImmunityP50,
		"immunity_p90", s.ImmunityP90,
	)
}
