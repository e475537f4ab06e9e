// Command tune searches germ and treatment parameters with CMA-ES so that
// autopilot sessions break out close to a target time.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/integrii/flaggy"
	"gonum.org/v1/gonum/optimize"

	"github.com/raeleus/superbug/config"
)

// evalRow is one line of tune_log.csv.
type evalRow struct {
	Eval      int     `csv:"eval"`
	Cost      float64 `csv:"cost"`
	Mean      float64 `csv:"mean_outbreak_sec"`
	StdDev    float64 `csv:"stddev_sec"`
	Outbreaks int     `csv:"outbreaks"`
	Params    string  `csv:"params"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	var (
		configPath = ""
		outputDir  = ""
		target     = 300.0
		maxTicks   = 60 * 60 * 20
		seeds      = 4
		maxEvals   = 100
		population = 0
	)
	flaggy.SetName("tune")
	flaggy.SetDescription("Tune germ and treatment parameters toward a target outbreak time")
	flaggy.String(&configPath, "c", "config", "Base config YAML file (empty uses defaults)")
	flaggy.String(&outputDir, "o", "output", "Output directory for results (required)")
	flaggy.Float64(&target, "t", "target", "Target outbreak time in seconds")
	flaggy.Int(&maxTicks, "", "max-ticks", "Tick budget per session")
	flaggy.Int(&seeds, "", "seeds", "Sessions per evaluation")
	flaggy.Int(&maxEvals, "", "max-evals", "Maximum number of evaluations")
	flaggy.Int(&population, "", "population", "CMA-ES population size (0 is auto)")
	flaggy.Parse()

	if outputDir == "" {
		flaggy.ShowHelpAndExit("--output is required")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Sessions log at info; keep only problems
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	base, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector()
	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewEvaluator(params, base, evalSeeds, target, maxTicks)

	dim := params.Dim()
	initX := params.Normalize(params.Extract(base))

	popSize := population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
	}

	var (
		rows      []evalRow
		bestCost  = 1e9
		bestRaw   []float64
		startTime = time.Now()
	)
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			cost := evaluator.Evaluate(raw)
			r := evaluator.Last()

			if cost < bestCost {
				bestCost = cost
				bestRaw = raw
			}
			rows = append(rows, evalRow{
				Eval:      len(rows) + 1,
				Cost:      cost,
				Mean:      r.Mean,
				StdDev:    r.StdDev,
				Outbreaks: r.Outbreaks,
				Params:    formatParams(params, raw),
			})

			elapsed := time.Since(startTime)
			remaining := time.Duration(maxEvals-len(rows)) * (elapsed / time.Duration(len(rows)))
			fmt.Printf("Eval %d/%d: mean=%.0fs sd=%.0fs outbreaks=%d/%d cost=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
				len(rows), maxEvals, r.Mean, r.StdDev, r.Outbreaks, seeds, cost, bestCost,
				formatDuration(elapsed), formatDuration(remaining))
			return cost
		},
	}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d, target=%.0fs\n",
		dim, popSize, maxEvals, target)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestRaw == nil && result != nil {
		bestRaw = params.Denormalize(result.X)
	}

	logPath := filepath.Join(outputDir, "tune_log.csv")
	f, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		log.Printf("failed to write log: %v", err)
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", len(rows), formatDuration(time.Since(startTime)))
	if bestRaw == nil {
		return
	}
	fmt.Printf("Best cost: %.4f\n\nBest parameters:\n", bestCost)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, bestRaw[i])
	}

	best := params.Apply(base, bestRaw)
	configOutPath := filepath.Join(outputDir, "best_config.yaml")
	if err := best.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}

func formatParams(pv *ParamVector, raw []float64) string {
	parts := make([]string, len(raw))
	for i, spec := range pv.Specs {
		parts[i] = fmt.Sprintf("%s=%.6f", spec.Name, raw[i])
	}
	return strings.Join(parts, ";")
}
