package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/raeleus/superbug/config"
	"github.com/raeleus/superbug/game"
)

// Evaluator scores a parameter vector by how close autopilot sessions come
// to breaking out at the target time.
type Evaluator struct {
	params   *ParamVector
	base     *config.Config
	seeds    []int64
	target   float64 // seconds
	maxTicks int

	mu   sync.Mutex
	last Result
}

// Result summarizes one evaluation.
type Result struct {
	Cost      float64
	Mean      float64
	StdDev    float64
	Outbreaks int
}

// NewEvaluator creates an evaluator.
func NewEvaluator(params *ParamVector, base *config.Config, seeds []int64, target float64, maxTicks int) *Evaluator {
	return &Evaluator{
		params:   params,
		base:     base,
		seeds:    seeds,
		target:   target,
		maxTicks: maxTicks,
	}
}

// Last returns the result of the most recent evaluation.
func (e *Evaluator) Last() Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Evaluate runs one session per seed and returns the cost (lower is better).
func (e *Evaluator) Evaluate(raw []float64) float64 {
	cfg := e.params.Apply(e.base, raw)

	times := make([]float64, len(e.seeds))
	outbreaks := make([]bool, len(e.seeds))
	var wg sync.WaitGroup
	for i, seed := range e.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			times[idx], outbreaks[idx] = e.runSession(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	n := 0
	for _, ok := range outbreaks {
		if ok {
			n++
		}
	}

	mean, std := stat.MeanStdDev(times, nil)
	if len(times) < 2 {
		std = 0
	}
	r := Result{
		Cost:      e.cost(mean, std),
		Mean:      mean,
		StdDev:    std,
		Outbreaks: n,
	}

	e.mu.Lock()
	e.last = r
	e.mu.Unlock()
	return r.Cost
}

// cost is the squared log ratio of mean to target plus a spread penalty.
func (e *Evaluator) cost(mean, std float64) float64 {
	if mean <= 0 {
		return math.Inf(1)
	}
	off := math.Log(mean / e.target)
	spread := std / e.target
	return off*off + 0.25*spread*spread
}

// runSession plays one autopilot session and returns its outbreak time.
// A session without an outbreak counts as lasting the whole tick budget.
func (e *Evaluator) runSession(cfg *config.Config, seed int64) (float64, bool) {
	g, err := game.NewGameWithOptions(game.Options{
		Seed:     seed,
		Headless: true,
		Config:   cfg,
	})
	if err != nil {
		return 0, false
	}
	defer g.Unload()

	for tick := 0; tick < e.maxTicks; tick++ {
		g.UpdateHeadless()
		if g.Sessions() > 0 {
			break
		}
	}
	if best, ok := g.Records().Best(); ok {
		return best, true
	}
	return float64(e.maxTicks) * cfg.Screen.DT, false
}
