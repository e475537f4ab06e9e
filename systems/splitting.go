package systems

// SplitProbability is the chance that a split attempt succeeds. It falls
// linearly to zero as count approaches cap and scales with remaining food.
func SplitProbability(cap, count int, food float32) float64 {
	if cap <= 0 {
		return 0
	}
	room := clamp01(float32(cap-count) / float32(cap))
	return float64(room * clamp01(food))
}

// TrySplit runs the Bernoulli trial for one split attempt.
func TrySplit(env *Env) bool {
	p := SplitProbability(env.State.PopulationCap, env.State.Population, env.State.Food)
	if p <= 0 {
		return false
	}
	return Chance(env.Rand, p)
}

// SplitJitter returns base plus a uniform jitter in [0, jitter).
func SplitJitter(r Rand, base, jitter float32) float32 {
	return base + Uniform(r, jitter)
}
