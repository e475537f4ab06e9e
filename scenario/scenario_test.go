package scenario

import (
	"testing"

	"github.com/raeleus/superbug/config"
	"github.com/raeleus/superbug/entities"
	"github.com/raeleus/superbug/systems"
	"github.com/raeleus/superbug/traits"
)

// fixedRand returns the same value for every draw.
type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(int) int     { return 0 }

// soundLog records every sound played.
type soundLog []string

func (l *soundLog) PlaySound(name string, _, _ float32) { *l = append(*l, name) }

func (l soundLog) count(name string) int {
	n := 0
	for _, s := range l {
		if s == name {
			n++
		}
	}
	return n
}

type transitionLog struct {
	states []string
	scores []float64
}

func (t *transitionLog) record(state string, score float64) {
	t.states = append(t.states, state)
	t.scores = append(t.scores, score)
}

func newController(t *testing.T) (*Controller, *soundLog, *transitionLog) {
	t.Helper()
	cfg := config.Defaults()
	state := systems.NewSimState(cfg)
	env := systems.NewEnv(cfg, &state, systems.NewRegistry(), fixedRand{f: 0.5})
	sounds := &soundLog{}
	env.Sounds = sounds
	tl := &transitionLog{}
	c := New(env, tl.record)
	c.Start()
	return c, sounds, tl
}

func germs(c *Controller) []*entities.Germ {
	var out []*entities.Germ
	c.Env().Registry.Each(func(e systems.Entity) {
		if g, ok := e.(*entities.Germ); ok {
			out = append(out, g)
		}
	})
	return out
}

func TestStartSeedsDish(t *testing.T) {
	c, _, _ := newController(t)
	if c.Env().Registry.Len() != 2 {
		t.Errorf("Len = %d, want dish and one germ", c.Env().Registry.Len())
	}
	s := c.Stats()
	if s.Population != 1 || s.CanSample {
		t.Errorf("Population = %d, CanSample = %v", s.Population, s.CanSample)
	}
	if c.Env().State.Food != 1 {
		t.Errorf("Food = %v", c.Env().State.Food)
	}
}

func TestOneGermBecomesTwo(t *testing.T) {
	c, _, _ := newController(t)
	in := DefaultInput(c.Env().Cfg)

	// Split timer is 6s with a fixed draw of 0.5.
	s := c.Tick(in, 6.5)
	if s.Population != 2 {
		t.Fatalf("Population = %d, want 2", s.Population)
	}
	if c.Env().State.Population != 2 {
		t.Errorf("state population = %d", c.Env().State.Population)
	}
}

func TestOutbreakFiresOnce(t *testing.T) {
	c, sounds, tl := newController(t)
	in := DefaultInput(c.Env().Cfg)

	for _, i := range traits.All() {
		germs(c)[0].Grant(i)
	}

	s := c.Tick(in, 0.5)
	if !s.Outbreak {
		t.Fatal("outbreak not detected")
	}
	if s.Resistance != 100 {
		t.Errorf("Resistance = %v, want 100", s.Resistance)
	}
	if c.Dish().Current(entities.TrackDish) != "cracked" {
		t.Errorf("dish track = %q", c.Dish().Current(entities.TrackDish))
	}

	for i := 0; i < 20; i++ {
		c.Tick(in, 0.5)
	}
	if n := sounds.count("crack"); n != 1 {
		t.Errorf("crack played %d times, want 1", n)
	}
	if len(tl.states) != 1 || tl.states[0] != StateGameOver {
		t.Fatalf("transitions = %v, want one game-over", tl.states)
	}
	if tl.scores[0] != 0.5 {
		t.Errorf("score = %v, want 0.5", tl.scores[0])
	}
}

func TestNewSampleOnlyWhenEmpty(t *testing.T) {
	c, sounds, _ := newController(t)
	in := DefaultInput(c.Env().Cfg)

	if c.NewSample() {
		t.Fatal("new sample allowed with a live germ")
	}

	treat := in
	treat.Treatments = []traits.Immunity{traits.Penicillin}
	s := c.Tick(treat, 0.1)
	if s.Population != 0 || !s.CanSample {
		t.Fatalf("Population = %d, CanSample = %v after treatment", s.Population, s.CanSample)
	}
	if sounds.count("drip") != 1 || c.Dish().Current(entities.TrackEffect) != "medicine" {
		t.Errorf("treatment cues missing: %v", *sounds)
	}

	sample := in
	sample.NewSample = true
	s = c.Tick(sample, 0.1)
	if s.Population != 1 {
		t.Errorf("Population = %d after new sample, want 1", s.Population)
	}
	if sounds.count("confirm") != 1 {
		t.Errorf("confirm played %d times", sounds.count("confirm"))
	}
}

func TestResistantGermsMostlySurvive(t *testing.T) {
	c, _, _ := newController(t)
	germs(c)[0].Grant(traits.Bleach)

	if killed := c.ApplyTreatment(traits.Bleach); killed != 0 {
		t.Errorf("killed = %d; a 0.5 draw should not beat the resistant chance", killed)
	}
	if killed := c.ApplyTreatment(traits.Heat); killed != 0 {
		t.Errorf("heat is not a treatment, killed = %d", killed)
	}
}

func TestFoodDecayAndAgar(t *testing.T) {
	c, sounds, _ := newController(t)
	in := DefaultInput(c.Env().Cfg)

	c.Env().State.Food = 0.001
	s := c.Tick(in, 1)
	if s.Food != 0 {
		t.Errorf("Food = %v, want clamped to 0", s.Food)
	}

	in.AddAgar = true
	s = c.Tick(in, 1)
	want := float32(1 - c.Env().Cfg.Food.DecayRate)
	if s.Food < want-1e-5 || s.Food > want+1e-5 {
		t.Errorf("Food = %v, want %v", s.Food, want)
	}
	if sounds.count("squirt") != 1 {
		t.Error("agar sound missing")
	}
}

func TestSliderCues(t *testing.T) {
	steps := []struct {
		temperature float32
		radiation   float32
		sound       string // expected new sound, "" for none
		track       string // temperature track after the step
	}{
		{50, 0, "", "normal"},
		{80, 0, "flame", "hot"},
		{95, 0, "", "hot"},
		{70, 0, "", "hot"},
		{50, 0, "", "normal"},
		{20, 0, "fan", "cold"},
		{10, 0, "", "cold"},
		{30, 0, "", "cold"},
		{45, 80, "whir", "normal"},
		{45, 70, "", "normal"},
		{45, 50, "", "normal"},
		{45, 90, "whir", "normal"},
	}

	c, sounds, _ := newController(t)
	for i, st := range steps {
		before := len(*sounds)
		c.sliders.Apply(c, st.temperature, st.radiation)
		var got string
		if len(*sounds) > before {
			got = (*sounds)[len(*sounds)-1]
		}
		if got != st.sound {
			t.Errorf("step %d (%v, %v): sound %q, want %q", i, st.temperature, st.radiation, got, st.sound)
		}
		if tr := c.Dish().Current(entities.TrackTemperature); tr != st.track {
			t.Errorf("step %d: track %q, want %q", i, tr, st.track)
		}
	}
}

func TestHeatStressSparesImmune(t *testing.T) {
	c, _, _ := newController(t)
	c.Env().Cfg.Environment.StressKillChance = 1
	germs(c)[0].Grant(traits.Heat)

	in := DefaultInput(c.Env().Cfg)
	in.Temperature = 90
	if s := c.Tick(in, 0.1); s.Population != 1 {
		t.Errorf("immune germ culled by heat, population %d", s.Population)
	}
	in.Temperature = 10
	if s := c.Tick(in, 0.1); s.Population != 0 {
		t.Errorf("germ without cold immunity survived, population %d", s.Population)
	}
}

func TestAutopilot(t *testing.T) {
	cfg := config.Defaults()
	a := NewAutopilot(cfg)

	if in := a.Next(Stats{CanSample: true}, 0.1); !in.NewSample {
		t.Error("autopilot should reseed an empty dish")
	}
	if in := a.Next(Stats{Population: 5, Food: 0.1}, 0.1); !in.AddAgar {
		t.Error("autopilot should add agar when food is low")
	}

	s := Stats{Population: 10, Food: 1}
	for _, tr := range traits.Treatments {
		s.Census.Holders[tr] = 5
	}
	s.Census.Holders[traits.Peroxide] = 1
	in := a.Next(s, float32(cfg.Autopilot.TreatmentInterval))
	if len(in.Treatments) != 1 || in.Treatments[0] != traits.Peroxide {
		t.Errorf("treatments = %v, want [peroxide]", in.Treatments)
	}
	if in := a.Next(s, 0.1); len(in.Treatments) != 0 {
		t.Error("autopilot dosed again before the interval")
	}
}

func TestCaptureRestore(t *testing.T) {
	c, _, _ := newController(t)
	in := DefaultInput(c.Env().Cfg)
	in.Temperature = 90
	germs(c)[0].Grant(traits.Alcohol)
	c.Tick(in, 6.5)

	snap := c.Capture()
	if len(snap.Germs) != 2 {
		t.Fatalf("captured %d germs, want 2", len(snap.Germs))
	}

	other, sounds, _ := newController(t)
	if err := other.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	s := other.Stats()
	if s.Population != 2 || s.Elapsed != snap.Elapsed || s.Temperature != 90 {
		t.Errorf("restored stats = %+v", s)
	}
	for _, g := range germs(other) {
		if !g.Immunities().Has(traits.Alcohol) {
			t.Error("restored germ lost its immunity")
		}
	}
	if sounds.count("flame") != 1 {
		t.Error("restoring a hot dish should replay the hot cue")
	}

	snap.Germs[0].Immunities = []string{"garlic"}
	if err := other.Restore(snap); err == nil {
		t.Error("expected error for unknown immunity")
	}
}

func TestCounts(t *testing.T) {
	c, _, _ := newController(t)
	in := DefaultInput(c.Env().Cfg)
	in.Treatments = []traits.Immunity{traits.Bleach}
	c.Tick(in, 0.1)
	in.Treatments = nil
	in.NewSample = true
	c.Tick(in, 0.1)

	treatments, samples, peak := c.Counts()
	if treatments != 1 || samples != 1 || peak != 1 {
		t.Errorf("Counts = %d, %d, %d", treatments, samples, peak)
	}
}
