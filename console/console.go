// Package console runs the breeding program in a terminal. The dish is
// summarized as text instead of drawn.
package console

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"github.com/raeleus/superbug/game"
	"github.com/raeleus/superbug/scenario"
	"github.com/raeleus/superbug/traits"
	"github.com/raeleus/superbug/ui"
)

const (
	sliderStep   = 5
	refreshEvery = 6 // ticks between redraws
	barWidth     = 20
)

type keyBinding struct {
	key     interface{}
	name    string
	descr   string
	handler func(v *gocui.View) error
}

// command changes the input of the coming tick. Commands run on the
// simulation goroutine.
type command func(c *Console, in *scenario.Input)

// view holds what the last refresh showed.
type view struct {
	state   string
	stats   scenario.Stats
	report  ui.ReportData
	best    float64
	hasBest bool
}

// Console drives a game from the keyboard and renders it with gocui.
type Console struct {
	game *game.Game
	gui  *gocui.Gui
	keys []keyBinding

	cmds chan command
	quit chan struct{}
	wg   sync.WaitGroup

	dt    time.Duration
	input scenario.Input

	mu   sync.Mutex
	last view
}

// New creates a console around a headless game.
func New(g *game.Game, dt float32) (*Console, error) {
	gui, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("creating terminal ui: %w", err)
	}

	c := &Console{
		game: g,
		gui:  gui,
		cmds: make(chan command, 16),
		quit: make(chan struct{}),
		dt:   time.Duration(float64(dt) * float64(time.Second)),
	}

	c.keys = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", c.cmdQuit},
		{'a', "A", "Agar", c.send(func(_ *Console, in *scenario.Input) { in.AddAgar = true })},
		{'n', "N", "New sample", c.send(func(_ *Console, in *scenario.Input) { in.NewSample = true })},
		{'r', "R", "Restart", c.send(func(c *Console, _ *scenario.Input) { c.restart() })},
		{gocui.KeyArrowLeft, "←→", "Temperature", c.send(slide(sliderTemp, -sliderStep))},
		{gocui.KeyArrowRight, "", "", c.send(slide(sliderTemp, sliderStep))},
		{gocui.KeyArrowDown, "↑↓", "Radiation", c.send(slide(sliderRad, -sliderStep))},
		{gocui.KeyArrowUp, "", "", c.send(slide(sliderRad, sliderStep))},
	}
	for i, t := range traits.Treatments {
		key := rune('1' + i)
		name := ""
		descr := ""
		if i == 0 {
			name = fmt.Sprintf("1-%d", len(traits.Treatments))
			descr = "Treatments"
		}
		c.keys = append(c.keys, keyBinding{key, name, descr, c.send(treat(t))})
	}

	gui.SetManagerFunc(c.layout)
	for _, kb := range c.keys {
		h := kb.handler
		if err := gui.SetKeybinding("", kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			gui.Close()
			return nil, fmt.Errorf("binding %s: %w", kb.name, err)
		}
	}
	return c, nil
}

// Run starts the session and blocks until the player quits.
func (c *Console) Run() error {
	defer c.gui.Close()

	c.game.LoadState(scenario.StateGame, 0)
	c.wg.Add(1)
	go c.simulate()

	err := c.gui.MainLoop()
	close(c.quit)
	c.wg.Wait()
	if err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

// simulate owns the game: it applies queued commands and advances one
// tick per dt.
func (c *Console) simulate() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.dt)
	defer ticker.Stop()

	for n := 0; ; n++ {
		select {
		case <-c.quit:
			return
		case cmd := <-c.cmds:
			cmd(c, &c.input)
			n--
			continue
		case <-ticker.C:
		}

		before := c.game.State()
		c.game.Settle()
		if before != scenario.StateGame && c.game.State() == scenario.StateGame {
			// Sliders start where the controller left them
			last := c.game.Controller().LastInput()
			c.input.Temperature = last.Temperature
			c.input.Radiation = last.Radiation
		}

		in := c.input
		c.input.NewSample = false
		c.input.AddAgar = false
		c.input.Treatments = nil
		c.game.Step(in)

		if n%refreshEvery == 0 {
			c.capture()
			c.Refresh()
		}
	}
}

// restart leaves the report for a new session.
func (c *Console) restart() {
	if c.game.State() == scenario.StateGameOver {
		c.game.LoadState(scenario.StateGame, 0)
	}
}

func (c *Console) capture() {
	best, ok := c.game.Records().Best()
	v := view{
		state:   c.game.State(),
		stats:   c.game.Stats(),
		report:  c.game.Report(),
		best:    best,
		hasBest: ok,
	}
	c.mu.Lock()
	c.last = v
	c.mu.Unlock()
}

func (c *Console) snapshot() view {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Refresh redraws the views from the last captured tick.
func (c *Console) Refresh() {
	v := c.snapshot()
	c.gui.Update(func(g *gocui.Gui) error {
		if dv, err := g.View("dish"); err == nil {
			dv.Clear()
			if v.state == scenario.StateGameOver {
				renderReport(dv, v)
			} else {
				renderDish(dv, v)
			}
		}
		if iv, err := g.View("immunities"); err == nil {
			iv.Clear()
			renderImmunities(iv, v.stats)
		}
		return nil
	})
}

func renderDish(w *gocui.View, v view) {
	s := v.stats
	resistance := aurora.Green(fmt.Sprintf("%d%%", int(s.Resistance)))
	if s.Resistance >= 75 {
		resistance = aurora.Red(fmt.Sprintf("%d%%", int(s.Resistance)))
	}
	fmt.Fprintln(w, prop("Time", "%s", ui.FormatElapsed(s.Elapsed)))
	fmt.Fprintln(w, prop("Population", "%d", s.Population))
	fmt.Fprintln(w, prop("Resistance", "%s", resistance))
	fmt.Fprintln(w, prop("Agar", "%s", bar(float64(s.Food), barWidth)))
	fmt.Fprintln(w, prop("Temperature", "%s %3.0f", bar(float64(s.Temperature)/100, barWidth), s.Temperature))
	fmt.Fprintln(w, prop("Radiation", "%s %3.0f", bar(float64(s.Radiation)/100, barWidth), s.Radiation))
	if s.CanSample {
		fmt.Fprintln(w, aurora.Yellow(" Dish is empty, press N for a new sample"))
	}
	if s.Outbreak {
		fmt.Fprintln(w, aurora.Red(" OUTBREAK!").Bold())
	}
}

func renderReport(w *gocui.View, v view) {
	r := v.report
	fmt.Fprintln(w, aurora.Red(" OUTBREAK").Bold())
	fmt.Fprintf(w, " Your superbug escaped after %s\n", ui.FormatElapsed(r.Time))
	if r.NewBest {
		fmt.Fprintln(w, aurora.Yellow(" New best time!"))
	} else if v.hasBest {
		fmt.Fprintln(w, prop("Best", "%s", ui.FormatElapsed(v.best)))
	}
	fmt.Fprintln(w, prop("Samples", "%d", r.Samples))
	fmt.Fprintln(w, prop("Treatments", "%d", r.Doses))
	fmt.Fprintln(w)
	fmt.Fprintln(w, " Press R to breed another")
}

func renderImmunities(w *gocui.View, s scenario.Stats) {
	for _, im := range traits.All() {
		n := s.Census.Holders[im]
		frac := 0.0
		if s.Population > 0 {
			frac = float64(n) / float64(s.Population)
		}
		fmt.Fprintf(w, " %-12s %s %d\n", im.Label(), bar(frac, barWidth/2), n)
	}
}

func prop(name, format string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+format, values...)
}

func bar(frac float64, width int) string {
	frac = max(0, min(frac, 1))
	full := int(frac*float64(width) + 0.5)
	return aurora.Cyan(strings.Repeat("█", full)).String() + strings.Repeat("░", width-full)
}

func (c *Console) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	left := maxX / 2

	if v, err := g.SetView("header", -1, -1, maxX, 1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
		title := "Superbug Breeding Program"
		fmt.Fprint(v, strings.Repeat(" ", max(0, (maxX-len(title))/2))+title)
	}

	if v, err := g.SetView("dish", 0, 2, left, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Dish"
		c.Refresh()
	}

	if v, err := g.SetView("immunities", left+1, 2, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Immunities"
	}

	if v, err := g.SetView("help", -1, maxY-2, maxX, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		var b bytes.Buffer
		b.WriteString("KEYS: ")
		first := true
		for _, k := range c.keys {
			if k.name == "" {
				continue
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		fmt.Fprint(v, b.String())
	}
	return nil
}

func (c *Console) send(cmd command) func(*gocui.View) error {
	return func(*gocui.View) error {
		select {
		case c.cmds <- cmd:
		case <-c.quit:
		}
		return nil
	}
}

func (c *Console) cmdQuit(*gocui.View) error {
	return gocui.ErrQuit
}

type slider int

const (
	sliderTemp slider = iota
	sliderRad
)

// slide moves a slider by delta, clamped to 0..100.
func slide(which slider, delta float32) command {
	return func(_ *Console, in *scenario.Input) {
		v := &in.Temperature
		if which == sliderRad {
			v = &in.Radiation
		}
		*v = max(0, min(*v+delta, 100))
	}
}

func treat(t traits.Immunity) command {
	return func(_ *Console, in *scenario.Input) {
		in.Treatments = append(in.Treatments, t)
	}
}

// Summary describes the finished run for the terminal after the ui closes.
func Summary(g *game.Game) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", aurora.Bold("Sessions:"), g.Sessions())
	if best, ok := g.Records().Best(); ok {
		fmt.Fprintf(&b, "%s %s\n", aurora.Bold("Best time:"), aurora.Yellow(ui.FormatElapsed(best)))
	} else {
		fmt.Fprintf(&b, "%s %s\n", aurora.Bold("Best time:"), aurora.Faint("none yet"))
	}
	return b.String()
}
