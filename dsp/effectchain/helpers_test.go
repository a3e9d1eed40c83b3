package effectchain

import "math"

// panicUnit panics on every call.
type panicUnit struct{ resets int }

func (p *panicUnit) Name() string { return "Panic" }

func (p *panicUnit) ProcessInPlace(_ []float64, _ float64) { panic("boom") }

func (p *panicUnit) Reset() { p.resets++ }

// nanUnit writes NaN into the first sample.
type nanUnit struct{ resets int }

func (n *nanUnit) Name() string { return "NaN" }

func (n *nanUnit) ProcessInPlace(buf []float64, _ float64) { buf[0] = math.NaN() }

func (n *nanUnit) Reset() { n.resets++ }

// traceUnit appends its name to a shared log.
type traceUnit struct {
	name string
	log  *[]string
}

func (t *traceUnit) Name() string { return t.name }

func (t *traceUnit) ProcessInPlace(_ []float64, _ float64) { *t.log = append(*t.log, t.name) }

func (t *traceUnit) Reset() {}

func always(Gains) float64 { return 1 }
