package systems

import (
	"time"

	"github.com/lixenwraith/vi-invaders/core"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// scriptedPicker returns queued indices, then falls back to zero
type scriptedPicker struct {
	picks []int
	calls []int
}

func (p *scriptedPicker) Intn(n int) int {
	p.calls = append(p.calls, n)
	if len(p.picks) == 0 {
		return 0
	}
	k := p.picks[0]
	p.picks = p.picks[1:]
	return k % n
}

// newTestSim returns a simulation and a fresh wave-1 session started at testEpoch
func newTestSim(picks ...int) (*Simulation, *core.Session, *scriptedPicker) {
	picker := &scriptedPicker{picks: picks}
	sim := NewSimulation(core.DefaultTuning(), picker)
	return sim, sim.Reset(testEpoch), picker
}

// killAllBut marks every enemy dead except the one at keep
func killAllBut(s *core.Session, keep int) {
	for i := range s.Enemies {
		s.Enemies[i].Alive = i == keep
	}
}

func countEvents(res core.StepResult, typ core.EventType) int {
	n := 0
	for _, e := range res.Events {
		if e.Type == typ {
			n++
		}
	}
	return n
}
