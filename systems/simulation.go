package systems

import (
	"time"

	"github.com/lixenwraith/vi-invaders/core"
)

// Picker selects an index uniformly from [0, n)
// The only nondeterminism in the simulation flows through it
type Picker interface {
	Intn(n int) int
}

// Simulation advances a session one tick at a time
// It holds no per-session state; the session is passed to every call
type Simulation struct {
	tuning core.Tuning
	picker Picker
}

// NewSimulation creates a simulation over fixed tuning values
func NewSimulation(t core.Tuning, picker Picker) *Simulation {
	return &Simulation{tuning: t, picker: picker}
}

// Tuning returns the values the simulation runs with
func (sim *Simulation) Tuning() core.Tuning {
	return sim.tuning
}

// Reset prepares a fresh session with wave 1 generated
func (sim *Simulation) Reset(now time.Time) *core.Session {
	s := core.NewSession(sim.tuning, now)
	w := GenerateWave(sim.tuning, s.Wave)
	s.Enemies = w.Enemies
	s.Speed = w.Speed
	return s
}

// Step advances the session by one tick, mutating it in place
// Sub-rules run in a fixed order; a detected loss returns immediately
func (sim *Simulation) Step(s *core.Session, in core.Input, now time.Time) core.StepResult {
	var res core.StepResult
	s.Frame++

	sim.movePlayer(s, in)
	sim.firePlayer(s, in, now, &res)
	sim.fireEnemy(s, now, &res)
	sim.advanceBullets(s)

	if sim.advanceFormation(s) {
		if sim.dropFormation(s) {
			res.Outcome = core.OutcomeLost
			res.Reason = core.LossInvasion
			res.Events = append(res.Events, core.Event{Type: core.EventFormationLanded, X: s.Player.X, Y: s.Player.Y})
			return res
		}
	}

	sim.resolvePlayerHits(s, &res)

	if sim.resolveEnemyHits(s, &res) {
		res.Outcome = core.OutcomeLost
		res.Reason = core.LossHit
		return res
	}

	sim.checkWaveClear(s, &res)
	return res
}
