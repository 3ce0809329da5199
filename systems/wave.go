package systems

import "github.com/lixenwraith/vi-invaders/core"

// Wave is the generated formation for one wave number
type Wave struct {
	Enemies []core.Enemy
	Speed   float64
}

// WaveRows returns the formation row count for a wave
// One row is added every third wave until RowCap
func WaveRows(t core.Tuning, wave int) int {
	rows := t.BaseRows + wave/3
	if rows > t.RowCap {
		rows = t.RowCap
	}
	return rows
}

// WaveSpeed returns the formation speed for a wave; there is no cap
func WaveSpeed(t core.Tuning, wave int) float64 {
	return t.BaseSpeed + float64(wave)*t.SpeedIncrement
}

// GenerateWave builds the enemy grid for a wave number
// Pure function of (tuning, wave); waves below 1 are treated as 1
func GenerateWave(t core.Tuning, wave int) Wave {
	if wave < 1 {
		wave = 1
	}

	rows := WaveRows(t, wave)
	enemies := make([]core.Enemy, 0, rows*t.Columns)
	for r := 0; r < rows; r++ {
		for c := 0; c < t.Columns; c++ {
			enemies = append(enemies, core.Enemy{
				X:     t.GridLeft + float64(c)*t.SpacingX,
				Y:     t.GridTop + float64(r)*t.SpacingY,
				Alive: true,
				Type:  r % 4,
			})
		}
	}

	return Wave{
		Enemies: enemies,
		Speed:   WaveSpeed(t, wave),
	}
}
