package core

import (
	"fmt"
	"time"

	"github.com/lixenwraith/vi-invaders/constants"
)

// Tuning holds every fixed simulation constant
// Values are read-only during a session; reloads apply on the next session reset
type Tuning struct {
	FieldWidth  float64 `yaml:"field_width"`
	FieldHeight float64 `yaml:"field_height"`

	PlayerWidth     float64       `yaml:"player_width"`
	PlayerHeight    float64       `yaml:"player_height"`
	PlayerY         float64       `yaml:"player_y"`
	PlayerSpeed     float64       `yaml:"player_speed"`
	MinFireInterval time.Duration `yaml:"min_fire_interval"`

	BulletWidth            float64       `yaml:"bullet_width"`
	BulletHeight           float64       `yaml:"bullet_height"`
	BulletSpeed            float64       `yaml:"bullet_speed"`
	EnemyBulletSpeedFactor float64       `yaml:"enemy_bullet_speed_factor"`
	EnemyFireInterval      time.Duration `yaml:"enemy_fire_interval"`

	EnemyWidth     float64 `yaml:"enemy_width"`
	EnemyHeight    float64 `yaml:"enemy_height"`
	BaseRows       int     `yaml:"base_rows"`
	RowCap         int     `yaml:"row_cap"`
	Columns        int     `yaml:"columns"`
	GridLeft       float64 `yaml:"grid_left"`
	GridTop        float64 `yaml:"grid_top"`
	SpacingX       float64 `yaml:"spacing_x"`
	SpacingY       float64 `yaml:"spacing_y"`
	BaseSpeed      float64 `yaml:"base_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"`
	DropDistance   float64 `yaml:"drop_distance"`
	InvasionMargin float64 `yaml:"invasion_margin"`

	BaseKillScore int `yaml:"base_kill_score"`
}

// DefaultTuning returns the stock arcade values
func DefaultTuning() Tuning {
	return Tuning{
		FieldWidth:  constants.FieldWidth,
		FieldHeight: constants.FieldHeight,

		PlayerWidth:     constants.PlayerWidth,
		PlayerHeight:    constants.PlayerHeight,
		PlayerY:         constants.PlayerY,
		PlayerSpeed:     constants.PlayerSpeed,
		MinFireInterval: constants.MinFireInterval,

		BulletWidth:            constants.BulletWidth,
		BulletHeight:           constants.BulletHeight,
		BulletSpeed:            constants.BulletSpeed,
		EnemyBulletSpeedFactor: constants.EnemyBulletSpeedFactor,
		EnemyFireInterval:      constants.EnemyFireInterval,

		EnemyWidth:     constants.EnemyWidth,
		EnemyHeight:    constants.EnemyHeight,
		BaseRows:       constants.BaseRows,
		RowCap:         constants.RowCap,
		Columns:        constants.Columns,
		GridLeft:       constants.GridLeft,
		GridTop:        constants.GridTop,
		SpacingX:       constants.SpacingX,
		SpacingY:       constants.SpacingY,
		BaseSpeed:      constants.BaseSpeed,
		SpeedIncrement: constants.SpeedIncrement,
		DropDistance:   constants.DropDistance,
		InvasionMargin: constants.InvasionMargin,

		BaseKillScore: constants.BaseKillScore,
	}
}

// Validate rejects values that would make the simulation degenerate
func (t Tuning) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"field_width", t.FieldWidth},
		{"field_height", t.FieldHeight},
		{"player_width", t.PlayerWidth},
		{"player_height", t.PlayerHeight},
		{"player_speed", t.PlayerSpeed},
		{"bullet_width", t.BulletWidth},
		{"bullet_height", t.BulletHeight},
		{"bullet_speed", t.BulletSpeed},
		{"enemy_bullet_speed_factor", t.EnemyBulletSpeedFactor},
		{"enemy_width", t.EnemyWidth},
		{"enemy_height", t.EnemyHeight},
		{"spacing_x", t.SpacingX},
		{"spacing_y", t.SpacingY},
		{"base_speed", t.BaseSpeed},
		{"drop_distance", t.DropDistance},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("tuning %s must be positive, got %v", p.name, p.v)
		}
	}

	if t.BaseRows < 1 || t.RowCap < t.BaseRows {
		return fmt.Errorf("tuning rows invalid: base_rows=%d row_cap=%d", t.BaseRows, t.RowCap)
	}
	if t.Columns < 1 {
		return fmt.Errorf("tuning columns must be positive, got %d", t.Columns)
	}
	if t.SpeedIncrement <= 0 {
		return fmt.Errorf("tuning speed_increment must be positive, got %v", t.SpeedIncrement)
	}
	if t.MinFireInterval <= 0 || t.EnemyFireInterval <= 0 {
		return fmt.Errorf("tuning fire intervals must be positive")
	}
	if t.PlayerY <= 0 || t.PlayerY >= t.FieldHeight {
		return fmt.Errorf("tuning player_y %v outside field height %v", t.PlayerY, t.FieldHeight)
	}
	if t.BaseKillScore < 0 {
		return fmt.Errorf("tuning base_kill_score must not be negative")
	}
	return nil
}
