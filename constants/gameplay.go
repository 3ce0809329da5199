package constants

import "time"

// Player
const (
	PlayerWidth  = 40.0
	PlayerHeight = 20.0

	// PlayerY is the fixed row of the player ship
	PlayerY = FieldHeight - 50.0

	// PlayerSpeed is horizontal movement per tick
	PlayerSpeed = 5.0

	// MinFireInterval is the minimum spacing between player shots
	MinFireInterval = 250 * time.Millisecond
)

// Bullets
const (
	BulletWidth  = 4.0
	BulletHeight = 10.0

	// BulletSpeed is player bullet travel per tick
	BulletSpeed = 7.0

	// EnemyBulletSpeedFactor scales BulletSpeed for enemy bullets
	EnemyBulletSpeedFactor = 0.5

	// EnemyFireInterval is the constant enemy fire period, independent of wave
	EnemyFireInterval = 1000 * time.Millisecond
)

// Enemy Formation
const (
	EnemyWidth  = 40.0
	EnemyHeight = 30.0

	// BaseRows is the row count of wave 0; one row is added every third wave
	BaseRows = 3

	// RowCap is the hard limit on formation rows
	RowCap = 6

	// Columns per formation row
	Columns = 8

	// GridLeft and GridTop locate the centre of the first enemy
	GridLeft = 100.0
	GridTop  = 50.0

	// SpacingX and SpacingY are centre-to-centre grid distances
	SpacingX = 60.0
	SpacingY = 50.0

	// BaseSpeed and SpeedIncrement define formation speed = BaseSpeed + wave*SpeedIncrement
	BaseSpeed      = 1.0
	SpeedIncrement = 0.5

	// DropDistance is the vertical step taken on each edge bounce
	DropDistance = 20.0

	// InvasionMargin is the distance above the player row that ends the game
	InvasionMargin = 40.0
)

// Scoring
const (
	// BaseKillScore is multiplied by the current wave number per kill
	BaseKillScore = 10
)
