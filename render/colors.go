package render

import "github.com/gdamore/tcell/v2"

// Palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbPlayer     = tcell.NewRGBColor(80, 250, 123)  // Green
	RgbBulletUp   = tcell.NewRGBColor(255, 255, 255) // White
	RgbBulletDown = tcell.NewRGBColor(255, 85, 85)   // Red
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255)
	RgbStatusText = tcell.NewRGBColor(0, 0, 0)
	RgbHUDLabel   = tcell.NewRGBColor(180, 180, 180)
	RgbHUDValue   = tcell.NewRGBColor(255, 215, 0) // Gold
	RgbTitle      = tcell.NewRGBColor(100, 150, 255)
	RgbHighlight  = tcell.NewRGBColor(255, 165, 0)
	RgbGround     = tcell.NewRGBColor(60, 60, 80)

	RgbPhaseMenuBg      = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbPhasePlayingBg   = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbPhaseEnterNameBg = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbPhaseGameOverBg  = tcell.NewRGBColor(255, 120, 120) // Light red
)

// enemyColors index by enemy type (row mod 4)
var enemyColors = [4]tcell.Color{
	tcell.NewRGBColor(255, 85, 255),  // Magenta
	tcell.NewRGBColor(139, 233, 253), // Cyan
	tcell.NewRGBColor(241, 250, 140), // Yellow
	tcell.NewRGBColor(255, 184, 108), // Orange
}

// enemyGlyphs index by enemy type; drawn centered and clipped to the sprite width
var enemyGlyphs = [4]string{"/oo\\", "{@@}", "<##>", "]MM["}

// EnemyColor returns the color for an enemy type
func EnemyColor(enemyType int) tcell.Color {
	return enemyColors[((enemyType%4)+4)%4]
}

// EnemyGlyph returns the sprite text for an enemy type
func EnemyGlyph(enemyType int) string {
	return enemyGlyphs[((enemyType%4)+4)%4]
}
