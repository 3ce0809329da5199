package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/lixenwraith/vi-invaders/constants"
	"github.com/lixenwraith/vi-invaders/core"
)

var (
	colorBackground = color.RGBA{R: 26, G: 27, B: 38, A: 255}
	colorPlayer     = color.RGBA{R: 80, G: 250, B: 123, A: 255}
	colorBulletUp   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorBulletDown = color.RGBA{R: 255, G: 85, B: 85, A: 255}
	colorText       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colorLabel      = color.RGBA{R: 150, G: 150, B: 170, A: 255}
	colorHighlight  = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	colorTitle      = color.RGBA{R: 100, G: 150, B: 255, A: 255}

	enemyColors = [4]color.RGBA{
		{R: 255, G: 85, B: 255, A: 255},
		{R: 139, G: 233, B: 253, A: 255},
		{R: 241, G: 250, B: 140, A: 255},
		{R: 255, G: 184, B: 108, A: 255},
	}
)

// face is the fixed UI font
var face font.Face = basicfont.Face7x13

// Rect is an axis-aligned box in field pixels, top-left anchored
type Rect struct {
	X, Y, W, H float32
}

// centeredRect converts an entity center and size into its draw box
func centeredRect(x, y, w, h float64) Rect {
	return Rect{X: float32(x - w/2), Y: float32(y - h/2), W: float32(w), H: float32(h)}
}

func fillRect(dst *ebiten.Image, r Rect, c color.Color) {
	vector.DrawFilledRect(dst, r.X, r.Y, r.W, r.H, c, false)
}

// drawField paints the player, enemies and bullets in field coordinates
func drawField(dst *ebiten.Image, snap core.Snapshot, t core.Tuning) {
	for _, e := range snap.Enemies {
		fillRect(dst, centeredRect(e.X, e.Y, t.EnemyWidth, t.EnemyHeight), enemyColors[((e.Type%4)+4)%4])
	}
	for _, b := range snap.Bullets {
		c := colorBulletUp
		if b.Owner == core.OwnerEnemy {
			c = colorBulletDown
		}
		fillRect(dst, centeredRect(b.X, b.Y, t.BulletWidth, t.BulletHeight), c)
	}
	fillRect(dst, centeredRect(snap.Player.X, snap.Player.Y, t.PlayerWidth, t.PlayerHeight), colorPlayer)
}

func drawHUD(dst *ebiten.Image, snap core.Snapshot, muted bool) {
	text.Draw(dst, fmt.Sprintf("SCORE %d", snap.Score), face, 10, 18, colorText)
	text.Draw(dst, fmt.Sprintf("WAVE %d", snap.Wave), face, 160, 18, colorText)
	if muted {
		text.Draw(dst, "MUTED", face, int(constants.FieldWidth)-60, 18, colorHighlight)
	}
}

// drawCentered draws s horizontally centered at baseline y
func drawCentered(dst *ebiten.Image, s string, y int, c color.Color) {
	w := font.MeasureString(face, s).Ceil()
	text.Draw(dst, s, face, (int(constants.FieldWidth)-w)/2, y, c)
}

func drawLeaderboard(dst *ebiten.Image, top int, entries []core.LeaderboardEntry, highlight int) {
	drawCentered(dst, "TOP SCORES", top, colorTitle)
	if len(entries) == 0 {
		drawCentered(dst, "no scores yet", top+24, colorLabel)
		return
	}
	for i, e := range entries {
		c := colorText
		if i == highlight {
			c = colorHighlight
		}
		line := fmt.Sprintf("%2d. %-3s %8d  %s", i+1, e.Name, e.Score, e.Date.Format("2006-01-02"))
		drawCentered(dst, line, top+24+i*18, c)
	}
}
