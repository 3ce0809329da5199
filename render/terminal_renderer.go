package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-invaders/constants"
	"github.com/lixenwraith/vi-invaders/core"
	"github.com/lixenwraith/vi-invaders/engine"
)

// View is everything one frame needs, copied out of the game by the host
type View struct {
	Phase       engine.Phase
	Snapshot    core.Snapshot
	Tuning      core.Tuning
	FinalScore  int
	LossReason  core.LossReason
	Name        string // Name typed so far in EnterName
	Leaderboard []core.LeaderboardEntry
	Muted       bool

	NewHighScore bool // FinalScore will enter the leaderboard
}

// TerminalRenderer draws the game onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
	proj   Projection
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen, t core.Tuning) *TerminalRenderer {
	r := &TerminalRenderer{screen: screen}
	w, h := screen.Size()
	r.Resize(w, h, t)
	return r
}

// Resize recomputes the projection after a terminal resize
func (r *TerminalRenderer) Resize(width, height int, t core.Tuning) {
	r.width, r.height = width, height
	r.proj = NewProjection(width, height, t.FieldWidth, t.FieldHeight)
}

// Projection returns the current field projection
func (r *TerminalRenderer) Projection() Projection {
	return r.proj
}

// RenderFrame renders the entire frame and shows it
func (r *TerminalRenderer) RenderFrame(v View) {
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', defaultStyle)

	r.drawHUD(v, defaultStyle)

	switch v.Phase {
	case engine.PhaseMenu:
		r.drawMenu(v, defaultStyle)
	case engine.PhasePlaying:
		r.drawField(v, defaultStyle)
	case engine.PhaseEnterName:
		r.drawField(v, defaultStyle)
		r.drawEnterName(v, defaultStyle)
	case engine.PhaseGameOver:
		r.drawGameOver(v, defaultStyle)
	}

	r.drawStatusBar(v, defaultStyle)
	r.screen.Show()
}

func (r *TerminalRenderer) drawHUD(v View, style tcell.Style) {
	label := style.Foreground(RgbHUDLabel)
	value := style.Foreground(RgbHUDValue).Bold(true)

	x := r.drawText(1, 0, "SCORE ", label)
	x = r.drawText(x, 0, fmt.Sprintf("%-7d", v.Snapshot.Score), value)
	x = r.drawText(x+2, 0, "WAVE ", label)
	r.drawText(x, 0, fmt.Sprintf("%d", v.Snapshot.Wave), value)

	if len(v.Leaderboard) > 0 {
		hi := fmt.Sprintf("HI %d", v.Leaderboard[0].Score)
		r.drawText(r.width-len(hi)-1, 0, hi, label)
	}
}

func (r *TerminalRenderer) drawField(v View, style tcell.Style) {
	snap := v.Snapshot
	t := v.Tuning

	// Ground line under the player
	_, groundRow := r.proj.Cell(0, t.PlayerY+t.PlayerHeight/2)
	if groundRow+1 < r.height-constants.StatusRows {
		for x := 0; x < r.width; x++ {
			r.screen.SetContent(x, groundRow+1, '─', nil, style.Foreground(RgbGround))
		}
	}

	for _, e := range snap.Enemies {
		r.drawSprite(e.X, e.Y, t.EnemyWidth, EnemyGlyph(e.Type), style.Foreground(EnemyColor(e.Type)))
	}

	for _, b := range snap.Bullets {
		col, row := r.proj.Cell(b.X, b.Y)
		if b.Owner == core.OwnerPlayer {
			r.screen.SetContent(col, row, '|', nil, style.Foreground(RgbBulletUp))
		} else {
			r.screen.SetContent(col, row, '!', nil, style.Foreground(RgbBulletDown))
		}
	}

	r.drawSprite(snap.Player.X, snap.Player.Y, t.PlayerWidth, "/=^=\\", style.Foreground(RgbPlayer).Bold(true))
}

// drawSprite centers glyph on (x, y), clipped or padded to the projected width
func (r *TerminalRenderer) drawSprite(x, y, w float64, glyph string, style tcell.Style) {
	span := r.proj.Span(w)
	col, row := r.proj.Cell(x, y)
	runes := []rune(glyph)

	start := col - span/2
	for i := 0; i < span; i++ {
		ch := runes[len(runes)/2]
		if span <= len(runes) {
			ch = runes[(len(runes)-span)/2+i]
		} else if i < len(runes) {
			ch = runes[i]
		}
		if cx := start + i; cx >= 0 && cx < r.width {
			r.screen.SetContent(cx, row, ch, nil, style)
		}
	}
}

func (r *TerminalRenderer) drawMenu(v View, style tcell.Style) {
	top := constants.HUDRows + 2
	r.drawCentered(top, "V I - I N V A D E R S", style.Foreground(RgbTitle).Bold(true))
	r.drawCentered(top+2, "ENTER start   h/l move   SPACE fire   m mute   q quit", style.Foreground(RgbHUDLabel))
	r.drawLeaderboard(top+5, v.Leaderboard, -1, style)
}

func (r *TerminalRenderer) drawEnterName(v View, style tcell.Style) {
	mid := r.height / 2
	box := style.Foreground(RgbHighlight).Bold(true)

	reason := "YOU WERE HIT"
	if v.LossReason == core.LossInvasion {
		reason = "THE INVADERS LANDED"
	}
	r.drawCentered(mid-2, reason, box)
	r.drawCentered(mid-1, fmt.Sprintf("FINAL SCORE %d", v.FinalScore), box)
	if v.NewHighScore {
		r.drawCentered(mid, "NEW HIGH SCORE", style.Foreground(RgbTitle).Bold(true))
	}

	name := v.Name + strings.Repeat("_", max(0, constants.NameLength-len([]rune(v.Name))))
	r.drawCentered(mid+1, "ENTER YOUR INITIALS: "+name, style.Foreground(RgbStatusBar).Bold(true))
}

func (r *TerminalRenderer) drawGameOver(v View, style tcell.Style) {
	top := constants.HUDRows + 2
	r.drawCentered(top, "G A M E   O V E R", style.Foreground(RgbPhaseGameOverBg).Bold(true))
	r.drawCentered(top+2, fmt.Sprintf("SCORE %d", v.FinalScore), style.Foreground(RgbHUDValue))

	highlight := -1
	for i, e := range v.Leaderboard {
		if e.Name == v.Name && e.Score == v.FinalScore {
			highlight = i
			break
		}
	}
	r.drawLeaderboard(top+4, v.Leaderboard, highlight, style)
}

func (r *TerminalRenderer) drawLeaderboard(top int, entries []core.LeaderboardEntry, highlight int, style tcell.Style) {
	r.drawCentered(top, "TOP SCORES", style.Foreground(RgbTitle))
	if len(entries) == 0 {
		r.drawCentered(top+2, "no scores yet", style.Foreground(RgbHUDLabel))
		return
	}
	for i, e := range entries {
		line := fmt.Sprintf("%2d. %-3s %8d  %s", i+1, e.Name, e.Score, e.Date.Format("2006-01-02"))
		s := style.Foreground(RgbStatusBar)
		if i == highlight {
			s = style.Foreground(RgbHighlight).Bold(true)
		}
		r.drawCentered(top+2+i, line, s)
	}
}

func (r *TerminalRenderer) drawStatusBar(v View, style tcell.Style) {
	statusY := r.height - 1
	if statusY < 0 {
		return
	}

	var bg tcell.Color
	switch v.Phase {
	case engine.PhasePlaying:
		bg = RgbPhasePlayingBg
	case engine.PhaseEnterName:
		bg = RgbPhaseEnterNameBg
	case engine.PhaseGameOver:
		bg = RgbPhaseGameOverBg
	default:
		bg = RgbPhaseMenuBg
	}
	modeText := " " + strings.ToUpper(v.Phase.String()) + " "
	x := r.drawText(0, statusY, modeText, style.Foreground(RgbStatusText).Background(bg))

	var hint string
	switch v.Phase {
	case engine.PhaseMenu:
		hint = "ENTER start  q quit"
	case engine.PhasePlaying:
		hint = "h/l move  SPACE fire  m mute"
	case engine.PhaseEnterName:
		hint = "type 3 letters or digits, ENTER to submit"
	case engine.PhaseGameOver:
		hint = "ENTER play again  q quit"
	}
	r.drawText(x+1, statusY, hint, style.Foreground(RgbHUDLabel))

	if v.Muted {
		r.drawText(r.width-7, statusY, " MUTED", style.Foreground(RgbHighlight))
	}
}

func (r *TerminalRenderer) drawCentered(y int, text string, style tcell.Style) {
	r.drawText((r.width-len([]rune(text)))/2, y, text, style)
}

// drawText writes text at (x, y) clipped to the screen and returns the column after it
func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) int {
	if y < 0 || y >= r.height {
		return x
	}
	for _, ch := range text {
		if x >= 0 && x < r.width {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
	return x
}
