package gui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/vi-invaders/core"
)

// KeyboardInput reads true held-key state from the window
type KeyboardInput struct {
	pressed func(ebiten.Key) bool

	Left  []ebiten.Key
	Right []ebiten.Key
	Fire  []ebiten.Key
}

// NewKeyboardInput binds arrows, vi keys and WASD
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{
		pressed: ebiten.IsKeyPressed,
		Left:    []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyH, ebiten.KeyA},
		Right:   []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyL, ebiten.KeyD},
		Fire:    []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyK},
	}
}

// Poll implements core.InputSource
func (k *KeyboardInput) Poll(time.Time) core.Input {
	return core.Input{
		Left:  k.any(k.Left),
		Right: k.any(k.Right),
		Fire:  k.any(k.Fire),
	}
}

func (k *KeyboardInput) any(keys []ebiten.Key) bool {
	for _, key := range keys {
		if k.pressed(key) {
			return true
		}
	}
	return false
}
