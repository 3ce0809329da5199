package audio

import (
	"sync"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-invaders/core"
)

// soundCache stores pre-rendered unity-gain buffers per effect
type soundCache struct {
	mu     sync.RWMutex
	format beep.Format
	store  [core.SoundTypeCount]*beep.Buffer
}

func newSoundCache(rate beep.SampleRate) *soundCache {
	return &soundCache{format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}}
}

// get returns a streamer over the cached buffer, rendering it on first use
func (c *soundCache) get(st core.SoundType) beep.StreamSeeker {
	if st < 0 || st >= core.SoundTypeCount {
		return nil
	}

	c.mu.RLock()
	buf := c.store[st]
	c.mu.RUnlock()

	if buf == nil {
		c.mu.Lock()
		if c.store[st] == nil {
			effect := CreateEffect(st, c.format.SampleRate)
			if effect == nil {
				c.mu.Unlock()
				return nil
			}
			rendered := beep.NewBuffer(c.format)
			rendered.Append(effect)
			c.store[st] = rendered
		}
		buf = c.store[st]
		c.mu.Unlock()
	}
	return buf.Streamer(0, buf.Len())
}

// preload renders every effect ahead of the first request
func (c *soundCache) preload() {
	for st := core.SoundType(0); st < core.SoundTypeCount; st++ {
		c.get(st)
	}
}
