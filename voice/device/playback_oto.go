package device

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// oto allows a single context per process. It is created on first use and
// kept for the process lifetime.
var otoShared struct {
	once sync.Once
	ctx  *oto.Context
	rate int
	err  error
}

func otoContext(cfg Config) (*oto.Context, error) {
	otoShared.once.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   cfg.SampleRate,
			ChannelCount: cfg.Channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   cfg.PlaybackLatency,
		})
		if err != nil {
			otoShared.err = fmt.Errorf("device: init playback context: %w", err)
			return
		}
		<-ready
		otoShared.ctx = ctx
		otoShared.rate = cfg.SampleRate
	})
	if otoShared.err != nil {
		return nil, otoShared.err
	}
	if otoShared.rate != cfg.SampleRate {
		return nil, fmt.Errorf("%w: playback already running at %d Hz", ErrConfig, otoShared.rate)
	}
	return otoShared.ctx, nil
}

// OtoPlayback plays frames on the default output device. oto pulls samples
// through Read; Write queues them and blocks while the queue is full.
type OtoPlayback struct {
	player *oto.Player
	queue  *ring

	scratch []float32 // owned by the oto reader goroutine

	closeOnce sync.Once
	closeErr  error
}

// OpenOtoPlayback starts a player on the shared oto context.
func OpenOtoPlayback(cfg Config) (*OtoPlayback, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx, err := otoContext(cfg)
	if err != nil {
		return nil, err
	}

	p := &OtoPlayback{queue: newRing(cfg.FrameSize * cfg.PlaybackQueueFrames)}
	p.player = ctx.NewPlayer(p)
	p.player.Play()
	return p, nil
}

// Read implements io.Reader for the oto player. Missing samples are
// rendered as silence so the device never stalls.
func (p *OtoPlayback) Read(b []byte) (int, error) {
	n := len(b) / 4
	if cap(p.scratch) < n {
		p.scratch = make([]float32, n)
	}
	samples := p.scratch[:n]

	got := p.queue.popAvailable(samples)
	clear(samples[got:])

	for i, s := range samples {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(s))
	}
	return n * 4, nil
}

// Write queues buf for output, blocking while the queue is full.
func (p *OtoPlayback) Write(buf []float32) (int, error) {
	return p.queue.pushWait(buf)
}

// Close stops the player. Queued samples are discarded. It may run while
// another goroutine is blocked in Write.
func (p *OtoPlayback) Close() error {
	p.closeOnce.Do(func() {
		// Close the queue before the player so a blocked Write is released
		// with ErrClosed before the player goes away.
		p.queue.close()
		if err := p.player.Close(); err != nil {
			p.closeErr = fmt.Errorf("device: close playback: %w", err)
		}
	})
	return p.closeErr
}
