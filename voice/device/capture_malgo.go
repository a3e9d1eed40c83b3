package device

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/rs/zerolog"
)

// MalgoCapture records from the default input device. The driver callback
// feeds a bounded ring; Read drains one frame at a time.
type MalgoCapture struct {
	ctx *malgo.AllocatedContext
	dev *malgo.Device

	ring    *ring
	scratch []float32 // owned by the driver callback

	closeOnce sync.Once
	closeErr  error
}

// OpenMalgoCapture starts capturing from the default input device.
func OpenMalgoCapture(cfg Config, logger zerolog.Logger) (*MalgoCapture, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		logger.Debug().Str("backend", "malgo").Msg(strings.TrimSpace(msg))
	})
	if err != nil {
		return nil, fmt.Errorf("device: init capture context: %w", err)
	}

	c := &MalgoCapture{
		ctx:  ctx,
		ring: newRing(cfg.FrameSize * cfg.CaptureBufferFrames),
	}

	devCfg := malgo.DefaultDeviceConfig(malgo.Capture)
	devCfg.Capture.Format = malgo.FormatF32
	devCfg.Capture.Channels = uint32(cfg.Channels)
	devCfg.SampleRate = uint32(cfg.SampleRate)
	devCfg.Alsa.NoMMap = 1

	dev, err := malgo.InitDevice(ctx.Context, devCfg, malgo.DeviceCallbacks{Data: c.onData})
	if err != nil {
		c.freeContext()
		return nil, fmt.Errorf("device: init capture device: %w", err)
	}
	c.dev = dev

	if err := dev.Start(); err != nil {
		dev.Uninit()
		c.freeContext()
		return nil, fmt.Errorf("device: start capture: %w", err)
	}

	logger.Info().
		Int("sample_rate", cfg.SampleRate).
		Int("frame_size", cfg.FrameSize).
		Msg("capture started")
	return c, nil
}

func (c *MalgoCapture) onData(_, input []byte, frameCount uint32) {
	n := min(int(frameCount), len(input)/4)
	if cap(c.scratch) < n {
		c.scratch = make([]float32, n)
	}
	samples := c.scratch[:n]
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(input[i*4:]))
	}
	c.ring.push(samples)
}

// Read blocks until buf is full. If input was dropped since the last read
// the frame is returned together with ErrOverflow.
func (c *MalgoCapture) Read(buf []float32) (int, error) {
	n, dropped, err := c.ring.popFull(buf)
	if err != nil {
		return n, err
	}
	if dropped > 0 {
		return n, fmt.Errorf("%w: %d samples", ErrOverflow, dropped)
	}
	return n, nil
}

// Close stops the device and releases the driver context. It may run while
// another goroutine is blocked in Read.
func (c *MalgoCapture) Close() error {
	c.closeOnce.Do(func() {
		// The ring must be closed before the device is stopped and freed so
		// a blocked Read returns ErrClosed instead of touching a dead device.
		c.ring.close()
		var errs []error
		if err := c.dev.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("device: stop capture: %w", err))
		}
		c.dev.Uninit()
		errs = append(errs, c.freeContext())
		c.closeErr = errors.Join(errs...)
	})
	return c.closeErr
}

func (c *MalgoCapture) freeContext() error {
	defer c.ctx.Free()
	if err := c.ctx.Uninit(); err != nil {
		return fmt.Errorf("device: release capture context: %w", err)
	}
	return nil
}
