package device

import "github.com/rs/zerolog"

// System opens the host's default input and output devices.
type System struct {
	Logger zerolog.Logger
}

// OpenCapture opens the default microphone.
func (s System) OpenCapture(cfg Config) (Capture, error) {
	c, err := OpenMalgoCapture(cfg, s.Logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// OpenPlayback opens the default output.
func (s System) OpenPlayback(cfg Config) (Playback, error) {
	p, err := OpenOtoPlayback(cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}

var _ Opener = System{}
