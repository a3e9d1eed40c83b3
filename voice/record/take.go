package record

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// SampleRate is the rate written into every WAV header.
	SampleRate = 44100
	// BitDepth is the PCM sample width.
	BitDepth = 16

	numChannels = 1
	pcmFormat   = 1
	fullScale   = 32767
)

// Take is one finished recording.
type Take struct {
	frames [][]float32
}

// Frames returns the number of buffered frames.
func (t *Take) Frames() int { return len(t.frames) }

// Len returns the total number of samples.
func (t *Take) Len() int {
	n := 0
	for _, f := range t.frames {
		n += len(f)
	}
	return n
}

// PCM returns the take as 16-bit sample values in capture order.
func (t *Take) PCM() []int {
	out := make([]int, 0, t.Len())
	for _, f := range t.frames {
		for _, s := range f {
			out = append(out, ToPCM16(s))
		}
	}
	return out
}

// ToPCM16 converts a sample in [-1, 1] to a signed 16-bit value as
// round(s*32767). Out-of-range input saturates; NaN becomes 0.
func ToPCM16(s float32) int {
	v := float64(s)
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	}
	return int(math.Round(v * fullScale))
}

// Encode writes the take as a RIFF/WAVE stream: mono, 44100 Hz, 16-bit PCM,
// one data chunk.
func (t *Take) Encode(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, SampleRate, BitDepth, numChannels, pcmFormat)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: SampleRate},
		Data:           t.PCM(),
		SourceBitDepth: BitDepth,
	}
	// An empty take still gets a header and a zero-length data chunk.
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("record: encode samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("record: finish wav: %w", err)
	}
	return nil
}

// Save encodes the take into a new file at path, replacing any existing
// file. A partially written file is removed on failure.
func (t *Take) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("record: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("record: close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return t.Encode(f)
}
