package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/algo-voicefx/voice/engine"
	"github.com/cwbudde/algo-voicefx/voice/params"
)

var errQuit = errors.New("quit")

const helpText = `commands:
  start                   open the devices and start streaming
  stop                    stop streaming
  eq <band> <0..100>      set a band slider (bands: %s)
  fx <effect> <0..100>    set an effect slider (effects: %s)
  pitch <-12..12>         shift the voice by semitones
  rec                     start recording the processed stream
  save [path]             stop recording and write a WAV file
  status                  show the current settings
  help                    show this text
  quit                    stop and exit
`

// console maps text commands onto the engine control API.
type console struct {
	eng    *engine.Engine
	store  *params.Store
	out    io.Writer
	recDir string
	now    func() time.Time
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// onStreaming and onRecording are the engine status callbacks.
func (c *console) onStreaming(on bool) {
	if on {
		c.printf("● live\n")
	} else {
		c.printf("● idle\n")
	}
}

func (c *console) onRecording(on bool) {
	if on {
		c.printf("⏺ recording\n")
	} else {
		c.printf("⬛ stopped\n")
	}
}

// exec runs one command line. It returns errQuit for quit.
func (c *console) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "start":
		return c.eng.Start(ctx)
	case "stop":
		return c.eng.Stop()
	case "eq":
		return c.setBand(args)
	case "fx":
		return c.setEffect(args)
	case "pitch":
		return c.setPitch(args)
	case "rec":
		c.eng.ArmRecording()
		return nil
	case "save":
		return c.save(args)
	case "status":
		c.status()
		return nil
	case "help", "?":
		c.printf(helpText, strings.Join(params.BandKeys(), " "), strings.Join(params.EffectNames(), " "))
		return nil
	case "quit", "exit":
		return errQuit
	}
	return fmt.Errorf("unknown command %q, try help", cmd)
}

func (c *console) setBand(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: eq <band> <0..100>")
	}
	v, err := parseNumber(args[1])
	if err != nil {
		return err
	}
	key := strings.ToLower(args[0])
	if err := c.store.SetBandGain(key, v); err != nil {
		return err
	}
	g, _ := c.store.BandGain(key)
	c.printf("eq %s = %s\n", key, params.BandGainDB(g))
	return nil
}

func (c *console) setEffect(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: fx <effect> <0..100>")
	}
	v, err := parseNumber(args[1])
	if err != nil {
		return err
	}
	name := effectName(args[0])
	if err := c.store.SetEffectGain(name, v); err != nil {
		return err
	}
	c.printf("fx %s = %s\n", name, params.EffectPercentLabel(v))
	return nil
}

func (c *console) setPitch(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: pitch <-12..12>")
	}
	v, err := parseNumber(args[0])
	if err != nil {
		return err
	}
	c.store.SetPitchShift(v)
	s := c.store.PitchShift()
	c.printf("pitch %+g %s %s\n", s, params.PitchFactorLabel(s), params.VoiceCharacter(s))
	return nil
}

func (c *console) save(args []string) error {
	if !c.eng.IsRecording() {
		return errors.New("not recording, use rec first")
	}
	var path string
	switch len(args) {
	case 0:
		path = "voicefx-" + c.now().Format("20060102-150405") + ".wav"
	case 1:
		path = args[0]
	default:
		return errors.New("usage: save [path]")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.recDir, path)
	}
	if err := c.eng.DisarmRecording(path); err != nil {
		return err
	}
	c.printf("saved %s\n", path)
	return nil
}

func (c *console) status() {
	snap := c.store.Snapshot()
	stats := c.eng.Stats()

	c.printf("state: %s, recording: %t\n", c.eng.State(), c.eng.IsRecording())
	c.printf("bands:")
	for i, key := range params.BandKeys() {
		c.printf(" %s=%s", key, params.BandGainDB(snap.Bands[i]))
	}
	c.printf("\neffects:")
	for _, name := range params.EffectNames() {
		g, _ := snap.Effects.Get(name)
		c.printf(" %s=%s", name, params.EffectPercentLabel(math.Round(g*params.SliderMax)))
	}
	c.printf("\npitch: %+g %s %s\n", snap.Semitones, params.PitchFactorLabel(snap.Semitones), params.VoiceCharacter(snap.Semitones))
	c.printf("frames: %d, unprocessed: %d, overflows: %d, device errors: %d\n",
		stats.Frames, stats.ProcessingErrors, stats.Overflows, stats.DeviceErrors)
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// effectName matches an effect case-insensitively; unknown names are
// returned unchanged for the store to reject.
func effectName(s string) string {
	for _, name := range params.EffectNames() {
		if strings.EqualFold(name, s) {
			return name
		}
	}
	return s
}
