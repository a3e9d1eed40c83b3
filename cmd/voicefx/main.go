// Command voicefx is a terminal front end for the real-time voice effects
// engine.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/cwbudde/algo-voicefx/internal/config"
	"github.com/cwbudde/algo-voicefx/internal/logging"
	"github.com/cwbudde/algo-voicefx/voice/device"
	"github.com/cwbudde/algo-voicefx/voice/engine"
	"github.com/cwbudde/algo-voicefx/voice/params"
)

const prompt = "voicefx> "

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	dryRun := flag.Bool("dry-run", false, "use a generated test tone instead of the audio devices")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address (overrides metrics.listen_addr)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "voicefx: %v\n", err)
			return 1
		}
	}
	if *metricsAddr != "" {
		cfg.Metrics.ListenAddr = *metricsAddr
	}

	// Interactive sessions run the terminal in raw mode, so every line,
	// including log output, goes through the line editor.
	var (
		out   io.Writer = os.Stdout
		lines <-chan string
	)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "voicefx: %v\n", err)
			return 1
		}
		defer func() { _ = term.Restore(int(os.Stdin.Fd()), oldState) }()

		t := term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}, prompt)
		out = t
		lines = readTerminal(t)
		logging.SetDefaultLogger(logging.NewConsole(t))
	} else {
		lines = readLines(os.Stdin)
	}
	if !logging.SetLevel(string(cfg.LogLevel)) {
		fmt.Fprintf(out, "unknown log level %q, using info\n", cfg.LogLevel)
	}
	logger := logging.Component("voicefx")

	store := params.NewStore()
	if err := store.ApplyPreset(cfg.Preset.ParamsPreset()); err != nil {
		logger.Error().Err(err).Msg("invalid preset")
		return 1
	}

	var opener device.Opener = device.System{Logger: logging.Component("device")}
	if *dryRun {
		devCfg := cfg.DeviceConfig()
		opener = device.NewLoopback(
			device.WithGenerator(device.Sine(220, float64(devCfg.SampleRate), 0.3)),
			device.WithPacing(devCfg.FrameDuration()),
			device.WithRetain(1),
		)
	}

	c := &console{store: store, out: out, recDir: cfg.Recording.Dir, now: time.Now}
	eng, err := engine.New(store, opener,
		engine.WithLogger(*logging.GetDefaultLogger()),
		engine.WithDeviceConfig(cfg.DeviceConfig()),
		engine.WithPitchOptions(cfg.Audio.Pitch.Options()...),
		engine.WithStreamingCallback(c.onStreaming),
		engine.WithRecordingCallback(c.onRecording),
	)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build engine")
		return 1
	}
	c.eng = eng

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runConsole(gctx, c, lines) })
	if cfg.Metrics.ListenAddr != "" {
		g.Go(func() error { return serveMetrics(gctx, cfg.Metrics.ListenAddr, logger) })
	}

	err = g.Wait()
	if stopErr := eng.Stop(); stopErr != nil {
		logger.Warn().Err(stopErr).Msg("stop")
	}
	if eng.IsRecording() {
		logger.Warn().Msg("recording discarded on exit")
		_ = eng.DisarmRecording("")
	}
	if err != nil && !errors.Is(err, errQuit) && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("exiting")
		return 1
	}
	return 0
}

// runConsole executes lines until quit, end of input or cancellation.
func runConsole(ctx context.Context, c *console, lines <-chan string) error {
	c.printf("voicefx ready, type help for commands\n")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return errQuit
			}
			if err := c.exec(ctx, line); err != nil {
				if errors.Is(err, errQuit) {
					return err
				}
				c.printf("error: %v\n", err)
			}
		}
	}
}

func readTerminal(t *term.Terminal) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		for {
			line, err := t.ReadLine()
			if err != nil {
				return
			}
			ch <- line
		}
	}()
	return ch
}

func readLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

func serveMetrics(ctx context.Context, addr string, logger zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
