package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesProcessedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voicefx_frames_processed_total",
			Help: "Total number of frames written to playback",
		},
	)

	processingErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voicefx_processing_errors_total",
			Help: "Frames passed through unprocessed, by failing stage",
		},
		[]string{"stage"},
	)

	captureOverflowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voicefx_capture_overflows_total",
			Help: "Total number of capture reads that reported dropped input",
		},
	)

	deviceErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voicefx_device_errors_total",
			Help: "Device failures, by operation",
		},
		[]string{"op"},
	)

	frameProcessingSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voicefx_frame_processing_seconds",
			Help:    "Time spent in the DSP pipeline per frame",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	streamingActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "voicefx_streaming",
			Help: "1 while the engine is streaming",
		},
	)

	limitedFramesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voicefx_limited_frames_total",
			Help: "Total number of frames scaled down by the output limiter",
		},
	)

	recordedFramesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "voicefx_recorded_frames_total",
			Help: "Total number of frames appended to a recording",
		},
	)
)
