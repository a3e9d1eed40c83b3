// Package engine runs the real-time voice pipeline.
//
// An [Engine] moves between two states. Start opens the capture and playback
// devices and launches one audio goroutine; Stop flips the state, waits for
// that goroutine to finish its current frame and only then releases the
// devices. Each frame is read from capture, passed through the band filter
// bank, the pitch shifter and the effect chain, optionally appended to the
// recording, and written to playback. A frame that fails anywhere in the
// pipeline is played unprocessed; device and processing errors never end
// the stream.
package engine
