// Package effects provides the frame-based voice effect units.
//
// Units, in the order a chain applies them:
//   - Echo: single-tap echo of the previous frame.
//   - Reverb: four-tap decaying reverb over a rolling four-frame window.
//   - Delay: one-frame delay with a fixed 0.3 feedback path.
//   - Distortion: driven sine waveshaper with peak normalisation.
//   - Volume: linear output gain.
//
// Every unit owns its history buffers, sized once at construction, and
// processes whole frames in place. Gains are linear in [0, 1] and are passed
// per call so the owner can read them from a shared parameter snapshot while
// the unit state stays private to the processing goroutine.
//
// Units are not safe for concurrent use.
package effects
