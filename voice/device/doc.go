// Package device abstracts the blocking sample I/O the stream engine sits
// on. [System] opens the default microphone through miniaudio (malgo) and
// the default output through oto; [Loopback] is an in-memory stand-in for
// tests and dry runs.
package device
