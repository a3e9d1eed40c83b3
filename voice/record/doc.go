// Package record buffers processed frames while armed and writes them out
// as a mono 16-bit PCM WAV file.
package record
