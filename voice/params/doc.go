// Package params holds the live control values of the voice pipeline: the
// ten band gains, the five effect gains and the pitch shift.
//
// Writers may call the setters from any goroutine. The audio loop reads one
// [Snapshot] per frame, so a frame never mixes values from two updates.
package params
