package device

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingFIFOAcrossWrap(t *testing.T) {
	r := newRing(4)
	r.push([]float32{1, 2, 3})

	out := make([]float32, 2)
	n, dropped, err := r.popFull(out)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Zero(t, dropped)
	assert.Equal(t, []float32{1, 2}, out)

	r.push([]float32{4, 5, 6})
	out = make([]float32, 4)
	_, dropped, err = r.popFull(out)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Equal(t, []float32{3, 4, 5, 6}, out)
}

func TestRingPushDropsOldest(t *testing.T) {
	r := newRing(4)
	r.push([]float32{1, 2, 3})
	r.push([]float32{4, 5, 6})

	out := make([]float32, 4)
	_, dropped, err := r.popFull(out)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, []float32{3, 4, 5, 6}, out)

	r.push([]float32{7, 8, 9, 10, 11, 12})
	_, dropped, err = r.popFull(out)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, []float32{9, 10, 11, 12}, out)
}

func TestRingPopFullBlocksUntilData(t *testing.T) {
	r := newRing(8)
	got := make(chan []float32, 1)
	go func() {
		out := make([]float32, 4)
		_, _, _ = r.popFull(out)
		got <- out
	}()

	r.push([]float32{1, 2})
	select {
	case <-got:
		t.Fatal("popFull returned before a full frame was available")
	case <-time.After(20 * time.Millisecond):
	}

	r.push([]float32{3, 4})
	select {
	case out := <-got:
		assert.Equal(t, []float32{1, 2, 3, 4}, out)
	case <-time.After(time.Second):
		t.Fatal("popFull did not return")
	}
}

func TestRingPushWaitBlocksWhileFull(t *testing.T) {
	r := newRing(2)
	_, err := r.pushWait([]float32{1, 2})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		n, err := r.pushWait([]float32{3, 4, 5})
		assert.NoError(t, err)
		assert.Equal(t, 3, n)
	}()

	var got []float32
	buf := make([]float32, 2)
	deadline := time.Now().Add(time.Second)
	for len(got) < 5 && time.Now().Before(deadline) {
		n := r.popAvailable(buf)
		got = append(got, buf[:n]...)
	}
	wg.Wait()
	assert.Equal(t, []float32{1, 2, 3, 4, 5}, got)
}

func TestRingCloseUnblocks(t *testing.T) {
	empty := newRing(2)
	full := newRing(1)
	_, err := full.pushWait([]float32{0})
	require.NoError(t, err)

	errs := make(chan error, 2)
	go func() {
		_, _, err := empty.popFull(make([]float32, 2))
		errs <- err
	}()
	go func() {
		_, err := full.pushWait([]float32{1})
		errs <- err
	}()

	time.Sleep(10 * time.Millisecond)
	empty.close()
	full.close()

	for range 2 {
		select {
		case err := <-errs:
			assert.ErrorIs(t, err, ErrClosed)
		case <-time.After(time.Second):
			t.Fatal("close did not wake a waiter")
		}
	}
}

func TestRingRejectsOversizedRead(t *testing.T) {
	r := newRing(2)
	_, _, err := r.popFull(make([]float32, 3))
	assert.ErrorIs(t, err, ErrConfig)
}
