// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test exclusive permit acquisition and guaranteed release

package guard_test

import (
	"bytes"
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/guard"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermit_AcquireRelease(t *testing.T) {
	p := guard.NewPermit("test")
	assert.Equal(t, "test", p.Name())
	assert.False(t, p.Held())

	lease, err := p.Acquire(context.Background())
	require.NoError(t, err)
	assert.True(t, p.Held())

	lease.Release()
	assert.False(t, p.Held())
}

func TestPermit_ReleaseIsIdempotent(t *testing.T) {
	p := guard.NewPermit("test")

	first, err := p.Acquire(context.Background())
	require.NoError(t, err)
	first.Release()

	second, ok := p.TryAcquire()
	require.True(t, ok)

	// A stale release must not free the second holder's permit
	first.Release()
	assert.True(t, p.Held())

	second.Release()
	assert.False(t, p.Held())
}

func TestPermit_NilLeaseRelease(t *testing.T) {
	var lease *guard.Lease
	assert.NotPanics(t, lease.Release)
}

func TestPermit_TryAcquireWhileHeld(t *testing.T) {
	p := guard.NewPermit("test")
	lease, ok := p.TryAcquire()
	require.True(t, ok)
	defer lease.Release()

	_, ok = p.TryAcquire()
	assert.False(t, ok)
}

func TestPermit_AcquireHonoursContext(t *testing.T) {
	p := guard.NewPermit("test")
	lease, err := p.Acquire(context.Background())
	require.NoError(t, err)
	defer lease.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = p.Acquire(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCanceled))
}

func TestPermit_ReleasedOnEarlyReturn(t *testing.T) {
	p := guard.NewPermit("test")
	fail := func() error {
		lease, err := p.Acquire(context.Background())
		if err != nil {
			return err
		}
		defer lease.Release()
		return errors.New(errors.ErrCountMismatch, "boom")
	}

	require.Error(t, fail())
	assert.False(t, p.Held())
}

func TestPermit_MutualExclusion(t *testing.T) {
	p := guard.NewPermit("test")
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lease, err := p.Acquire(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			defer lease.Release()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.False(t, p.Held())
}

func TestProcessPermitsAreDistinct(t *testing.T) {
	ui, err := guard.UI.Acquire(context.Background())
	require.NoError(t, err)
	defer ui.Release()

	// Watch nests inside UI during the rename pass
	watch, ok := guard.Watch.TryAcquire()
	require.True(t, ok)
	watch.Release()
}

func TestPermit_LogsAcquireAndRelease(t *testing.T) {
	var buf bytes.Buffer
	previous, level := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(level)
	})
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	p := guard.NewPermit("logged")
	lease, err := p.Acquire(context.Background())
	require.NoError(t, err)
	lease.Release()

	output := buf.String()
	assert.Contains(t, output, `"component":"guard"`)
	assert.Contains(t, output, `"permit":"logged"`)
	assert.Contains(t, output, "Permit acquired")
	assert.Contains(t, output, "Permit released")
}
