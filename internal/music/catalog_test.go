package music

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedLoader struct {
	results []Result
	errs    []error
	calls   atomic.Int32
	gate    chan struct{}
}

func (l *scriptedLoader) Load(context.Context) (Result, error) {
	i := int(l.calls.Add(1)) - 1
	if l.gate != nil {
		<-l.gate
	}
	if i >= len(l.results) {
		i = len(l.results) - 1
	}
	return l.results[i], l.errs[i]
}

func TestCatalog_Reload(t *testing.T) {
	lib := &Library{}
	failed := errors.New("boom")
	loader := &scriptedLoader{
		results: []Result{{Library: lib}, {}, {}, {}},
		errs:    []error{nil, ErrIndexUnavailable.withCause(failed), nil, nil},
	}
	c := NewCatalog(loader)
	assert.Nil(t, c.Library())

	_, err := c.Reload(context.Background())
	require.NoError(t, err)
	assert.Same(t, lib, c.Library())

	// A failed load keeps the previous snapshot
	_, err = c.Reload(context.Background())
	require.ErrorIs(t, err, ErrIndexUnavailable)
	assert.Same(t, lib, c.Library())

	// An empty index clears it
	res, err := c.Reload(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Nil(t, c.Library())
}

func TestCatalog_ConcurrentReloadsShareOneLoad(t *testing.T) {
	lib := &Library{}
	loader := &scriptedLoader{
		results: []Result{{Library: lib}},
		errs:    []error{nil},
		gate:    make(chan struct{}),
	}
	c := NewCatalog(loader)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Reload(context.Background())
			assert.NoError(t, err)
		}()
	}

	// Wait for the first load to start, then let every caller join it
	require.Eventually(t, func() bool { return loader.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(loader.gate)
	wg.Wait()

	assert.LessOrEqual(t, loader.calls.Load(), int32(5))
	assert.Same(t, lib, c.Library())
}

func TestCatalog_OverLoader(t *testing.T) {
	c := NewCatalog(NewLoader(sampleRows(), nil, nil))

	var p Provider = c
	_, err := c.Reload(context.Background())
	require.NoError(t, err)
	require.NotNil(t, p.Library())
	assert.Len(t, p.Library().Songs, 3)
}
