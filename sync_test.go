package genarena

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/genarena/internal/slot"
)

func TestSyncArena(t *testing.T) {
	s, err := NewSync[int](WithInitialCapacity(2))
	require.NoError(t, err)

	idx, err := s.Insert(1)
	require.NoError(t, err)

	assert.True(t, s.Update(idx, func(v *int) { *v += 41 }))

	var seen int
	assert.True(t, s.View(idx, func(v *int) { seen = *v }))
	assert.Equal(t, 42, seen)

	v, ok := s.Get(idx)
	require.True(t, ok)
	assert.Equal(t, 42, v)
	assert.True(t, s.Contains(idx))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, s.Capacity())

	v, ok = s.Remove(idx)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	assert.False(t, s.View(idx, func(*int) { t.Fatal("called for stale handle") }))
	assert.False(t, s.Update(idx, func(*int) { t.Fatal("called for stale handle") }))

	require.NoError(t, s.Reserve(t.Context(), 10))
	assert.Equal(t, 10, s.Stats().Free)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	require.NoError(t, s.Close())
}

func TestSyncArena_Bulk(t *testing.T) {
	s, err := NewSync[int]()
	require.NoError(t, err)

	for n := range 6 {
		_, err := s.Insert(n)
		require.NoError(t, err)
	}

	var got []int
	s.Range(func(_ Index, v *int) bool {
		got = append(got, *v)
		return len(got) < 4
	})
	assert.Equal(t, []int{0, 1, 2, 3}, got)

	s.Retain(func(_ Index, v *int) bool {
		*v *= 10
		return *v%20 == 0
	})

	got = got[:0]
	s.Range(func(_ Index, v *int) bool {
		got = append(got, *v)
		return true
	})
	assert.Equal(t, []int{0, 20, 40}, got)
	assert.Equal(t, 3, s.Len())
	assert.Empty(t, s.Retired())
	checkInvariants(t, s.arena)
}

func TestSyncArena_Retired(t *testing.T) {
	s, err := NewSync[int](WithInitialCapacity(1))
	require.NoError(t, err)

	sl, err := s.arena.store.At(0)
	require.NoError(t, err)
	sl.Used = true
	sl.Generation = slot.MaxGeneration

	_, err = s.Insert(1)
	require.ErrorIs(t, err, ErrGenerationOverflow)
	assert.Equal(t, []uint32{0}, s.Retired())
}

func TestSyncArena_InvalidOptions(t *testing.T) {
	_, err := NewSync[int](WithInitialCapacity(-1))
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestSyncArena_Concurrent(t *testing.T) {
	s, err := NewSync[int]()
	require.NoError(t, err)

	const (
		workers = 8
		perWork = 500
	)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			handles := make([]Index, 0, perWork)
			for n := range perWork {
				idx, err := s.Insert(w*perWork + n)
				if !assert.NoError(t, err) {
					return
				}
				handles = append(handles, idx)
			}
			for n, h := range handles {
				s.Update(h, func(v *int) { *v++ })
				s.View(h, func(v *int) { assert.Equal(t, w*perWork+n+1, *v) })
				if n%2 == 0 {
					_, ok := s.Remove(h)
					assert.True(t, ok)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*perWork/2, s.Len())
	checkInvariants(t, s.arena)
}
