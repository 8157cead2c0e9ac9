package utils

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampIDGenerator_NextID(t *testing.T) {
	fixed := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	generator := &TimestampIDGenerator{now: func() time.Time { return fixed }}

	first := generator.NextID()
	second := generator.NextID()

	assert.Equal(t, strconv.FormatInt(fixed.UnixMilli(), 10), first)
	assert.Equal(t, strconv.FormatInt(fixed.UnixMilli()+1, 10), second)
}

func TestTimestampIDGenerator_UniqueUnderConcurrency(t *testing.T) {
	generator := NewTimestampIDGenerator()

	const total = 200
	ids := make(chan string, total)
	wg := sync.WaitGroup{}
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- generator.NextID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, total)
	for id := range ids {
		_, duplicated := seen[id]
		require.False(t, duplicated, "ID duplicado: %s", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, total)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("1992-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1992, 5, 1, 0, 0, 0, 0, time.UTC), *date)

	_, err = ParseDate("01/05/1992")
	assert.Error(t, err)
}

func TestIsFutureDate(t *testing.T) {
	now := time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC)

	assert.False(t, IsFutureDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, IsFutureDate(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, IsFutureDate(time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), now))
}

func TestGenerateTokenID(t *testing.T) {
	id, err := GenerateTokenID()

	require.NoError(t, err)
	assert.Len(t, id, tokenIDLength)
}
