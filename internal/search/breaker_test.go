package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/logging"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/pagination"
)

type flakyIndex struct {
	err   error
	calls int
}

func (f *flakyIndex) IndexProperty(context.Context, *models.Property, []string, []models.PropertyImage) error {
	f.calls++
	return f.err
}

func (f *flakyIndex) RemoveProperty(context.Context, string) error {
	f.calls++
	return f.err
}

func (f *flakyIndex) SearchIDs(context.Context, filter.Predicate, pagination.Query) ([]string, int64, error) {
	f.calls++
	if f.err != nil {
		return nil, 0, f.err
	}
	return []string{"p1"}, 1, nil
}

func TestGuardedIndexOpensAndRecovers(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	breaker := NewCircuitBreaker(2, time.Minute, logging.Discard())
	breaker.now = func() time.Time { return now }
	idx := &flakyIndex{err: errors.New("connection refused")}
	g := NewGuardedIndex(idx, breaker)
	ctx := context.Background()
	q := pagination.Resolve(1, 10, "", "")

	_, _, err := g.SearchIDs(ctx, filter.And{}, q)
	assert.EqualError(t, err, "connection refused")
	assert.Error(t, g.RemoveProperty(ctx, "p1"))

	_, _, err = g.SearchIDs(ctx, filter.And{}, q)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, idx.calls, "open breaker does not reach the index")

	open, consecutive, total := breaker.GetStatus()
	assert.True(t, open)
	assert.Equal(t, 2, consecutive)
	assert.Equal(t, 2, total)

	// trial call after the timeout fails and reopens
	now = now.Add(time.Minute)
	assert.Error(t, g.IndexProperty(ctx, &models.Property{ID: "p1"}, nil, nil))
	assert.Equal(t, 3, idx.calls)
	_, _, err = g.SearchIDs(ctx, filter.And{}, q)
	assert.ErrorIs(t, err, ErrCircuitOpen)

	now = now.Add(time.Minute)
	idx.err = nil
	ids, n, err := g.SearchIDs(ctx, filter.And{}, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
	assert.EqualValues(t, 1, n)

	open, consecutive, _ = breaker.GetStatus()
	assert.False(t, open)
	assert.Zero(t, consecutive)
}

func TestGuardedIndexIgnoresUnsupportedQueries(t *testing.T) {
	breaker := NewCircuitBreaker(1, time.Minute, logging.Discard())
	idx := &flakyIndex{err: fmt.Errorf("render search filter: %w", filter.ErrUnsupported)}
	g := NewGuardedIndex(idx, breaker)

	for i := 0; i < 3; i++ {
		_, _, err := g.SearchIDs(context.Background(), filter.And{}, pagination.Resolve(1, 10, "", ""))
		assert.ErrorIs(t, err, filter.ErrUnsupported)
	}
	open, consecutive, _ := breaker.GetStatus()
	assert.False(t, open)
	assert.Zero(t, consecutive)
	assert.Equal(t, 3, idx.calls)
}
