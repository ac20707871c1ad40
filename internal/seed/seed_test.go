package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
	"github.com/stretchr/testify/require"
)

type recordingCreator struct {
	reqs   []snapshot.CreateRequest
	failAt int
}

func (c *recordingCreator) Create(_ context.Context, req snapshot.CreateRequest) (*snapshot.Snapshot, error) {
	if c.failAt > 0 && len(c.reqs)+1 == c.failAt {
		return nil, errors.New("insert failed")
	}
	c.reqs = append(c.reqs, req)
	return &snapshot.Snapshot{ID: "0123456789abcdef", Name: req.Name}, nil
}

func TestSamplesAreValid(t *testing.T) {
	samples := Samples()
	require.Len(t, samples, 3)
	for _, s := range samples {
		require.NoError(t, snapshot.ValidateCreateInput(s), s.Name)
	}
}

func TestRunCreatesAllSamplesInOrder(t *testing.T) {
	creator := &recordingCreator{}

	created, err := Run(context.Background(), creator, nil)
	require.NoError(t, err)
	require.Len(t, created, 3)
	require.Equal(t, Samples(), creator.reqs)
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	creator := &recordingCreator{failAt: 2}

	created, err := Run(context.Background(), creator, nil)
	require.ErrorContains(t, err, "insert failed")
	require.Len(t, created, 1)
}

func TestShortID(t *testing.T) {
	require.Equal(t, "01234567", ShortID("0123456789abcdef"))
	require.Equal(t, "abc", ShortID("abc"))
}
