//go:build ebiten

package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpdateReturnsDrawError(t *testing.T) {
	boom := errors.New("unsupported topology")
	g := &Game{drawErr: boom}
	err := g.Update()
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "drawing grid")
}
