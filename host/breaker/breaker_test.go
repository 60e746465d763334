package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gumpkit/config"
	"gumpkit/host/memhost"
	"gumpkit/layout"
)

func TestPassesThroughResults(t *testing.T) {
	h := memhost.New()
	a := Wrap(h, config.BreakerConfig{}, nil)
	serial, strs := layout.NewBuilder().AddButton(0, 0, 1, 2, 3).Finish()
	require.NoError(t, a.SendDialog(4, serial, strs, 0, 0))
	h.Queue(4, memhost.Press(3))

	got, err := a.WaitForResponse(4, time.Second)
	require.NoError(t, err)
	assert.True(t, got)
	raw, err := a.ReadDialogResult(4)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.Equal(t, 3, raw.ButtonID)

	raw, err = a.ReadDialogResult(5)
	require.NoError(t, err)
	assert.Nil(t, raw)

	a.Pause(time.Second)
	assert.Equal(t, h.Now(), a.Now())
	assert.True(t, a.Connected())
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	h := memhost.New()
	a := Wrap(h, config.BreakerConfig{MaxFailures: 2, Timeout: 20 * time.Millisecond}, nil)
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		h.FailNext(memhost.OpList, boom)
		_, err := a.AllOpenDialogIDs()
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, gobreaker.StateOpen, a.State())

	err := a.CloseDialog(1)
	assert.ErrorIs(t, err, ErrOpen)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Empty(t, h.Closes())

	time.Sleep(40 * time.Millisecond)
	ids, err := a.AllOpenDialogIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, gobreaker.StateClosed, a.State())
}
