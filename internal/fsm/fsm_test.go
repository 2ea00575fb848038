// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package fsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type state string
type event string

const (
	stateOff    state = "off"
	stateOn     state = "on"
	stateBroken state = "broken"

	eventToggle event = "toggle"
	eventBreak  event = "break"
)

var switchTable = MustTable([]Transition[state, event]{
	{From: stateOff, Event: eventToggle, To: stateOn},
	{From: stateOn, Event: eventToggle, To: stateOff},
	{From: stateOn, Event: eventBreak, To: stateBroken},
})

func TestFireFollowsEdges(t *testing.T) {
	m := switchTable.Start(stateOff)

	to, err := m.Fire(eventToggle)
	require.NoError(t, err)
	assert.Equal(t, stateOn, to)
	assert.Equal(t, stateOn, m.State())

	to, err = m.Fire(eventToggle)
	require.NoError(t, err)
	assert.Equal(t, stateOff, to)
}

func TestFireRejectsUnknownEdge(t *testing.T) {
	m := switchTable.Start(stateOff)

	from, err := m.Fire(eventBreak)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, stateOff, from)
	assert.Equal(t, stateOff, m.State())
	assert.False(t, m.Can(eventBreak))
	assert.True(t, m.Can(eventToggle))
}

func TestTerminalStates(t *testing.T) {
	m := switchTable.Start(stateOn)
	assert.False(t, m.Done())

	_, err := m.Fire(eventBreak)
	require.NoError(t, err)
	assert.True(t, m.Done())
	assert.True(t, switchTable.Terminal(stateBroken))
	assert.False(t, switchTable.Terminal(stateOff))
}

func TestMachinesShareTableIndependently(t *testing.T) {
	a, b := switchTable.Start(stateOff), switchTable.Start(stateOff)
	_, err := a.Fire(eventToggle)
	require.NoError(t, err)

	assert.Equal(t, stateOn, a.State())
	assert.Equal(t, stateOff, b.State())
}

func TestNewTableRejectsDuplicateEdges(t *testing.T) {
	_, err := NewTable([]Transition[state, event]{
		{From: stateOff, Event: eventToggle, To: stateOn},
		{From: stateOff, Event: eventToggle, To: stateOff},
	})
	assert.Error(t, err)
	assert.Panics(t, func() {
		MustTable([]Transition[state, event]{
			{From: stateOff, Event: eventToggle, To: stateOn},
			{From: stateOff, Event: eventToggle, To: stateOff},
		})
	})
}
