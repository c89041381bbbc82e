package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/paiban/nurseplan/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTable(t *testing.T) {
	snap := model.NewSnapshot(
		[]model.Nurse{{ID: 7, Name: "Alice Johnson"}},
		[]model.Shift{
			{ID: 2, Date: "2025-02-19", Type: model.ShiftNight},
			{ID: 1, Date: "2025-02-19", Type: model.ShiftMorning},
		},
	)
	c := model.NewCandidate(snap)
	c.Append(7, snap.Horizon()[0])

	rows := Rows(c.Resolve())
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].ShiftID)
	assert.Equal(t, Unassigned, rows[0].NurseName)
	assert.Equal(t, "Alice Johnson", rows[1].NurseName)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, c.Resolve()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "SHIFT ID"))
	assert.Contains(t, lines[1], "Unassigned")
	assert.Contains(t, lines[2], "Alice Johnson")
	assert.Contains(t, lines[2], "7")
}

func TestWriteView(t *testing.T) {
	snap := model.NewSnapshot(
		[]model.Nurse{{ID: 1, Name: "Bob Smith"}},
		[]model.Shift{{ID: 1, Date: "2025-02-19", Type: model.ShiftNight}},
	)
	c := model.NewCandidate(snap)
	c.Append(1, snap.Horizon()[0])

	v := NewView(c.Resolve())
	assert.Equal(t, 1, v.Assigned)
	assert.Equal(t, 1, v.TotalShifts)
	v.Fitness = 212.5
	v.StopReason = "stagnation"
	v.Generations = 12

	var buf bytes.Buffer
	require.NoError(t, WriteView(&buf, v))
	out := buf.String()
	assert.Contains(t, out, "Bob Smith")
	assert.Contains(t, out, "fitness: 212.5  assigned: 1/1  generations: 12  stop: stagnation")
}
