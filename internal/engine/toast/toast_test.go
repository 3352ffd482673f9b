// Copyright (c) 2026 Modhaven. All rights reserved.

package toast_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modhaven/modhaven/internal/engine/toast"
)

/*
TestNotifier_DrainReturnsFIFO verifies levels and ordering.
*/
func TestNotifier_DrainReturnsFIFO(t *testing.T) {
	notifier := toast.NewNotifier()

	notifier.Info("first")
	notifier.Success("second")
	notifier.Error("third")

	drained := notifier.Drain()
	require.Len(t, drained, 3)
	assert.Equal(t, toast.Toast{Level: toast.LevelInfo, Message: "first"}, drained[0])
	assert.Equal(t, toast.Toast{Level: toast.LevelSuccess, Message: "second"}, drained[1])
	assert.Equal(t, toast.Toast{Level: toast.LevelError, Message: "third"}, drained[2])

	// Drain empties the queue.
	assert.Empty(t, notifier.Drain())
	assert.Equal(t, 0, notifier.Pending())
}

/*
TestNotifier_EvictsOldestBeyondCap verifies the queue stays bounded when
nothing drains it.
*/
func TestNotifier_EvictsOldestBeyondCap(t *testing.T) {
	notifier := toast.NewNotifier()

	for i := 0; i < 20; i++ {
		notifier.Info(fmt.Sprintf("toast-%d", i))
	}

	drained := notifier.Drain()
	require.Len(t, drained, 16)
	assert.Equal(t, "toast-4", drained[0].Message)
	assert.Equal(t, "toast-19", drained[15].Message)
}
