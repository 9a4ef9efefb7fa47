package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGestureSettlesOpenAfterLongDrag(t *testing.T) {
	var g rowGesture
	g.Press(40)
	g.Move(38)
	g.Move(34)
	require.Equal(t, gestureDragging, g.Phase())
	require.Equal(t, -6, g.Offset())

	g.Release()
	require.Equal(t, gestureOpenLeft, g.Phase())
	require.True(t, g.Open())
	require.Equal(t, -settleThreshold, g.Offset())
}

func TestGestureSnapsShutBelowThreshold(t *testing.T) {
	var g rowGesture
	g.Press(40)
	g.Move(38)
	g.Release()
	require.Equal(t, gestureClosed, g.Phase())
	require.False(t, g.Open())
	require.Equal(t, 0, g.Offset())
}

func TestGestureOpensRight(t *testing.T) {
	var g rowGesture
	g.Press(10)
	g.Move(20)
	g.Release()
	require.Equal(t, gestureOpenRight, g.Phase())
	require.Equal(t, settleThreshold, g.Offset())
}

func TestGestureMoveIgnoredWhenNotDragging(t *testing.T) {
	var g rowGesture
	g.Move(99)
	require.Equal(t, gestureIdle, g.Phase())
	require.Equal(t, 0, g.Offset())

	g.Release()
	require.Equal(t, gestureIdle, g.Phase())
}

func TestGesturePressRearmsOpenRow(t *testing.T) {
	var g rowGesture
	g.Press(40)
	g.Move(30)
	g.Release()
	require.True(t, g.Open())

	g.Press(36)
	g.Move(37)
	g.Release()
	require.Equal(t, gestureClosed, g.Phase())
}

func TestGestureReset(t *testing.T) {
	var g rowGesture
	g.Press(40)
	g.Move(30)
	g.Reset()
	require.Equal(t, gestureClosed, g.Phase())
	require.Equal(t, 0, g.Offset())
}
