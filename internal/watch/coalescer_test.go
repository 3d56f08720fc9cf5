package watch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestCoalescerDebounce(t *testing.T) {
	c := NewCoalescer(100 * time.Millisecond)

	c.Push("/a.tsx", Change, at(0))
	assert.Empty(t, c.Ready(at(50)), "still inside the quiet window")
	assert.Equal(t, 1, len(c.pending))

	ready := c.Ready(at(100))
	require.Equal(t, []Event{{Path: "/a.tsx", Kind: Change}}, ready)
	assert.Equal(t, 0, len(c.pending))
}

func TestCoalescerBurstCollapses(t *testing.T) {
	c := NewCoalescer(100 * time.Millisecond)

	// An editor save: remove, create, write.
	c.Push("/a.tsx", Remove, at(0))
	c.Push("/a.tsx", Change, at(5))
	c.Push("/a.tsx", Change, at(10))

	assert.Empty(t, c.Ready(at(100)), "burst refreshed the timestamp")
	ready := c.Ready(at(110))
	require.Equal(t, []Event{{Path: "/a.tsx", Kind: Change}}, ready)
}

func TestCoalescerLatestKindWins(t *testing.T) {
	c := NewCoalescer(10 * time.Millisecond)

	c.Push("/a.tsx", Change, at(0))
	c.Push("/a.tsx", Remove, at(1))
	require.Equal(t, []Event{{Path: "/a.tsx", Kind: Remove}}, c.Ready(at(20)))
}

func TestCoalescerHoldsRecentlyProcessed(t *testing.T) {
	c := NewCoalescer(100 * time.Millisecond)

	c.Push("/a.tsx", Change, at(0))
	require.Len(t, c.Ready(at(100)), 1)

	// An event arrives while the slow first pass is still running.
	c.Push("/a.tsx", Change, at(100))
	c.MarkProcessed("/a.tsx", at(150))

	assert.Empty(t, c.Ready(at(200)), "processed 50ms ago")
	assert.Equal(t, 1, len(c.pending))

	require.Equal(t, []Event{{Path: "/a.tsx", Kind: Change}}, c.Ready(at(250)))
}

func TestCoalescerOrderAndIndependence(t *testing.T) {
	c := NewCoalescer(50 * time.Millisecond)

	c.Push("/c.tsx", Change, at(0))
	c.Push("/a.tsx", Remove, at(0))
	c.Push("/b.tsx", Change, at(40))

	require.Equal(t, []Event{
		{Path: "/a.tsx", Kind: Remove},
		{Path: "/c.tsx", Kind: Change},
	}, c.Ready(at(60)))
	require.Equal(t, []Event{{Path: "/b.tsx", Kind: Change}}, c.Ready(at(90)))
	assert.Empty(t, c.Ready(at(500)))
}

func TestCoalescerForgetsOldProcessingTimes(t *testing.T) {
	c := NewCoalescer(10 * time.Millisecond)

	c.Push("/a.tsx", Change, at(0))
	c.Ready(at(10))
	c.MarkProcessed("/a.tsx", at(10))
	c.Ready(at(100))

	assert.Empty(t, c.lastProcessed)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "change", Change.String())
	assert.Equal(t, "remove", Remove.String())
	assert.Equal(t, "unknown", Kind(9).String())
}
