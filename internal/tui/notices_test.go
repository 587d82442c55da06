package tui

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeStack_Push(t *testing.T) {
	var s noticeStack
	s.push(levelInfo, "hello")

	require.Len(t, s.items, 1)
	assert.Equal(t, "hello", s.items[0].message)
	assert.Equal(t, noticeTTL, s.items[0].remaining)
}

func TestNoticeStack_EvictsOldest(t *testing.T) {
	var s noticeStack
	for i := range maxNotices + 2 {
		s.push(levelInfo, fmt.Sprint(i))
	}

	require.Len(t, s.items, maxNotices)
	assert.Equal(t, "2", s.items[0].message)
}

func TestNoticeStack_Tick(t *testing.T) {
	var s noticeStack
	s.push(levelWarning, "expires")
	s.tick(noticeTTL - time.Second)
	s.push(levelError, "survives")

	s.tick(2 * time.Second)

	require.Len(t, s.items, 1)
	assert.Equal(t, "survives", s.items[0].message)
}

func TestNoticeStack_Clear(t *testing.T) {
	var s noticeStack
	s.push(levelInfo, "a")
	s.push(levelInfo, "b")

	s.clear()
	assert.True(t, s.empty())
}

func TestNoticeStack_Overlay(t *testing.T) {
	var s noticeStack
	assert.Empty(t, s.view())
	assert.Equal(t, "bg", s.overlay("bg", 2, 1))

	s.push(levelError, "load failed")
	assert.Contains(t, s.view(), "load failed")
}
