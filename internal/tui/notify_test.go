package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticesDrainClearsQueue(t *testing.T) {
	n := NewNotices()
	n.Success("saved")
	n.Error("nope")
	n.Info("fyi")

	items := n.Drain()
	require.Len(t, items, 3)
	assert.Equal(t, NoticeSuccess, items[0].Kind)
	assert.Equal(t, "saved", items[0].Message)
	assert.Equal(t, NoticeError, items[1].Kind)
	assert.Equal(t, NoticeInfo, items[2].Kind)

	assert.Empty(t, n.Drain())
}

func TestRenderNotices(t *testing.T) {
	out := RenderNotices([]Notice{
		{Kind: NoticeSuccess, Message: "Profile updated successfully."},
		{Kind: NoticeError, Message: "Please enter a contact number."},
	}, DefaultStyles())

	assert.Contains(t, out, "Profile updated successfully.")
	assert.Contains(t, out, "Please enter a contact number.")
	assert.Empty(t, RenderNotices(nil, DefaultStyles()))
}
