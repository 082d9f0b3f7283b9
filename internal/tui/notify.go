package tui

import (
	"strings"
	"sync"
)

// NoticeKind classifies a notice for rendering.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
	NoticeInfo
)

// Notice is a single user-facing message emitted by a profile
// operation.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Notices collects notices from background operations so a screen can
// render them on its next frame. It satisfies account.Notifier and is
// safe for concurrent use.
type Notices struct {
	mu    sync.Mutex
	items []Notice
}

func NewNotices() *Notices {
	return &Notices{}
}

func (n *Notices) Success(msg string) { n.add(Notice{Kind: NoticeSuccess, Message: msg}) }
func (n *Notices) Error(msg string)   { n.add(Notice{Kind: NoticeError, Message: msg}) }
func (n *Notices) Info(msg string)    { n.add(Notice{Kind: NoticeInfo, Message: msg}) }

func (n *Notices) add(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, notice)
}

// Drain returns all pending notices and clears the queue.
func (n *Notices) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	items := n.items
	n.items = nil
	return items
}

// Render formats notices one per line with kind-appropriate styling.
func RenderNotices(notices []Notice, styles Styles) string {
	if len(notices) == 0 {
		return ""
	}
	var b strings.Builder
	for _, notice := range notices {
		switch notice.Kind {
		case NoticeSuccess:
			b.WriteString(styles.Success.Render("✓ " + notice.Message))
		case NoticeError:
			b.WriteString(styles.Error.Render("✗ " + notice.Message))
		default:
			b.WriteString(styles.Info.Render("· " + notice.Message))
		}
		b.WriteString("\n")
	}
	return b.String()
}
