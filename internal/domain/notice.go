package domain

import "sync"

// NoticeBoard holds the single pending fallback notice. The notice is
// set-once-until-consumed: a later SetIfEmpty never overwrites an earlier
// message, and Pop delivers it at most once.
type NoticeBoard struct {
	mu     sync.Mutex
	notice string
}

// NewNoticeBoard creates an empty notice board (DI constructor).
func NewNoticeBoard() *NoticeBoard {
	return &NoticeBoard{}
}

// SetIfEmpty stores msg unless a notice is already pending. Empty messages
// are ignored.
func (b *NoticeBoard) SetIfEmpty(msg string) {
	if msg == "" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.notice == "" {
		b.notice = msg
	}
}

// Pop returns the pending notice and clears it. Returns "" when none is set.
func (b *NoticeBoard) Pop() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	notice := b.notice
	b.notice = ""
	return notice
}

// Peek returns the pending notice without clearing it.
func (b *NoticeBoard) Peek() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.notice
}

// Clear drops the pending notice without returning it.
func (b *NoticeBoard) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.notice = ""
}
