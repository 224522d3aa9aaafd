//go:build e2e

package e2e

import (
	"context"
	"sync"
	"time"

	"icms/internal/usecase/commands"
)

// RecordingNotifier captures completion notices instead of publishing them.
type RecordingNotifier struct {
	mu      sync.Mutex
	notices []commands.CompletionNotice
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (n *RecordingNotifier) Enabled() bool { return true }

func (n *RecordingNotifier) SendCompletion(_ context.Context, notice commands.CompletionNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return nil
}

func (n *RecordingNotifier) Notices() []commands.CompletionNotice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]commands.CompletionNotice(nil), n.notices...)
}

func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = nil
}

const (
	EventuallyTimeout = 5 * time.Second
	EventuallyTick    = 50 * time.Millisecond
)
