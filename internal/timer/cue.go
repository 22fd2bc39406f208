// ABOUTME: Audio cues played on timer transitions.
// ABOUTME: BellCue rings the terminal bell.
package timer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// CueKind identifies which transition a cue announces.
type CueKind int

const (
	CueStart CueKind = iota
	CuePause
	CueStop
	CueTarget
)

func (k CueKind) String() string {
	switch k {
	case CueStart:
		return "start"
	case CuePause:
		return "pause"
	case CueStop:
		return "stop"
	case CueTarget:
		return "target"
	default:
		return fmt.Sprintf("cue(%d)", int(k))
	}
}

// Cue plays an audible or tactile signal. Implementations must honor ctx.
type Cue interface {
	Play(ctx context.Context, kind CueKind) error
}

// CueFunc adapts a function to Cue.
type CueFunc func(ctx context.Context, kind CueKind) error

func (f CueFunc) Play(ctx context.Context, kind CueKind) error { return f(ctx, kind) }

// BellCue rings the terminal bell: once on start and pause, twice on stop,
// three times when the target is reached.
type BellCue struct {
	mu sync.Mutex
	W  io.Writer
}

func (b *BellCue) Play(ctx context.Context, kind CueKind) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n := 1
	switch kind {
	case CueStop:
		n = 2
	case CueTarget:
		n = 3
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.W, strings.Repeat("\a", n))
	return err
}
