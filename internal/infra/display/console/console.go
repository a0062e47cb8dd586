// Package console implements the txprogress.Display interface by writing every
// notification change to the application log. It is the display used when no
// notification store is configured.
package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/gabapcia/txprogress/internal/pkg/logger"
	"github.com/gabapcia/txprogress/internal/txprogress"

	"github.com/google/uuid"
)

// display keeps the last known content of each notification so updates can
// be rendered in full.
type display struct {
	mu       sync.Mutex
	contents map[string]txprogress.Content
}

// Ensure display implements the txprogress.Display interface at compile time.
var _ txprogress.Display = (*display)(nil)

// New creates a console display.
func New() *display {
	return &display{
		contents: make(map[string]txprogress.Content),
	}
}

func (d *display) Show(ctx context.Context, content txprogress.Content, opts txprogress.Options) (string, error) {
	id := uuid.NewString()

	d.mu.Lock()
	d.contents[id] = content
	d.mu.Unlock()

	logger.Info(ctx, content.Render(),
		"notification.id", id,
		"notification.type", opts.Type,
		"notification.auto_close", opts.AutoClose.String(),
	)

	return id, nil
}

func (d *display) Update(ctx context.Context, id string, patch txprogress.Patch) error {
	final := patch.Type != nil && (*patch.Type == txprogress.TypeSuccess || *patch.Type == txprogress.TypeError)

	d.mu.Lock()
	content, ok := d.contents[id]
	if ok && patch.Content != nil {
		content = *patch.Content
		d.contents[id] = content
	}
	// Finalized notifications are not updated again.
	if ok && final {
		delete(d.contents, id)
	}
	d.mu.Unlock()

	if !ok {
		return fmt.Errorf("unknown notification %s", id)
	}

	kv := []any{"notification.id", id}
	if patch.Type != nil {
		kv = append(kv, "notification.type", *patch.Type)
	}
	if patch.AutoClose != nil {
		kv = append(kv, "notification.auto_close", patch.AutoClose.String())
	}

	if patch.Type != nil && *patch.Type == txprogress.TypeError {
		logger.Error(ctx, content.Render(), kv...)
		return nil
	}

	logger.Info(ctx, content.Render(), kv...)
	return nil
}
