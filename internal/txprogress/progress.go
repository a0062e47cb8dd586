package txprogress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabapcia/txprogress/internal/pkg/logger"
)

// finalizeTimeout bounds display calls that must outlive the flow context.
const finalizeTimeout = 5 * time.Second

// detachedContext keeps the values of ctx, trace included, but not its
// cancellation, and gives it finalizeTimeout to complete.
func detachedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
}

var (
	// ErrNotificationFinalized is returned when a finalized notification is changed again.
	ErrNotificationFinalized = errors.New("notification already finalized")

	// ErrNoNextStep is returned when advancing past the last step.
	ErrNoNextStep = errors.New("notification has no further step")
)

// progress drives one notification forward. Steps only move by one, and the
// notification is finalized at most once.
type progress struct {
	display      Display
	notification Notification
}

// startProgress shows a pending notification at step 1.
func startProgress(ctx context.Context, display Display, txHash string, totalSteps int, hasOffchainData bool, pending string) (*progress, error) {
	n := Notification{
		TxHash:          txHash,
		Step:            1,
		TotalSteps:      totalSteps,
		HasOffchainData: hasOffchainData,
		State:           StatePending,
		Message:         pending,
	}

	id, err := display.Show(ctx, n.content(), Options{Type: TypeDefault})
	if err != nil {
		return nil, fmt.Errorf("showing progress notification: %w", err)
	}
	n.ID = id

	return &progress{
		display:      display,
		notification: n,
	}, nil
}

// advance moves to the next step and re-renders the notification.
func (p *progress) advance(ctx context.Context) error {
	if p.notification.State != StatePending {
		return ErrNotificationFinalized
	}

	if p.notification.Step >= p.notification.TotalSteps {
		return ErrNoNextStep
	}

	p.notification.Step++

	content := p.notification.content()
	p.update(ctx, Patch{Content: &content})
	return nil
}

// succeed finalizes the notification as successful.
func (p *progress) succeed(ctx context.Context, msg string) error {
	if p.notification.State != StatePending {
		return ErrNotificationFinalized
	}

	p.notification.State = StateSuccess
	p.notification.Message = msg

	var (
		content      = Content{Text: msg}
		typ          = TypeSuccess
		autoClose    = successAutoClose
		closeOnClick = true
	)
	p.finalize(ctx, Patch{
		Content:      &content,
		Type:         &typ,
		AutoClose:    &autoClose,
		CloseOnClick: &closeOnClick,
	})
	return nil
}

// fail finalizes the notification as failed. The notification keeps the step
// it reached and stays open.
func (p *progress) fail(ctx context.Context, msg string) error {
	if p.notification.State != StatePending {
		return ErrNotificationFinalized
	}

	p.notification.State = StateError
	p.notification.Message = msg

	var (
		content = Content{Text: msg}
		typ     = TypeError
	)
	p.finalize(ctx, Patch{
		Content: &content,
		Type:    &typ,
	})
	return nil
}

// finalize pushes the last patch of the notification. It is sent even when
// ctx is already cancelled, bounded by finalizeTimeout.
func (p *progress) finalize(ctx context.Context, patch Patch) {
	ctx, cancel := detachedContext(ctx)
	defer cancel()

	p.update(ctx, patch)
}

// update pushes a patch to the display. A display failure does not stop the
// flow; the local state stays authoritative.
func (p *progress) update(ctx context.Context, patch Patch) {
	if err := p.display.Update(ctx, p.notification.ID, patch); err != nil {
		logger.Warn(ctx, "failed to update notification",
			"notification.id", p.notification.ID,
			"notification.step", p.notification.Step,
			"notification.state", p.notification.State,
			"error", err,
		)
	}
}
