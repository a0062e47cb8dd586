package txprogress

import (
	"context"
	"fmt"
	"time"
)

// NotificationType selects how a notification is styled by the display system.
type NotificationType string

const (
	TypeDefault NotificationType = "default"
	TypeSuccess NotificationType = "success"
	TypeError   NotificationType = "error"
)

// State is the lifecycle state of a tracked notification.
type State string

const (
	StatePending State = "pending"
	StateSuccess State = "success"
	StateError   State = "error"
)

const (
	// successAutoClose is how long a finalized success notification stays up.
	successAutoClose = 5 * time.Second

	// defaultAutoClose is used by standalone notifications.
	defaultAutoClose = 5 * time.Second
)

// stepLabels describes what the flow is waiting on at each step.
var stepLabels = map[int]string{
	1: "Waiting for transaction validation",
	2: "Indexing on-chain data",
	3: "Indexing off-chain data",
}

// Content is what a notification shows: either the progress of a transaction
// (TxHash and Step set) or a plain Text message.
type Content struct {
	TxHash          string `json:"txHash,omitempty"`
	Step            int    `json:"step,omitempty"`
	TotalSteps      int    `json:"totalSteps,omitempty"`
	HasOffchainData bool   `json:"hasOffchainData"`
	Text            string `json:"text,omitempty"`
}

// Render returns a single line describing the content.
func (c Content) Render() string {
	if c.Step == 0 {
		return c.Text
	}

	line := fmt.Sprintf("[%d/%d] %s (tx %s)", c.Step, c.TotalSteps, stepLabels[c.Step], c.TxHash)
	if c.Text != "" {
		line = c.Text + " " + line
	}
	return line
}

// Options configure a notification when it is first shown.
// A zero AutoClose keeps the notification open until dismissed.
type Options struct {
	Type         NotificationType
	AutoClose    time.Duration
	CloseOnClick bool
}

// Patch changes an existing notification. Nil fields are left untouched.
type Patch struct {
	Content      *Content
	Type         *NotificationType
	AutoClose    *time.Duration
	CloseOnClick *bool
}

// Display is the notification display system a flow reports to.
type Display interface {
	// Show displays a new notification and returns its id.
	Show(ctx context.Context, content Content, opts Options) (string, error)

	// Update changes the notification with the given id.
	Update(ctx context.Context, id string, patch Patch) error
}

// Notification is the flow-side view of a progress notification.
type Notification struct {
	ID              string
	TxHash          string
	Step            int
	TotalSteps      int
	HasOffchainData bool
	State           State
	Message         string
}

func (n Notification) content() Content {
	return Content{
		TxHash:          n.TxHash,
		Step:            n.Step,
		TotalSteps:      n.TotalSteps,
		HasOffchainData: n.HasOffchainData,
		Text:            n.Message,
	}
}
