package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gabapcia/txprogress/internal/txprogress"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// ErrNotificationNotFound is returned when updating a notification that does
// not exist or has expired.
var ErrNotificationNotFound = errors.New("notification not found")

const (
	// notificationPrefix is the base key prefix of stored notifications.
	notificationPrefix = "notification"

	// notificationEventsChannel receives every show and update.
	notificationEventsChannel = "notification:events"

	// notificationTTL bounds how long a notification is kept after its last change.
	notificationTTL = 24 * time.Hour
)

const (
	actionShow   = "show"
	actionUpdate = "update"
)

// notificationKey returns the Redis key of the notification with the given id.
//
// Format: "notification:{id}"
func notificationKey(id string) string {
	return fmt.Sprintf("%s:%s", notificationPrefix, id)
}

// notificationEvent is the message published on notificationEventsChannel.
// Fields left nil did not change.
type notificationEvent struct {
	ID           string                       `json:"id"`
	Action       string                       `json:"action"`
	Content      *txprogress.Content          `json:"content,omitempty"`
	Type         *txprogress.NotificationType `json:"type,omitempty"`
	AutoCloseMs  *int64                       `json:"autoCloseMs,omitempty"`
	CloseOnClick *bool                        `json:"closeOnClick,omitempty"`
}

// fields returns the hash fields written for the event.
func (e notificationEvent) fields() (map[string]any, error) {
	fields := make(map[string]any, 5)

	if e.Content != nil {
		content, err := json.Marshal(e.Content)
		if err != nil {
			return nil, err
		}

		fields["content"] = string(content)
		fields["text"] = e.Content.Render()
	}

	if e.Type != nil {
		fields["type"] = string(*e.Type)
	}

	if e.AutoCloseMs != nil {
		fields["auto_close_ms"] = strconv.FormatInt(*e.AutoCloseMs, 10)
	}

	if e.CloseOnClick != nil {
		fields["close_on_click"] = strconv.FormatBool(*e.CloseOnClick)
	}

	return fields, nil
}

// write queues the event fields, a TTL refresh and the event publication on
// pipe.
func (c *client) write(ctx context.Context, pipe redis.Pipeliner, event notificationEvent) error {
	fields, err := event.fields()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	key := notificationKey(event.ID)
	if len(fields) > 0 {
		pipe.HSet(ctx, key, fields)
	}
	pipe.Expire(ctx, key, notificationTTL)
	pipe.Publish(ctx, notificationEventsChannel, payload)
	return nil
}

// Show implements the txprogress.Display interface. It stores a new
// notification under a random id and publishes it.
func (c *client) Show(ctx context.Context, content txprogress.Content, opts txprogress.Options) (string, error) {
	var (
		id           = uuid.NewString()
		autoCloseMs  = opts.AutoClose.Milliseconds()
		closeOnClick = opts.CloseOnClick
		typ          = opts.Type
	)

	event := notificationEvent{
		ID:           id,
		Action:       actionShow,
		Content:      &content,
		Type:         &typ,
		AutoCloseMs:  &autoCloseMs,
		CloseOnClick: &closeOnClick,
	}

	_, err := c.conn.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		return c.write(ctx, pipe, event)
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// Update implements the txprogress.Display interface. It applies patch to a
// stored notification and publishes the change.
//
// The key is watched while its existence is checked, so a notification that
// expires meanwhile makes the transaction fail instead of being recreated as
// a partial hash.
func (c *client) Update(ctx context.Context, id string, patch txprogress.Patch) error {
	event := notificationEvent{
		ID:           id,
		Action:       actionUpdate,
		Content:      patch.Content,
		Type:         patch.Type,
		CloseOnClick: patch.CloseOnClick,
	}

	if patch.AutoClose != nil {
		autoCloseMs := patch.AutoClose.Milliseconds()
		event.AutoCloseMs = &autoCloseMs
	}

	key := notificationKey(id)
	return c.conn.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}

		if exists == 0 {
			return fmt.Errorf("%w: %s", ErrNotificationNotFound, id)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return c.write(ctx, pipe, event)
		})
		return err
	}, key)
}

// Compile-time assertion to ensure *client satisfies the txprogress.Display interface
var _ txprogress.Display = new(client)
