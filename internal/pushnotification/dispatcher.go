package pushnotification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kazz187/techconsole/internal/eventbus"
	"github.com/kazz187/techconsole/internal/vocab"
)

// Dispatcher turns bus events into push notifications.
type Dispatcher struct {
	eventBus *eventbus.Bus
	sender   *Sender
}

func NewDispatcher(eventBus *eventbus.Bus, sender *Sender) *Dispatcher {
	return &Dispatcher{
		eventBus: eventBus,
		sender:   sender,
	}
}

// Start consumes events until ctx is done.
func (d *Dispatcher) Start(ctx context.Context) {
	subID, ch := d.eventBus.Subscribe(256)
	defer d.eventBus.Unsubscribe(subID)

	slog.Info("push notification dispatcher started")
	for {
		select {
		case <-ctx.Done():
			slog.Info("push notification dispatcher stopped")
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if payload := PayloadFor(event); payload != nil {
				d.sender.SendToAll(ctx, payload)
			}
		}
	}
}

// PayloadFor builds the notification of event, or nil when the event is not
// pushed.
func PayloadFor(event *eventbus.Event) *NotificationPayload {
	if event == nil {
		return nil
	}
	switch event.Type {
	case eventbus.EventTaskStatusChanged:
		body := fmt.Sprintf("%s → %s",
			vocab.TaskStatus(event.Metadata["old_status"]).Text,
			vocab.TaskStatus(event.Metadata["new_status"]).Text,
		)
		if name := event.Metadata["category_name"]; name != "" {
			body = name + ": " + body
		}
		return &NotificationPayload{
			Title: fmt.Sprintf("Công việc #%s", event.ResourceID),
			Body:  body,
			URL:   "/tasks/" + event.ResourceID,
			Tag:   "task-" + event.ResourceID,
		}
	case eventbus.EventDigestWritten:
		return &NotificationPayload{
			Title: "Bảng công việc",
			Body:  fmt.Sprintf("Đã xuất bảng công việc ngày %s", event.ResourceID),
			Tag:   "digest-" + event.ResourceID,
		}
	}
	return nil
}
