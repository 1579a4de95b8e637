package helpers

import (
	"log/slog"
	"sync/atomic"

	"quizbot/core/logger"
	"quizbot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var dispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher installs the process-wide outbound dispatcher.
func SetDispatcher(d *sender.Dispatcher) {
	dispatcher.Store(d)
}

// sendAsync enqueues the send when a dispatcher is installed, otherwise runs inline.
func sendAsync(c tele.Context, name string, do func() error) error {
	d := dispatcher.Load()
	if d == nil {
		return do()
	}
	ctx := BuildContext(c)
	err := d.Enqueue(sender.Task{Ctx: ctx, Name: name, Do: do})
	if err != nil {
		logger.LogEvent(ctx, logger.TG, slog.LevelWarn, "send.enqueue_fail",
			slog.String("op", name),
			slog.String("err", err.Error()),
		)
		return do()
	}
	return nil
}

// SendText sends a plain-text reply to the update's chat.
func SendText(c tele.Context, text string, opts ...interface{}) error {
	return sendAsync(c, "send_text", func() error {
		return c.Send(text, opts...)
	})
}

// EditText edits the callback's origin message in place.
func EditText(c tele.Context, text string, opts ...interface{}) error {
	return sendAsync(c, "edit_text", func() error {
		return c.Edit(text, opts...)
	})
}

// EditOrSend edits the origin message when the update is a callback,
// falling back to a fresh send otherwise.
func EditOrSend(c tele.Context, text string, opts ...interface{}) error {
	if c.Callback() == nil {
		return SendText(c, text, opts...)
	}
	return sendAsync(c, "edit_or_send", func() error {
		if err := c.Edit(text, opts...); err != nil {
			return c.Send(text, opts...)
		}
		return nil
	})
}
