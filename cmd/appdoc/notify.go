package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/strogmv/appdoc/internal/domain"
	"github.com/strogmv/appdoc/internal/port"
)

type notifyArgs struct {
	channels []string
	async    bool
	msg      port.NotificationMessage
}

func parseNotifyArgs(args []string) (notifyArgs, error) {
	fs := flag.NewFlagSet("notify", flag.ContinueOnError)
	channel := fs.String("channel", "", "comma separated channels, defaults to NOTIFY_DEFAULT_CHANNELS")
	to := fs.String("to", "", "recipient, required for sms")
	title := fs.String("title", "", "message title")
	body := fs.String("body", "", "message body")
	event := fs.String("event", "manual", "event name recorded with the message")
	async := fs.Bool("async", false, "publish to NATS instead of sending directly")
	if err := fs.Parse(args); err != nil {
		return notifyArgs{}, err
	}
	if strings.TrimSpace(*body) == "" {
		return notifyArgs{}, errors.New("-body is required")
	}

	var channels []string
	for _, ch := range strings.Split(*channel, ",") {
		if ch = strings.TrimSpace(ch); ch != "" {
			channels = append(channels, ch)
		}
	}
	return notifyArgs{
		channels: channels,
		async:    *async,
		msg: port.NotificationMessage{
			Event: *event,
			To:    *to,
			Title: *title,
			Body:  *body,
		},
	}, nil
}

func runNotify(args []string) error {
	na, err := parseNotifyArgs(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	c, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if na.async {
		if c.Events == nil {
			return errors.New("-async requires NATS_URL")
		}
		return c.Events.PublishNotification(c.Config.NATSSubject, domain.NotificationRequested{
			Event:    na.msg.Event,
			Channels: na.channels,
			To:       na.msg.To,
			Title:    na.msg.Title,
			Body:     na.msg.Body,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, c.Config.RequestTimeout*3)
	defer cancel()
	if err := c.SvcDispatcher.Dispatch(ctx, na.msg, na.channels...); err != nil {
		return err
	}
	fmt.Println("notification sent")
	return nil
}
