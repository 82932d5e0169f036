// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail dispatches outgoing messages.

The API never talks SMTP itself. Messages are queued and an external worker
delivers them:

  - [RedisOutbox] pushes JSON messages onto a Redis list (production).
  - [LogSender] writes messages to the structured log (development, tests).
*/
package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Message is a single outgoing email.
type Message struct {
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	From     string    `json:"from"`
	To       []string  `json:"to"`
	QueuedAt time.Time `json:"queued_at"`
}

// Validate checks that the message can be delivered.
func (m Message) Validate() error {
	if m.From == "" {
		return errors.New("mail: sender is required")
	}
	if len(m.To) == 0 {
		return errors.New("mail: at least one recipient is required")
	}
	return nil
}

// Sender delivers or enqueues a message.
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// # Redis Outbox

// RedisOutbox enqueues messages on a Redis list with RPUSH.
type RedisOutbox struct {
	client *redis.Client
	key    string
}

// NewRedisOutbox creates an outbox writing to the list at key.
func NewRedisOutbox(client *redis.Client, key string) *RedisOutbox {
	return &RedisOutbox{client: client, key: key}
}

// Send serializes the message and appends it to the outbox list.
func (outbox *RedisOutbox) Send(ctx context.Context, message Message) error {
	if err := message.Validate(); err != nil {
		return err
	}
	if message.QueuedAt.IsZero() {
		message.QueuedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("mail: encode message: %w", err)
	}

	if err := outbox.client.RPush(ctx, outbox.key, payload).Err(); err != nil {
		return fmt.Errorf("mail: enqueue to %s: %w", outbox.key, err)
	}
	return nil
}

// Pending returns the number of queued messages.
func (outbox *RedisOutbox) Pending(ctx context.Context) (int64, error) {
	count, err := outbox.client.LLen(ctx, outbox.key).Result()
	if err != nil {
		return 0, fmt.Errorf("mail: outbox length: %w", err)
	}
	return count, nil
}

// # Log Sender

// LogSender writes messages to a logger instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that logs at info level.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message, including its body.
func (sender *LogSender) Send(ctx context.Context, message Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	sender.logger.InfoContext(ctx, "mail_sent",
		slog.String("subject", message.Subject),
		slog.String("from", message.From),
		slog.Any("to", message.To),
		slog.String("body", message.Body),
	)
	return nil
}
