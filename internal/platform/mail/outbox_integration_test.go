// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package mail_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/yamdb/internal/platform/mail"
)

/*
TestRedisOutbox_Integration verifies that messages land on the outbox list.
*/
func TestRedisOutbox_Integration(t *testing.T) {
	ctx := context.Background()

	// 1. Start Redis
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })

	// 2. Enqueue
	outbox := mail.NewRedisOutbox(client, "test:outbox")
	require.NoError(t, outbox.Send(ctx, mail.Message{
		Subject: "YamDB confirmation code",
		Body:    "abc",
		From:    "YA@yamdb.ru",
		To:      []string{"a@x.com"},
	}))

	pending, err := outbox.Pending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)

	// 3. Read back what a worker would see
	raw, err := client.LPop(ctx, "test:outbox").Result()
	require.NoError(t, err)

	var message mail.Message
	require.NoError(t, json.Unmarshal([]byte(raw), &message))
	assert.Equal(t, []string{"a@x.com"}, message.To)
	assert.False(t, message.QueuedAt.IsZero())
}
