// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/mail"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

// memoryUsers is an in-memory [auth.UserRepository].
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*auth.User{}}
}

func (repo *memoryUsers) find(match func(*auth.User) bool) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range repo.users {
		if match(user) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	return repo.find(func(user *auth.User) bool { return user.ID == id })
}

func (repo *memoryUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return repo.find(func(user *auth.User) bool { return user.Username == username })
}

func (repo *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return repo.find(func(user *auth.User) bool { return user.Email == email })
}

func (repo *memoryUsers) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("duplicate user")
		}
	}
	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *memoryUsers) ConsumeLogin(_ context.Context, id string, previous *time.Time, at time.Time) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return false, nil
	}

	switch {
	case previous == nil && user.LastLoginAt != nil:
		return false, nil
	case previous != nil && (user.LastLoginAt == nil || !user.LastLoginAt.Equal(*previous)):
		return false, nil
	}

	stamped := at
	user.LastLoginAt = &stamped
	return true, nil
}

// recordingSender captures outgoing mail.
type recordingSender struct {
	mu       sync.Mutex
	messages []mail.Message
	err      error
}

func (sender *recordingSender) Send(_ context.Context, message mail.Message) error {
	sender.mu.Lock()
	defer sender.mu.Unlock()

	if sender.err != nil {
		return sender.err
	}
	sender.messages = append(sender.messages, message)
	return nil
}

func (sender *recordingSender) last() mail.Message {
	sender.mu.Lock()
	defer sender.mu.Unlock()
	return sender.messages[len(sender.messages)-1]
}

// stubTokens returns a deterministic token per subject.
type stubTokens struct{}

func (stubTokens) GenerateAccessToken(userID, username, role string, _ time.Duration) (string, error) {
	return "token:" + username + ":" + role, nil
}
