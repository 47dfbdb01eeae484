package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"leo-chat/internal/domain/message"
	"leo-chat/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repository.InitSchema(db))
	return db
}

type emitCall struct {
	event   string
	message message.Message
}

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls []emitCall
	err   error
}

func (f *fakeBroadcaster) Emit(ctx context.Context, event string, m message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, emitCall{event: event, message: m})
	return f.err
}

func (f *fakeBroadcaster) Calls() []emitCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]emitCall(nil), f.calls...)
}

type publishCall struct {
	exchange    string
	routingKey  string
	payload     string
	description string
}

type fakePublisher struct {
	mu      sync.Mutex
	calls   []publishCall
	err     error
	release chan struct{}
}

func (f *fakePublisher) Publish(ctx context.Context, exchange, routingKey, payload, description string) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, publishCall{exchange, routingKey, payload, description})
	return f.err
}

func (f *fakePublisher) Calls() []publishCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]publishCall(nil), f.calls...)
}
