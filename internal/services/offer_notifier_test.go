package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"leo-chat/internal/domain/message"
	"leo-chat/internal/repository"
	chat_errors "leo-chat/pkg/errors"
	"leo-chat/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offerMessage(sender, receiver string) message.Message {
	return message.Message{
		ID:               uuid.New(),
		ConversationID:   "C1",
		SenderUsername:   sender,
		ReceiverUsername: receiver,
		HasOffer:         true,
		Offer: message.Offer{
			GigTitle:       "Logo Design",
			Price:          decimal.NewFromInt(50),
			Description:    "Three concepts",
			DeliveryInDays: 5,
		},
	}
}

func TestNewOfferNotification(t *testing.T) {
	n := NewOfferNotification(offerMessage("Alice", "BOB"))

	assert.Equal(t, OfferNotification{
		Sender:         "Alice",
		Amount:         "50",
		BuyerUsername:  "bob",
		SellerUsername: "alice",
		Title:          "Logo Design",
		Description:    "Three concepts",
		DeliveryDays:   "5",
		Template:       "offer",
	}, n)
}

func TestNotifyPublishesOnce(t *testing.T) {
	pub := &fakePublisher{}
	n := NewOfferNotifier(pub, logger.NewNop(), time.Second)

	n.Notify(context.Background(), offerMessage("alice", "bob"))
	n.Wait()

	calls := pub.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "order-notification", calls[0].exchange)
	assert.Equal(t, "order-email", calls[0].routingKey)
	assert.Equal(t, "Order email sent to notification service", calls[0].description)

	var payload OfferNotification
	require.NoError(t, json.Unmarshal([]byte(calls[0].payload), &payload))
	assert.Equal(t, "bob", payload.BuyerUsername)
	assert.Equal(t, "alice", payload.SellerUsername)
	assert.Equal(t, "50", payload.Amount)
	assert.Equal(t, "offer", payload.Template)
}

func TestNotifySkipsMessagesWithoutOffer(t *testing.T) {
	pub := &fakePublisher{}
	n := NewOfferNotifier(pub, logger.NewNop(), time.Second)

	m := offerMessage("alice", "bob")
	m.HasOffer = false
	n.Notify(context.Background(), m)
	n.Wait()

	assert.Empty(t, pub.Calls())
}

func TestNotifyDoesNotWaitForPublish(t *testing.T) {
	pub := &fakePublisher{release: make(chan struct{})}
	n := NewOfferNotifier(pub, logger.NewNop(), time.Second)

	done := make(chan struct{})
	go func() {
		n.Notify(context.Background(), offerMessage("alice", "bob"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on publish")
	}
	assert.Empty(t, pub.Calls())

	close(pub.release)
	n.Wait()
	assert.Len(t, pub.Calls(), 1)
}

func TestNotifyOutlivesCancelledRequest(t *testing.T) {
	pub := &fakePublisher{}
	n := NewOfferNotifier(pub, logger.NewNop(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.Notify(ctx, offerMessage("alice", "bob"))
	n.Wait()

	assert.Len(t, pub.Calls(), 1)
}

func TestNotifyReportsFailures(t *testing.T) {
	pub := &fakePublisher{err: errors.New("stream unavailable")}
	n := NewOfferNotifier(pub, logger.NewNop(), time.Second)

	n.Notify(context.Background(), offerMessage("alice", "bob"))
	n.Wait()

	select {
	case err := <-n.Failures():
		assert.ErrorIs(t, err, chat_errors.ErrNotification)
		assert.Contains(t, err.Error(), "stream unavailable")
	case <-time.After(time.Second):
		t.Fatal("failure not reported")
	}
}

func TestStartDrainsAndStop(t *testing.T) {
	pub := &fakePublisher{err: errors.New("down")}
	n := NewOfferNotifier(pub, logger.NewNop(), time.Second)
	n.Start()

	n.Notify(context.Background(), offerMessage("alice", "bob"))
	n.Stop()

	assert.Len(t, pub.Calls(), 1)
	assert.Len(t, n.Failures(), 0)
}

func TestDirectPersistNotifiesOffer(t *testing.T) {
	p := &fakePublisher{}
	n := NewOfferNotifier(p, logger.NewNop(), time.Second)
	messages := repository.NewMessageRepository(newTestDB(t), n.Notify)

	m := offerMessage("alice", "bob")
	_, err := messages.Persist(context.Background(), &m)
	require.NoError(t, err)
	n.Wait()

	calls := p.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, OrderNotificationExchange, calls[0].exchange)
}
