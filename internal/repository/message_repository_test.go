package repository

import (
	"context"
	"testing"
	"time"

	"leo-chat/internal/domain/message"
	chat_errors "leo-chat/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messageFixture struct {
	repo  *PostgresMessageRepository
	clock *testClock
}

func newMessageFixture(t *testing.T) *messageFixture {
	clock := newTestClock()
	return &messageFixture{
		repo:  NewMessageRepositoryWithClock(newTestDB(t), clock.Now),
		clock: clock,
	}
}

// send persists a message and moves the clock forward by step.
func (f *messageFixture) send(t *testing.T, conversationID, sender, receiver, body string, step time.Duration) message.Message {
	t.Helper()
	m, err := f.repo.Persist(context.Background(), &message.Message{
		ConversationID:   conversationID,
		SenderUsername:   sender,
		ReceiverUsername: receiver,
		Body:             body,
	})
	require.NoError(t, err)
	f.clock.Advance(step)
	return m
}

func ids(messages []message.Message) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.ID)
	}
	return out
}

func TestPersistAssignsIdentityAndTime(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	stored, err := f.repo.Persist(ctx, &message.Message{
		ConversationID:   "c1",
		SenderUsername:   "alice",
		ReceiverUsername: "bob",
		Body:             "offer inside",
		HasOffer:         true,
		Offer: message.Offer{
			GigTitle:       "Logo Design",
			Price:          decimal.NewFromInt(50),
			Description:    "three concepts",
			DeliveryInDays: 4,
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, stored.ID)
	assert.True(t, stored.CreatedAt.Equal(f.clock.Now()))

	loaded, err := f.repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Logo Design", loaded.Offer.GigTitle)
	assert.True(t, loaded.Offer.Price.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 4, loaded.Offer.DeliveryInDays)
	assert.False(t, loaded.IsRead)
	assert.False(t, loaded.Offer.Accepted)
}

func TestPersistRejectsMalformedMessage(t *testing.T) {
	f := newMessageFixture(t)

	_, err := f.repo.Persist(context.Background(), &message.Message{SenderUsername: "alice"})
	assert.ErrorIs(t, err, chat_errors.ErrInvalidInput)
}

func TestGetByIDNotFound(t *testing.T) {
	f := newMessageFixture(t)

	_, err := f.repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, chat_errors.ErrNotFound)
}

func TestMessagesBetweenIsSymmetricAndChronological(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	m1 := f.send(t, "c1", "alice", "bob", "hi", time.Second)
	m2 := f.send(t, "c1", "bob", "alice", "hey", 0)
	m3 := f.send(t, "c1", "alice", "bob", "same instant", time.Second)
	f.send(t, "c2", "alice", "carol", "elsewhere", time.Second)

	forward, err := f.repo.MessagesBetween(ctx, "alice", "bob")
	require.NoError(t, err)
	backward, err := f.repo.MessagesBetween(ctx, "bob", "alice")
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{m1.ID, m2.ID, m3.ID}, ids(forward))
	assert.Equal(t, ids(forward), ids(backward))
}

func TestMessagesInConversation(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	m1 := f.send(t, "c1", "alice", "bob", "one", time.Second)
	f.send(t, "c2", "alice", "carol", "other", time.Second)
	m2 := f.send(t, "c1", "bob", "alice", "two", time.Second)

	messages, err := f.repo.MessagesInConversation(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{m1.ID, m2.ID}, ids(messages))

	empty, err := f.repo.MessagesInConversation(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestLatestPerConversationPicksNewest(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	f.send(t, "C1", "alice", "bob", "t1", time.Second)
	f.send(t, "C1", "bob", "alice", "t2", time.Second)
	other := f.send(t, "C2", "carol", "alice", "carol", time.Second)
	t3 := f.send(t, "C1", "alice", "bob", "t3", time.Second)

	for _, user := range []string{"alice", "bob"} {
		latest, err := f.repo.LatestPerConversation(ctx, user)
		require.NoError(t, err)

		byConversation := map[string]message.Message{}
		for _, m := range latest {
			byConversation[m.ConversationID] = m
		}
		assert.Equal(t, t3.ID, byConversation["C1"].ID, user)
		assert.Equal(t, "t3", byConversation["C1"].Body, user)
	}

	latest, err := f.repo.LatestPerConversation(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{t3.ID, other.ID}, ids(latest))

	bob, err := f.repo.LatestPerConversation(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bob, 1)
}

func TestLatestPerConversationBreaksTiesByHighestID(t *testing.T) {
	f := newMessageFixture(t)

	first := f.send(t, "C1", "alice", "bob", "first", 0)
	second := f.send(t, "C1", "bob", "alice", "second", 0)
	require.True(t, first.CreatedAt.Equal(second.CreatedAt))

	want := first.ID
	if string(second.ID[:]) > string(first.ID[:]) {
		want = second.ID
	}

	latest, err := f.repo.LatestPerConversation(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, want, latest[0].ID)
}

func TestLatestPerConversationOmitsOffer(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	_, err := f.repo.Persist(ctx, &message.Message{
		ConversationID:   "C1",
		SenderUsername:   "alice",
		ReceiverUsername: "bob",
		HasOffer:         true,
		Offer:            message.Offer{GigTitle: "Logo Design", Price: decimal.NewFromInt(50), DeliveryInDays: 3},
	})
	require.NoError(t, err)

	latest, err := f.repo.LatestPerConversation(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.True(t, latest[0].HasOffer)
	assert.Empty(t, latest[0].Offer.GigTitle)
}

func TestLatestPerConversationUnknownUser(t *testing.T) {
	f := newMessageFixture(t)
	f.send(t, "C1", "alice", "bob", "hi", time.Second)

	latest, err := f.repo.LatestPerConversation(context.Background(), "mallory")
	require.NoError(t, err)
	assert.NotNil(t, latest)
	assert.Empty(t, latest)
}

func TestLatestByConversation(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	low := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	high := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	newest := uuid.MustParse("00000000-0000-0000-0000-000000000003")

	winners := latestByConversation([]latestCandidate{
		{ID: high, ConversationID: "a", CreatedAt: base},
		{ID: low, ConversationID: "a", CreatedAt: base},
		{ID: newest, ConversationID: "b", CreatedAt: base.Add(time.Minute)},
		{ID: low, ConversationID: "b", CreatedAt: base},
	})

	require.Len(t, winners, 2)
	assert.Equal(t, high, winners["a"].ID)
	assert.Equal(t, newest, winners["b"].ID)
}

func TestSetOfferFlagIsMonotonic(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()
	m := f.send(t, "C1", "alice", "bob", "offer", time.Second)

	updated, err := f.repo.SetOfferFlag(ctx, m.ID, message.OfferAccepted)
	require.NoError(t, err)
	assert.True(t, updated.Offer.Accepted)

	again, err := f.repo.SetOfferFlag(ctx, m.ID, message.OfferAccepted)
	require.NoError(t, err)
	assert.True(t, again.Offer.Accepted)

	extended, err := f.repo.SetOfferFlag(ctx, m.ID, message.OfferExtended)
	require.NoError(t, err)
	assert.True(t, extended.Offer.Accepted)
	assert.True(t, extended.Offer.Extended)
	assert.False(t, extended.Offer.Declined)
}

func TestSetOfferFlagErrors(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()
	m := f.send(t, "C1", "alice", "bob", "offer", time.Second)

	_, err := f.repo.SetOfferFlag(ctx, uuid.New(), message.OfferAccepted)
	assert.ErrorIs(t, err, chat_errors.ErrNotFound)

	_, err = f.repo.SetOfferFlag(ctx, m.ID, message.OfferFlag("paid"))
	assert.ErrorIs(t, err, chat_errors.ErrInvalidInput)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()
	m := f.send(t, "C1", "alice", "bob", "hi", time.Second)

	first, err := f.repo.MarkRead(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, first.IsRead)

	second, err := f.repo.MarkRead(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, second.IsRead)

	_, err = f.repo.MarkRead(ctx, uuid.New())
	assert.ErrorIs(t, err, chat_errors.ErrNotFound)
}

func TestMarkAllReadBetweenIsDirectional(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	m1 := f.send(t, "C1", "alice", "bob", "a->b 1", time.Second)
	m2 := f.send(t, "C1", "bob", "alice", "b->a", time.Second)
	m3 := f.send(t, "C1", "alice", "bob", "a->b 2", time.Second)
	m4 := f.send(t, "C2", "alice", "carol", "a->c", time.Second)

	returned, err := f.repo.MarkAllReadBetween(ctx, "alice", "bob", m2.ID)
	require.NoError(t, err)
	assert.Equal(t, m2.ID, returned.ID)
	assert.False(t, returned.IsRead)

	for _, tc := range []struct {
		id   uuid.UUID
		read bool
	}{{m1.ID, true}, {m2.ID, false}, {m3.ID, true}, {m4.ID, false}} {
		got, err := f.repo.GetByID(ctx, tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.read, got.IsRead, got.Body)
	}
}

func TestMarkAllReadBetweenMissingTarget(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()
	m := f.send(t, "C1", "alice", "bob", "hi", time.Second)

	_, err := f.repo.MarkAllReadBetween(ctx, "alice", "bob", uuid.New())
	assert.ErrorIs(t, err, chat_errors.ErrNotFound)

	got, err := f.repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)
}

func TestPersistRunsHooksAfterCommit(t *testing.T) {
	var seen []message.Message
	hook := func(ctx context.Context, m message.Message) { seen = append(seen, m) }
	repo := NewMessageRepositoryWithClock(newTestDB(t), newTestClock().Now, hook)

	stored, err := repo.Persist(context.Background(), &message.Message{
		ConversationID:   "c1",
		SenderUsername:   "alice",
		ReceiverUsername: "bob",
		HasOffer:         true,
		Offer:            message.Offer{GigTitle: "Logo", Price: decimal.NewFromInt(40), DeliveryInDays: 2},
	})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, stored.ID, seen[0].ID)
	assert.True(t, seen[0].HasOffer)

	_, err = repo.Persist(context.Background(), &message.Message{SenderUsername: "alice"})
	require.ErrorIs(t, err, chat_errors.ErrInvalidInput)
	assert.Len(t, seen, 1)
}
