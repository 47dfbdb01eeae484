package repository

import (
	"bytes"
	"context"
	"sort"
	"time"

	"leo-chat/internal/domain/message"
	chat_errors "leo-chat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// conversationListColumns is the projection returned by LatestPerConversation.
// The offer sub-record is not part of the conversation list.
var conversationListColumns = []string{
	"id", "conversation_id", "seller_id", "buyer_id",
	"sender_username", "sender_picture", "receiver_username", "receiver_picture",
	"body", "file", "file_type", "file_size", "file_name", "gig_id",
	"is_read", "has_offer", "created_at",
}

// PersistHook runs after a message row has been committed. It must not block.
type PersistHook func(ctx context.Context, m message.Message)

type PostgresMessageRepository struct {
	db    *gorm.DB
	now   func() time.Time
	hooks []PersistHook
}

func NewMessageRepository(db *gorm.DB, hooks ...PersistHook) MessageRepository {
	return NewMessageRepositoryWithClock(db, time.Now, hooks...)
}

func NewMessageRepositoryWithClock(db *gorm.DB, now func() time.Time, hooks ...PersistHook) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db, now: now, hooks: hooks}
}

func (r *PostgresMessageRepository) Persist(ctx context.Context, m *message.Message) (message.Message, error) {
	if err := m.Validate(); err != nil {
		return message.Message{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return message.Message{}, chat_errors.Storage(err)
	}
	m.ID = id
	m.CreatedAt = stamp(r.now)

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return message.Message{}, mapStorageError(err)
	}
	for _, hook := range r.hooks {
		hook(ctx, *m)
	}
	return *m, nil
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (message.Message, error) {
	var m message.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return message.Message{}, mapStorageError(err)
	}
	return m, nil
}

func (r *PostgresMessageRepository) MessagesBetween(ctx context.Context, sender, receiver string) ([]message.Message, error) {
	messages := []message.Message{}
	err := r.db.WithContext(ctx).
		Scopes(betweenUsers(sender, receiver), chronological).
		Find(&messages).Error
	if err != nil {
		return nil, mapStorageError(err)
	}
	return messages, nil
}

func (r *PostgresMessageRepository) MessagesInConversation(ctx context.Context, conversationID string) ([]message.Message, error) {
	messages := []message.Message{}
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Scopes(chronological).
		Find(&messages).Error
	if err != nil {
		return nil, mapStorageError(err)
	}
	return messages, nil
}

// latestCandidate carries only the columns needed to pick a conversation's latest message.
type latestCandidate struct {
	ID             uuid.UUID
	ConversationID string
	CreatedAt      time.Time
}

// newerThan orders by creation time, then by id, both descending.
func (c latestCandidate) newerThan(o latestCandidate) bool {
	if !c.CreatedAt.Equal(o.CreatedAt) {
		return c.CreatedAt.After(o.CreatedAt)
	}
	return bytes.Compare(c.ID[:], o.ID[:]) > 0
}

// latestByConversation groups candidates by conversation id and keeps the newest of each group.
func latestByConversation(candidates []latestCandidate) map[string]latestCandidate {
	winners := make(map[string]latestCandidate)
	for _, c := range candidates {
		best, ok := winners[c.ConversationID]
		if !ok || c.newerThan(best) {
			winners[c.ConversationID] = c
		}
	}
	return winners
}

// LatestPerConversation returns the newest message of every conversation username takes part in,
// most recent conversation first.
func (r *PostgresMessageRepository) LatestPerConversation(ctx context.Context, username string) ([]message.Message, error) {
	var candidates []latestCandidate
	err := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Select("id", "conversation_id", "created_at").
		Where("(sender_username = ? OR receiver_username = ?)", username, username).
		Scan(&candidates).Error
	if err != nil {
		return nil, mapStorageError(err)
	}

	winners := latestByConversation(candidates)
	messages := []message.Message{}
	if len(winners) == 0 {
		return messages, nil
	}

	ids := make([]uuid.UUID, 0, len(winners))
	for _, c := range winners {
		ids = append(ids, c.ID)
	}
	err = r.db.WithContext(ctx).
		Select(conversationListColumns).
		Where("id IN ?", ids).
		Find(&messages).Error
	if err != nil {
		return nil, mapStorageError(err)
	}

	sort.Slice(messages, func(i, j int) bool {
		a := latestCandidate{ID: messages[i].ID, CreatedAt: messages[i].CreatedAt}
		b := latestCandidate{ID: messages[j].ID, CreatedAt: messages[j].CreatedAt}
		return a.newerThan(b)
	})
	return messages, nil
}

func (r *PostgresMessageRepository) SetOfferFlag(ctx context.Context, id uuid.UUID, flag message.OfferFlag) (message.Message, error) {
	column := flag.Column()
	if column == "" {
		return message.Message{}, chat_errors.Invalid("unknown offer flag %q", string(flag))
	}
	return r.setTrue(ctx, id, column)
}

func (r *PostgresMessageRepository) MarkRead(ctx context.Context, id uuid.UUID) (message.Message, error) {
	return r.setTrue(ctx, id, "is_read")
}

// setTrue flips a single boolean column of one message. Setting a column that is
// already true is a successful no-op, and no statement ever writes false.
func (r *PostgresMessageRepository) setTrue(ctx context.Context, id uuid.UUID, column string) (message.Message, error) {
	err := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Where("id = ?", id).
		Update(column, true).Error
	if err != nil {
		return message.Message{}, mapStorageError(err)
	}
	return r.GetByID(ctx, id)
}

// MarkAllReadBetween marks every unread message sent by sender to receiver as read, then
// loads targetID. Messages flowing from receiver to sender are untouched, and targetID does
// not have to belong to the updated set. The two statements do not share a transaction.
func (r *PostgresMessageRepository) MarkAllReadBetween(ctx context.Context, sender, receiver string, targetID uuid.UUID) (message.Message, error) {
	err := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Where("sender_username = ? AND receiver_username = ? AND is_read = ?", sender, receiver, false).
		Update("is_read", true).Error
	if err != nil {
		return message.Message{}, mapStorageError(err)
	}
	return r.GetByID(ctx, targetID)
}
