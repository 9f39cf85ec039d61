package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ai-tutorial/internal/llm"
)

const (
	conversationKeyPrefix  = "conversation:"
	defaultConversationTTL = 24 * time.Hour
)

// MemoryRepository stores chat conversation history keyed by conversation ID.
type MemoryRepository interface {
	Append(ctx context.Context, conversationID string, messages ...llm.Message) error
	History(ctx context.Context, conversationID string) ([]llm.Message, error)
	Clear(ctx context.Context, conversationID string) error
}

// RedisMemoryRepository implements MemoryRepository on a Redis list per
// conversation with a sliding TTL.
type RedisMemoryRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMemoryRepository(client *redis.Client) *RedisMemoryRepository {
	return &RedisMemoryRepository{client: client, ttl: defaultConversationTTL}
}

func conversationKey(conversationID string) string {
	return conversationKeyPrefix + conversationID
}

// Append pushes messages onto the conversation list and refreshes its TTL.
func (r *RedisMemoryRepository) Append(ctx context.Context, conversationID string, messages ...llm.Message) error {
	if len(messages) == 0 {
		return nil
	}

	values := make([]interface{}, len(messages))
	for i, msg := range messages {
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("failed to marshal message: %w", err)
		}
		values[i] = data
	}

	key := conversationKey(conversationID)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append conversation history: %w", err)
	}
	return nil
}

// History returns the full conversation in insertion order. A missing
// conversation yields an empty history.
func (r *RedisMemoryRepository) History(ctx context.Context, conversationID string) ([]llm.Message, error) {
	entries, err := r.client.LRange(ctx, conversationKey(conversationID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation history: %w", err)
	}

	messages := make([]llm.Message, 0, len(entries))
	for _, entry := range entries {
		var msg llm.Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Clear removes the conversation.
func (r *RedisMemoryRepository) Clear(ctx context.Context, conversationID string) error {
	if err := r.client.Del(ctx, conversationKey(conversationID)).Err(); err != nil {
		return fmt.Errorf("failed to clear conversation: %w", err)
	}
	return nil
}
