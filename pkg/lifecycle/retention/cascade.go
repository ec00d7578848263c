package retention

import (
	"context"

	"campusfound/beacon/pkg/docstore"
	"campusfound/beacon/pkg/lifecycle"
	"campusfound/beacon/pkg/lifecycle/lookup"
)

// PurgeResult aggregates the committed work of one cascade.
type PurgeResult struct {
	ConversationsDeleted int
	MessagesDeleted      int
}

// purgeBatch carries one in-flight atomic batch together with the
// counts it will contribute once committed.
type purgeBatch struct {
	batch         docstore.WriteBatch
	messages      int
	conversations int
}

// Purge cascades deletion over the given conversations: for each, every
// referencing message is deleted followed by the conversation record
// itself. Deletes accumulate into atomic batches capped at the
// configured BatchLimit; a full batch is committed and a fresh one
// opened before staging continues, so a conversation with more messages
// than the limit still deletes fully across several commits.
//
// Atomicity holds per committed batch only. A failure processing one
// conversation (its message query failing, a commit failing) is logged
// and skips that work; the result counts only committed deletes.
// Deleting an already-deleted record is a no-op, so any interrupted run
// is safely repeated by the next invocation.
func (c *Cleaner) Purge(ctx context.Context, conversationIDs []string) PurgeResult {
	var result PurgeResult

	limit := c.config.BatchLimit
	if limit <= 0 {
		limit = DefaultConfig().BatchLimit
	}

	current := &purgeBatch{batch: c.store.Batch()}

	// commit flushes the current batch into the result and opens a new
	// one. On failure the batch's staged work is dropped from the
	// counts: it was never applied.
	commit := func() {
		if current.batch.Len() == 0 {
			return
		}
		if err := current.batch.Commit(ctx); err != nil {
			c.logger.Error("batch commit failed, staged deletes dropped",
				"staged_ops", current.batch.Len(),
				"error", err,
			)
		} else {
			result.MessagesDeleted += current.messages
			result.ConversationsDeleted += current.conversations
		}
		current = &purgeBatch{batch: c.store.Batch()}
	}

	// stage adds one delete, committing first if the batch is full.
	stage := func(collection, id string) {
		if current.batch.Len() >= limit {
			commit()
		}
		current.batch.Delete(collection, id)
	}

	for _, conversationID := range conversationIDs {
		docs, err := c.messagesForConversation(ctx, conversationID)
		if err != nil {
			purgeErr := lifecycle.NewPurgeError(conversationID, err)
			c.logger.Error("message query failed, skipping conversation",
				"conversation_id", conversationID,
				"error", purgeErr,
			)
			continue
		}

		for _, doc := range docs {
			stage(lifecycle.CollectionMessages, doc.ID)
			current.messages++
		}
		stage(lifecycle.CollectionConversations, conversationID)
		current.conversations++
	}

	commit()

	if result.ConversationsDeleted > 0 || result.MessagesDeleted > 0 {
		c.logger.Info("cascade purge completed",
			"conversations_deleted", result.ConversationsDeleted,
			"messages_deleted", result.MessagesDeleted,
		)
	}

	return result
}

// messagesForConversation resolves the messages referencing a
// conversation. Like the item relation, the reference exists under two
// spellings in stored data, so resolution goes through ordered lookup
// strategies.
func (c *Cleaner) messagesForConversation(ctx context.Context, conversationID string) ([]docstore.Document, error) {
	messages := c.store.Collection(lifecycle.CollectionMessages)

	return lookup.First(ctx, c.logger, []lookup.Strategy[docstore.Document]{
		{Name: "conversationId", Run: func(ctx context.Context) ([]docstore.Document, error) {
			return messages.Query(ctx, docstore.Where("conversationId", docstore.OpEqual, conversationID))
		}},
		{Name: "legacy conversation_id", Run: func(ctx context.Context) ([]docstore.Document, error) {
			return messages.Query(ctx, docstore.Where("conversation_id", docstore.OpEqual, conversationID))
		}},
	})
}
