// Package lifecycle contains the shared domain model for Beacon's
// background lifecycle engines.
//
// # Overview
//
// Beacon is the background half of a campus lost-and-found marketplace:
// when a new item is reported, the match engine fans the event out into
// per-subscriber notifications; on a schedule, the retention engine
// purges resolved and stale conversations together with their messages.
//
// This package holds what those engines share:
//
//   - The canonical record types (Item, Preference, Notification,
//     Conversation, Message) and their collection names
//   - Tolerant field readers that absorb the schema drift present in
//     stored records
//   - The error types for per-unit failures (FanoutError, PurgeError)
//
// # Record Ownership
//
// The engines are deliberately narrow in what they touch. Items and
// preferences are read-only here. Notifications are created by the
// match engine and never touched by cleanup. Conversations and
// messages are destroyed only by the retention engine's cascade, which
// is the sole guarantor that no message outlives its conversation;
// the store enforces no referential integrity of its own.
package lifecycle
