package lifecycle

import "fmt"

// FanoutError represents a single user's notification write failing
// during fan-out. One failed write never aborts the remaining
// evaluations; the error is logged and carried in the write results.
type FanoutError struct {
	UserID string // subscriber whose write failed
	ItemID string // item being fanned out
	Cause  error  // underlying error
}

// Error implements the error interface.
func (e *FanoutError) Error() string {
	return fmt.Sprintf("fanout error [user_id=%s, item_id=%s]: %v", e.UserID, e.ItemID, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *FanoutError) Unwrap() error {
	return e.Cause
}

// NewFanoutError creates a new FanoutError.
func NewFanoutError(userID, itemID string, cause error) *FanoutError {
	return &FanoutError{
		UserID: userID,
		ItemID: itemID,
		Cause:  cause,
	}
}

// PurgeError represents one conversation's purge failing in isolation.
// The cleanup run continues with the remaining conversations; the final
// summary counts only completed work.
type PurgeError struct {
	ConversationID string // conversation whose purge failed
	Cause          error  // underlying error
}

// Error implements the error interface.
func (e *PurgeError) Error() string {
	return fmt.Sprintf("purge error [conversation_id=%s]: %v", e.ConversationID, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *PurgeError) Unwrap() error {
	return e.Cause
}

// NewPurgeError creates a new PurgeError.
func NewPurgeError(conversationID string, cause error) *PurgeError {
	return &PurgeError{
		ConversationID: conversationID,
		Cause:          cause,
	}
}
