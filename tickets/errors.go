package tickets

import (
	"errors"
	"fmt"

	"fivem-community/types"
)

var (
	// ErrAlreadyClosed is returned when closing a ticket that is not open.
	ErrAlreadyClosed = errors.New("ticket is already closed")

	// ErrTicketNotFound is returned when the channel has no ticket record.
	ErrTicketNotFound = errors.New("no ticket for this channel")
)

// ConfigurationMissingError means the destination category for a ticket kind
// has not been set up yet. The fix is an admin running setupcategory.
type ConfigurationMissingError struct {
	Kind types.CategoryKind
}

func (e *ConfigurationMissingError) Error() string {
	return fmt.Sprintf("no category configured for ticket kind %q", e.Kind)
}

// DuplicateOpenTicketError means the user already has an open ticket. It
// carries the existing channel so the caller can redirect the user there.
type DuplicateOpenTicketError struct {
	ChannelID string
}

func (e *DuplicateOpenTicketError) Error() string {
	return fmt.Sprintf("user already has an open ticket in channel %s", e.ChannelID)
}

// PlatformError wraps a Discord API refusal. It is surfaced verbatim, there
// are no retries.
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("discord rejected %s: %v", e.Op, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}
