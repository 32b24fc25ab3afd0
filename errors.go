package mqtrie

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the core trie operations.
var (
	// ErrDuplicateSubscription is returned by a single-value SubscriptionMap's
	// Insert when a value already exists at the given filter.
	ErrDuplicateSubscription = errors.New("mqtrie: duplicate subscription")

	// ErrWildcardInRetainedTopic is returned by RetainedMap.InsertOrUpdate
	// when the topic contains a '+' or '#' character, whether as a whole
	// segment or embedded in a longer one.
	ErrWildcardInRetainedTopic = errors.New("mqtrie: wildcard in retained topic")

	// ErrMalformedFilter is returned when a subscription filter violates
	// MQTT wildcard placement rules (see ValidationError for detail).
	ErrMalformedFilter = errors.New("mqtrie: malformed filter")
)

// ValidationError reports precisely which segment of a filter or topic
// failed validation, so callers can surface a useful rejection message
// instead of just "malformed".
type ValidationError struct {
	// Input is the original filter or topic string that was rejected.
	Input string

	// SegmentIndex is the zero-based index of the offending segment.
	SegmentIndex int

	// Segment is the offending segment's text.
	Segment string

	// Reason is a short, human-readable explanation.
	Reason string

	// Parent is the sentinel error this validation failure maps to
	// (ErrMalformedFilter or ErrWildcardInRetainedTopic).
	Parent error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: segment %d (%q) in %q: %s", e.Parent, e.SegmentIndex, e.Segment, e.Input, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Parent
}

// Is allows errors.Is(err, ErrMalformedFilter) and
// errors.Is(err, ErrWildcardInRetainedTopic) to succeed against a
// *ValidationError without needing to unwrap manually.
func (e *ValidationError) Is(target error) bool {
	return errors.Is(e.Parent, target)
}
