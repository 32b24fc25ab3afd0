package mqtrie

import "strings"

// splitTopic splits a topic or filter string on '/' into its segments,
// preserving empty segments: "a//b" -> ["a", "", "b"], "" -> [""],
// "/a" -> ["", "a"]. No trimming, no normalization.
func splitTopic(topic string) []string {
	return strings.Split(topic, "/")
}

// validateFilter checks a subscription filter for MQTT wildcard placement
// rules: '+' and '#' must each occupy an entire segment (not a substring of
// a longer segment, per Design Note 2/3), and '#' may only appear as the
// final segment.
func validateFilter(filter string) ([]string, error) {
	segments := splitTopic(filter)
	for i, seg := range segments {
		if strings.Contains(seg, "+") && seg != "+" {
			return nil, &ValidationError{
				Input: filter, SegmentIndex: i, Segment: seg,
				Reason: "'+' must occupy the entire segment",
				Parent: ErrMalformedFilter,
			}
		}
		if strings.Contains(seg, "#") {
			if seg != "#" {
				return nil, &ValidationError{
					Input: filter, SegmentIndex: i, Segment: seg,
					Reason: "'#' must occupy the entire segment",
					Parent: ErrMalformedFilter,
				}
			}
			if i != len(segments)-1 {
				return nil, &ValidationError{
					Input: filter, SegmentIndex: i, Segment: seg,
					Reason: "'#' must be the final segment",
					Parent: ErrMalformedFilter,
				}
			}
		}
	}
	return segments, nil
}

// validateConcreteTopic checks that a topic used for a publish or a
// retained store contains no wildcard character, whether as a whole
// segment or embedded in a longer one (per Design Note 3, the same
// substring check validateFilter applies to subscription filters).
func validateConcreteTopic(topic string) ([]string, error) {
	segments := splitTopic(topic)
	for i, seg := range segments {
		if strings.Contains(seg, "+") || strings.Contains(seg, "#") {
			return nil, &ValidationError{
				Input: topic, SegmentIndex: i, Segment: seg,
				Reason: "wildcard character not allowed in a concrete topic",
				Parent: ErrWildcardInRetainedTopic,
			}
		}
	}
	return segments, nil
}

// matchTopic reports whether topic matches filter under MQTT wildcard
// semantics, walking both strings segment-by-segment without allocating a
// trie. It is the O(1)-space reference the property-based tests use to
// cross-check MultiSubscriptionMap.Find and RetainedMap.Find, and a
// reasonable choice on its own for
// call sites that only ever hold a handful of filters, where a trie's
// bookkeeping isn't worth it.
func matchTopic(filter, topic string) bool {
	fIdx, tIdx := 0, 0
	fLen, tLen := len(filter), len(topic)

	for fIdx <= fLen {
		var fLevel string
		var fNext int

		if idx := strings.IndexByte(filter[fIdx:], '/'); idx >= 0 {
			fNext = fIdx + idx
			fLevel = filter[fIdx:fNext]
		} else {
			fNext = fLen
			fLevel = filter[fIdx:]
		}

		if fLevel == "#" {
			return true
		}

		if tIdx > tLen {
			return false
		}

		var tLevel string
		var tNext int

		if idx := strings.IndexByte(topic[tIdx:], '/'); idx >= 0 {
			tNext = tIdx + idx
			tLevel = topic[tIdx:tNext]
		} else {
			tNext = tLen
			tLevel = topic[tIdx:]
		}

		if fLevel == "+" {
			// matches this level unconditionally
		} else if fLevel != tLevel {
			return false
		}

		if fNext == fLen {
			fIdx = fLen + 1
		} else {
			fIdx = fNext + 1
		}

		if tNext == tLen {
			tIdx = tLen + 1
		} else {
			tIdx = tNext + 1
		}
	}

	return tIdx > tLen
}
