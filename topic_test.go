package mqtrie

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestSplitTopic(t *testing.T) {
	tests := []struct {
		topic string
		want  []string
	}{
		{"a/b", []string{"a", "b"}},
		{"a//b", []string{"a", "", "b"}},
		{"", []string{""}},
		{"/a", []string{"", "a"}},
		{"a/b/c", []string{"a", "b", "c"}},
		{"a/", []string{"a", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			got := splitTopic(tt.topic)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitTopic(%q) = %#v, want %#v", tt.topic, got, tt.want)
			}
		})
	}
}

func TestMatchTopic(t *testing.T) {
	tests := []struct {
		filter string
		topic  string
		match  bool
	}{
		{"test/topic", "test/topic", true},
		{"test/topic", "test/other", false},

		{"test/+", "test/topic", true},
		{"test/+", "test/other", true},
		{"test/+", "test/topic/sub", false},
		{"test/+/sub", "test/topic/sub", true},
		{"+/topic", "test/topic", true},
		{"+/+", "test/topic", true},

		{"test/#", "test/topic", true},
		{"test/#", "test/topic/sub", true},
		{"test/#", "test/topic/sub/deep", true},
		{"test/#", "other/topic", false},
		{"#", "any/topic/here", true},
		{"test/topic/#", "test/topic", true},
		{"test/topic/#", "test/topic/sub", true},

		{"+/+/#", "test/topic/sub/deep", true},
		{"test/+/#", "test/topic/sub", true},

		{"", "", true},
		{"test", "test", true},
		{"test/", "test/", true},
	}

	for _, tt := range tests {
		t.Run(tt.filter+"_vs_"+tt.topic, func(t *testing.T) {
			result := matchTopic(tt.filter, tt.topic)
			if result != tt.match {
				t.Errorf("matchTopic(%q, %q) = %v, want %v", tt.filter, tt.topic, result, tt.match)
			}
		})
	}
}

func ExampleSubscriptionMap_Find() {
	subs := NewMultiSubscriptionMap[string]()
	subs.Insert("sensors/+/temperature", "logger")
	subs.Insert("sensors/#", "archiver")

	subs.Find("sensors/kitchen/temperature", func(v string) {
		fmt.Println(v)
	})

	// Unordered output:
	// logger
	// archiver
}

func TestValidateFilter(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		wantErr error
	}{
		{"plain", "sensors/temperature", nil},
		{"single wildcard", "sensors/+/temp", nil},
		{"multi wildcard", "sensors/#", nil},
		{"multi wildcard deep", "sensors/room1/#", nil},
		{"bare hash", "#", nil},
		{"multiple plus", "+/+/+", nil},
		{"plus not alone", "sensors/+temp/data", ErrMalformedFilter},
		{"hash not alone", "sensors/#temp", ErrMalformedFilter},
		{"hash not last", "sensors/#/temp", ErrMalformedFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateFilter(tt.filter)
			if tt.wantErr == nil && err != nil {
				t.Errorf("validateFilter(%q) = %v, want nil", tt.filter, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("validateFilter(%q) = %v, want error wrapping %v", tt.filter, err, tt.wantErr)
			}
		})
	}
}

func TestValidateConcreteTopic(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		wantErr error
	}{
		{"plain", "sensors/temperature", nil},
		{"empty segment", "sensors//temperature", nil},
		{"plus wildcard", "sensors/+/temp", ErrWildcardInRetainedTopic},
		{"hash wildcard", "sensors/#", ErrWildcardInRetainedTopic},
		{"plus embedded in segment", "a+b/c", ErrWildcardInRetainedTopic},
		{"hash embedded in segment", "x#y/z", ErrWildcardInRetainedTopic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateConcreteTopic(tt.topic)
			if tt.wantErr == nil && err != nil {
				t.Errorf("validateConcreteTopic(%q) = %v, want nil", tt.topic, err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("validateConcreteTopic(%q) = %v, want error wrapping %v", tt.topic, err, tt.wantErr)
			}
		})
	}
}

// FuzzMatchTopic fuzzes the reference matcher to find panics.
func FuzzMatchTopic(f *testing.F) {
	f.Add("sensors/+/temperature", "sensors/living-room/temperature")
	f.Add("sensors/#", "sensors/living-room/temperature")
	f.Add("sensors/#", "sensors/living-room/temperature/current")
	f.Add("+/+/+", "a/b/c")
	f.Add("#", "any/topic/here")
	f.Add("exact/match", "exact/match")

	f.Fuzz(func(t *testing.T, filter, topic string) {
		_ = matchTopic(filter, topic)
	})
}
