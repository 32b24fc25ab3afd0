package mqtrie

import (
	"testing"
)

// BenchmarkMatchTopic measures the performance of the linear reference
// matcher. This is a critical hot path in any implementation that doesn't
// use a trie.

func BenchmarkMatchTopic_Exact(b *testing.B) {
	filter := "sensors/building-a/floor-3/room-42/temperature"
	topic := "sensors/building-a/floor-3/room-42/temperature"

	for b.Loop() {
		matchTopic(filter, topic)
	}
}

func BenchmarkMatchTopic_WildcardPlus(b *testing.B) {
	filter := "sensors/+/floor-3/+/temperature"
	topic := "sensors/building-a/floor-3/room-42/temperature"

	for b.Loop() {
		matchTopic(filter, topic)
	}
}

func BenchmarkMatchTopic_WildcardHash(b *testing.B) {
	filter := "sensors/building-a/#"
	topic := "sensors/building-a/floor-3/room-42/temperature"

	for b.Loop() {
		matchTopic(filter, topic)
	}
}

func BenchmarkMatchTopic_WildcardHash_Root(b *testing.B) {
	filter := "#"
	topic := "sensors/building-a/floor-3/room-42/temperature"

	for b.Loop() {
		matchTopic(filter, topic)
	}
}

func BenchmarkMatchTopic_NoMatch_Early(b *testing.B) {
	filter := "sensors/building-b/floor-3/room-42/temperature"
	topic := "sensors/building-a/floor-3/room-42/temperature"

	for b.Loop() {
		matchTopic(filter, topic)
	}
}

func BenchmarkMatchTopic_NoMatch_Late(b *testing.B) {
	filter := "sensors/building-a/floor-3/room-42/humidity"
	topic := "sensors/building-a/floor-3/room-42/temperature"

	for b.Loop() {
		matchTopic(filter, topic)
	}
}

// BenchmarkSubscriptionMap_Find measures the trie's O(depth) lookup against
// a registry with many sibling filters, which is the scenario the trie
// exists to keep cheap (matchTopic above would need one string compare per
// stored filter).
func BenchmarkSubscriptionMap_Find(b *testing.B) {
	subs := NewMultiSubscriptionMap[int]()
	for i := range 1000 {
		subs.Insert("sensors/building-a/floor-3/room-"+string(rune('0'+i%10))+"/temperature", i)
	}
	subs.Insert("sensors/+/floor-3/+/temperature", -1)
	subs.Insert("sensors/building-a/#", -2)

	for b.Loop() {
		subs.Find("sensors/building-a/floor-3/room-42/temperature", func(int) {})
	}
}

func BenchmarkRetainedMap_InsertOrUpdate(b *testing.B) {
	retained := NewRetainedMap[[]byte](0)
	payload := []byte("21.5")

	for b.Loop() {
		retained.InsertOrUpdate("sensors/building-a/floor-3/room-42/temperature", payload)
	}
}

func BenchmarkRetainedMap_Find_PlusWildcard(b *testing.B) {
	retained := NewRetainedMap[[]byte](0)
	payload := []byte("21.5")
	for i := range 100 {
		retained.InsertOrUpdate("sensors/building-a/floor-3/room-"+string(rune('0'+i%10))+"/temperature", payload)
	}

	for b.Loop() {
		retained.Find("sensors/building-a/floor-3/+/temperature", func([]byte) {})
	}
}
