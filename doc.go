// Package mqtrie provides the routing core of an MQTT-semantics pub/sub
// broker: a Subscription Map and a Retained Map, both backed by a trie
// keyed on topic segments with MQTT's '+' and '#' wildcards.
//
// # Subscription Map
//
// SubscriptionMap stores at most one value per subscription filter;
// MultiSubscriptionMap stores a sequence of values per filter. Both share
// the same trie mechanics and answer the question "for this concrete
// published topic, which subscribers match?"
//
//	subs := mqtrie.NewMultiSubscriptionMap[string]()
//	subs.Insert("sensors/+/temperature", "logger")
//	subs.Insert("sensors/#", "archiver")
//	subs.Find("sensors/kitchen/temperature", func(v string) {
//	    fmt.Println("deliver to", v)
//	})
//
// # Retained Map
//
// RetainedMap stores the most recent payload per concrete topic and
// answers "for this filter (possibly wildcarded), which stored payloads
// match?" It is the structure a broker consults to replay retained
// messages to a newly matching subscription.
//
//	retained := mqtrie.NewRetainedMap[[]byte](0)
//	retained.InsertOrUpdate("sensors/kitchen/temperature", []byte("21.5"))
//	retained.Find("sensors/+/temperature", func(payload []byte) {
//	    fmt.Println(string(payload))
//	})
//
// # Scope
//
// This package is deliberately narrow: it is the hard engineering part of
// a broker (wildcard-aware matching, node reference counting, O(depth)
// insertion and lookup) and nothing else. Connection handling, packet
// codecs, QoS handshakes, and persistence are treated as an external
// collaborator's responsibility; package broker sketches the contract such
// a collaborator uses.
//
// # Concurrency
//
// Both map types are single-owner: every exported method mutates or reads
// in place with no internal locking. An embedder that needs concurrent
// access applies a single-writer/many-reader discipline externally (see
// package broker for the pattern); find may run concurrently with other
// finds but must never overlap a mutation.
package mqtrie
