package broker

import "github.com/gonzalop/mqtrie"

// Session is a subscriber identity known to a Router: just enough to route
// a published message to the right place at the right QoS. Everything
// about how the bytes actually reach the subscriber - a TCP write, a
// channel send, a test spy - is the Deliver callback's business.
type Session struct {
	// ID identifies the session. Two subscriptions sharing an ID that both
	// match a published topic still produce only one Deliver call, at the
	// higher of the two subscribed QoS levels - Publish's delivery loop
	// coalesces by ID at fan-out time. The stored subscriptions themselves
	// are not merged; Size()/Count() still report them separately.
	ID string

	// Deliver is invoked with the topic, payload, and delivery QoS for
	// every message routed to this session. It must not block for long;
	// a Deliver that needs to do real I/O should hand off to its own
	// goroutine or buffered channel.
	Deliver func(topic string, payload []byte, qos mqtrie.QoS)

	// filters records, per subscribed filter, the exact *subscriber value
	// stored in the owning Router's subscription map - the way the
	// original implementation's session kept its own filter-to-QoS map so
	// it could unsubscribe precisely later, rather than re-deriving which
	// entries belong to it from the subscription trie (which matches a
	// concrete topic against stored filters, not an exact-path lookup of
	// a filter string). Mutated only by the owning Router, under its
	// mutex.
	filters map[string]*subscriber
}

// subscriber is the value type stored in the Router's subscription map: a
// session plus the QoS it asked for on this particular filter.
type subscriber struct {
	session *Session
	qos     mqtrie.QoS
}
