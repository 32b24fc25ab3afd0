package broker

import (
	"sync"

	"github.com/gonzalop/mqtrie"
)

// Router owns one subscription registry and one retained-message store and
// implements the external-interface contract: subscribing replays retained
// messages that match the new filter, and publishing stores the payload (if
// retained) then fans it out to every matching session at
// min(subscriber QoS, publisher QoS), coalescing deliveries to the same
// session reached through two different overlapping filters to the higher
// of the two effective QoS levels.
//
// A single sync.RWMutex guards both maps, the same single-writer/many-
// reader discipline the teacher applies around its session state in
// logic.go: Subscribe, Unsubscribe, and Publish take the write lock (even
// Publish mutates the retained store); only the read-only SubscriptionCount
// and RetainedCount take the read lock.
type Router struct {
	mu   sync.RWMutex
	subs *mqtrie.MultiSubscriptionMap[*subscriber]
	ret  *mqtrie.RetainedMap[mqtrie.RetainedMessage]

	opts routerOptions
}

// New creates a Router with no subscriptions and no retained messages.
func New(opts ...Option) *Router {
	o := defaultRouterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Router{
		subs: mqtrie.NewMultiSubscriptionMap[*subscriber](),
		ret:  mqtrie.NewRetainedMap[mqtrie.RetainedMessage](0),
		opts: o,
	}
}

// Subscribe registers session on filter at the given QoS and synchronously
// replays every retained message currently matching filter through
// session.Deliver, exactly as a real MQTT SUBSCRIBE does. Re-subscribing
// the same session to a filter it already holds replaces the stored QoS
// rather than adding a second entry, matching a real client's
// filter-to-QoS bookkeeping. It returns a *mqtrie.ValidationError wrapping
// mqtrie.ErrMalformedFilter if filter is malformed.
func (r *Router) Subscribe(session *Session, filter string, qos mqtrie.QoS) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := session.filters[filter]; ok {
		r.subs.Remove(filter, old)
	}

	sub := &subscriber{session: session, qos: qos}
	if err := r.subs.Insert(filter, sub); err != nil {
		r.opts.logger.Warn("subscribe rejected", "filter", filter, "session", session.ID, "error", err)
		return err
	}
	if session.filters == nil {
		session.filters = make(map[string]*subscriber)
	}
	session.filters[filter] = sub

	r.opts.logger.Info("subscribed", "filter", filter, "session", session.ID, "qos", qos)
	r.opts.metrics.setSubscriptionsActive(r.subs.Size())

	r.ret.Find(filter, func(msg mqtrie.RetainedMessage) {
		session.Deliver(msg.Topic, msg.Payload, mqtrie.Min(qos, msg.QoS))
	})
	return nil
}

// Unsubscribe detaches session from filter, using the exact *subscriber
// session.filters recorded at Subscribe time rather than re-querying the
// subscription trie (filter is a filter string, not a concrete topic, so
// subTrie.find's topic->filters matching is the wrong tool here - it would
// also return unrelated overlapping filters like "a/#" ahead of an exact
// "a/b" entry). It reports whether a subscription was actually removed.
func (r *Router) Unsubscribe(session *Session, filter string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := session.filters[filter]
	if !ok {
		return false
	}
	delete(session.filters, filter)

	removed := r.subs.Remove(filter, sub)
	if removed {
		r.opts.logger.Info("unsubscribed", "filter", filter, "session", session.ID)
		r.opts.metrics.setSubscriptionsActive(r.subs.Size())
	}
	return removed
}

// Publish stores payload as the retained message for topic when retain is
// true (an empty payload with retain set clears any existing retained
// message, mirroring MQTT's retained-message-deletion convention), then
// delivers it to every session whose filter matches topic at
// min(subscriber QoS, qos). It returns the number of sessions the message
// was delivered to.
func (r *Router) Publish(topic string, payload []byte, qos mqtrie.QoS, retain bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retain {
		if len(payload) == 0 {
			r.ret.Remove(topic)
		} else if err := r.ret.InsertOrUpdate(topic, mqtrie.RetainedMessage{Topic: topic, Payload: payload, QoS: qos}); err != nil {
			r.opts.logger.Warn("publish rejected", "topic", topic, "error", err)
			return 0, err
		}
		r.opts.metrics.setRetainedTopics(r.ret.Size())
	}

	delivered := map[string]mqtrie.QoS{}
	order := make([]string, 0)
	var sessions = map[string]*Session{}
	r.subs.Find(topic, func(sub *subscriber) {
		effective := mqtrie.Min(sub.qos, qos)
		prev, seen := delivered[sub.session.ID]
		if !seen {
			order = append(order, sub.session.ID)
			sessions[sub.session.ID] = sub.session
		}
		delivered[sub.session.ID] = mqtrie.Max(prev, effective)
	})

	for _, id := range order {
		sessions[id].Deliver(topic, payload, delivered[id])
	}

	r.opts.logger.Debug("published", "topic", topic, "matched", len(order), "retain", retain)
	r.opts.metrics.recordPublish(len(order))
	return len(order), nil
}

// SubscriptionCount returns the number of live nodes in the subscription
// trie, including the root: a Router with no subscriptions reports 1. It
// is not the number of filters or of stored subscriptions.
func (r *Router) SubscriptionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.subs.Size()
}

// RetainedCount returns the number of live nodes in the retained-message
// trie, including the root: a Router with no retained messages reports 1,
// and one retained message on "a/b" makes it 3. It is not the number of
// topics holding a retained payload.
func (r *Router) RetainedCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ret.Size()
}
