// Package broker sketches the external collaborator mqtrie's core trie
// types expect to sit behind: something that turns a connection's
// subscribe/unsubscribe/publish calls into the right sequence of
// SubscriptionMap and RetainedMap operations, with retained-message replay,
// QoS coalescing, structured logging, and metrics.
//
// It deliberately does not include a wire codec, a TCP listener, or a QoS
// handshake state machine - those belong to a connection layer built on top
// of Router, not to the routing core itself.
package broker
