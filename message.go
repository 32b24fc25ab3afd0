package mqtrie

// RetainedMessage is the payload type stored by RetainedMap when it is
// constructed over raw publish bodies rather than an application-defined
// value type. Broker glue built on top of mqtrie is free to use any V it
// likes for RetainedMap[V] and SubscriptionMap[V]; this type is the
// convenient default that carries just enough to replay a retained publish
// to a new subscriber.
type RetainedMessage struct {
	// Topic the message was published to.
	Topic string

	// Payload is the message body.
	Payload []byte

	// QoS is the Quality of Service the message was originally published at.
	QoS QoS
}
