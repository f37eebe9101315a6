package rill

// Subscription is the live link between one producer and one consumer.
//
// Both methods are safe to call concurrently with each other
// and with an in-flight delivery.
type Subscription interface {
	// Request adds n to the outstanding demand.
	// Requesting zero, or requesting after cancellation
	// or after a terminal event, has no effect.
	Request(n Demand)

	// Cancel stops any further delivery on the subscription
	// and releases the producer's resources for it.
	// An item already being delivered may still complete,
	// but no terminal event is delivered after Cancel.
	// Cancel is idempotent and never blocks on in-flight work.
	Cancel()
}

// Consumer receives the subscription, items, and terminal event of a stream.
//
// A producer calls ReceiveSubscription exactly once, before anything else.
// Calls to ReceiveItem and ReceiveTerminal are never concurrent
// for a single subscription.
type Consumer[T any] interface {
	ReceiveSubscription(s Subscription)

	// ReceiveItem delivers one item and returns any additional demand,
	// which is added to the outstanding demand
	// after this delivery's unit has been consumed.
	ReceiveItem(item T) Demand

	// ReceiveTerminal is called at most once, after the final item.
	ReceiveTerminal(t Terminal)
}

// Producer is a source of items of type T.
type Producer[T any] interface {
	// Subscribe attaches c to the producer.
	// The new subscription is passed to c.ReceiveSubscription
	// before Subscribe returns, and is also returned to the caller.
	// No item is delivered before c requests demand.
	Subscribe(c Consumer[T]) Subscription
}
