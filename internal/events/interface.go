// Package events delivers in-process change notifications from the stores to
// whatever presents them.
package events

// Publisher receives change events from the services
type Publisher interface {
	Publish(event Event)
}

// Compile-time verification that *Bus implements Publisher
var _ Publisher = (*Bus)(nil)
