package cache

import "time"

// Null is a no-op cache for when caching is disabled (--cache-ttl=0) or in
// tests that must always hit the network.
type Null struct{}

var _ Cache = Null{}

func NewNull() Null { return Null{} }

func (Null) Get(string) (any, bool)         { return nil, false }
func (Null) Put(string, any, time.Duration) {}
func (Null) InvalidateAll()                 {}
