package player

import (
	"sync"

	"github.com/OCharnyshevich/terraria-server/internal/server/packet"
)

// BusCapacity is the number of envelopes a subscriber may fall behind by
// before it is dropped.
const BusCapacity = 1024

// NoOrigin marks an envelope every subscriber receives.
const NoOrigin = -1

// Envelope is one broadcast: the encoded frame and the slot that caused it.
type Envelope struct {
	Op     packet.Opcode
	Frame  []byte
	Origin int
}

// Subscription receives envelopes from a Bus. C is closed when the
// subscriber is dropped for lagging or unsubscribes.
type Subscription struct {
	C  <-chan Envelope
	ch chan Envelope
	id int
}

// Bus fans out frames to every session. Frames are encoded once by Publish
// and shared read-only by all subscribers.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]*Subscription
	nextID int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]*Subscription)}
}

// Subscribe registers a new subscriber.
func (b *Bus) Subscribe() *Subscription {
	ch := make(chan Envelope, BusCapacity)
	b.mu.Lock()
	defer b.mu.Unlock()
	s := &Subscription{C: ch, ch: ch, id: b.nextID}
	b.nextID++
	b.subs[s.id] = s
	return s
}

// Unsubscribe removes s and closes its channel. It is safe to call more than
// once.
func (b *Bus) Unsubscribe(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[s.id]; ok {
		delete(b.subs, s.id)
		close(s.ch)
	}
}

// Publish encodes m and queues it for every subscriber. origin is the slot
// that must not receive it, or NoOrigin. Subscribers whose queue is full are
// dropped; their channel is closed.
func (b *Bus) Publish(m packet.Message, origin int) error {
	frame, err := packet.Encode(m)
	if err != nil {
		return err
	}
	env := Envelope{Op: m.Opcode(), Frame: frame, Origin: origin}

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, s := range b.subs {
		select {
		case s.ch <- env:
		default:
			delete(b.subs, id)
			close(s.ch)
		}
	}
	return nil
}

// Subscribers returns the number of live subscribers.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
