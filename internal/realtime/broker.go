package realtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

const subscriptionBuffer = 64

// Subscription delivers raw envelopes until Close is called.
type Subscription interface {
	Messages() <-chan []byte
	Close() error
}

// Subscriber opens subscriptions on one or more channels.
type Subscriber interface {
	Subscribe(ctx context.Context, channels ...string) (Subscription, error)
}

// RedisBroker relays events through Redis PUBLISH/SUBSCRIBE. Delivery is at-most-once:
// a subscriber that is not connected when an event is published never sees it.
type RedisBroker struct {
	client redis.UniversalClient
}

func NewRedisBroker(client redis.UniversalClient) *RedisBroker {
	return &RedisBroker{client: client}
}

func (b *RedisBroker) Publish(ctx context.Context, channel, event string, payload any) error {
	msg, err := encodeEnvelope(event, payload)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, channel, msg).Err(); err != nil {
		return fmt.Errorf("publish %s on %s: %w", event, channel, err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, channels ...string) (Subscription, error) {
	ps := b.client.Subscribe(ctx, channels...)
	// Wait for the confirmation so events published after Subscribe returns are seen.
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("subscribe %v: %w", channels, err)
	}

	sub := &redisSubscription{
		ps:   ps,
		out:  make(chan []byte, subscriptionBuffer),
		done: make(chan struct{}),
	}
	go sub.forward()
	return sub, nil
}

type redisSubscription struct {
	ps   *redis.PubSub
	out  chan []byte
	done chan struct{}
	once sync.Once
}

func (s *redisSubscription) forward() {
	defer close(s.out)
	in := s.ps.Channel()
	for {
		select {
		case msg, ok := <-in:
			if !ok {
				return
			}
			select {
			case s.out <- []byte(msg.Payload):
			case <-s.done:
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *redisSubscription) Messages() <-chan []byte {
	return s.out
}

func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.ps.Close()
	})
	return err
}

// LocalBroker is an in-process broker used with the memory store driver.
type LocalBroker struct {
	mu   sync.RWMutex
	subs map[string]map[*localSubscription]struct{}
}

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{subs: make(map[string]map[*localSubscription]struct{})}
}

// Publish never blocks; a subscriber with a full buffer misses the event.
func (b *LocalBroker) Publish(_ context.Context, channel, event string, payload any) error {
	msg, err := encodeEnvelope(event, payload)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs[channel] {
		select {
		case sub.out <- msg:
		default:
		}
	}
	return nil
}

func (b *LocalBroker) Subscribe(_ context.Context, channels ...string) (Subscription, error) {
	sub := &localSubscription{
		broker:   b,
		channels: channels,
		out:      make(chan []byte, subscriptionBuffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range channels {
		if b.subs[ch] == nil {
			b.subs[ch] = make(map[*localSubscription]struct{})
		}
		b.subs[ch][sub] = struct{}{}
	}
	return sub, nil
}

type localSubscription struct {
	broker   *LocalBroker
	channels []string
	out      chan []byte
	once     sync.Once
}

func (s *localSubscription) Messages() <-chan []byte {
	return s.out
}

func (s *localSubscription) Close() error {
	s.once.Do(func() {
		b := s.broker
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, ch := range s.channels {
			delete(b.subs[ch], s)
			if len(b.subs[ch]) == 0 {
				delete(b.subs, ch)
			}
		}
		close(s.out)
	})
	return nil
}
