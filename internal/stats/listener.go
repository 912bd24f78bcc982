package stats

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/redis"
)

// redisNotifier adapts the Redis pub/sub client to the Notifier interface.
// Order writers publish on the per-week channel after every mutation.
type redisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier wraps the shared Redis client as a change notifier.
func NewRedisNotifier(client *redis.Client) Notifier {
	return &redisNotifier{client: client}
}

func (n *redisNotifier) SubscribeOrdersChanged(ctx context.Context, weekID string) (Subscription, error) {
	pubsub, err := n.client.Subscribe(ctx, redis.OrdersChangedChannel(weekID))
	if err != nil {
		return nil, err
	}

	sub := &redisSubscription{
		pubsub:        pubsub,
		notifications: make(chan struct{}, 1),
		done:          make(chan struct{}),
	}
	go sub.pump()
	return sub, nil
}

type redisSubscription struct {
	pubsub        *goredis.PubSub
	notifications chan struct{}
	done          chan struct{}
}

// pump collapses the message stream into bare notifications. The channel has
// capacity one: coalescing bursts is fine because every notification triggers
// a full snapshot re-read anyway.
func (s *redisSubscription) pump() {
	defer close(s.notifications)
	for {
		select {
		case <-s.done:
			return
		case _, ok := <-s.pubsub.Channel():
			if !ok {
				return
			}
			select {
			case s.notifications <- struct{}{}:
			default:
			}
		}
	}
}

func (s *redisSubscription) Notifications() <-chan struct{} {
	return s.notifications
}

func (s *redisSubscription) Close() error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	return s.pubsub.Close()
}
