package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/domain/route"
)

const (
	RouteKeyPattern    = "route:%s"
	RotationKeyPattern = "rotation:%s"

	RouteTTLName = "route"
)

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	CreateTTLMap(name string, ttl time.Duration) *TTLMap
	GetTTLMap(name string) *TTLMap

	GetRoute(ctx context.Context, slug string) (*route.Policy, error)
	SaveRoute(ctx context.Context, policy *route.Policy) error
	DeleteRoute(ctx context.Context, slug string) error
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
}

type client struct {
	redisClient *redis.Client
	ttlMaps     sync.Map
	ttl         time.Duration
}

func NewClient(config Config, logger *logrus.Logger) (Client, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	}
	if config.TLS {
		options.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}
	redisClient := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithFields(logrus.Fields{
			"host":  config.Host,
			"port":  config.Port,
			"error": err.Error(),
		}).Error("failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"host": config.Host,
		"port": config.Port,
	}).Info("redis connected successfully")

	return &client{
		redisClient: redisClient,
		ttlMaps:     sync.Map{},
		ttl:         5 * time.Minute,
	}, nil
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	return c.redisClient.Get(ctx, key).Result()
}

func (c *client) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.redisClient.Set(ctx, key, value, expiration).Err()
}

func (c *client) Delete(ctx context.Context, key string) error {
	return c.redisClient.Del(ctx, key).Err()
}

func (c *client) Incr(ctx context.Context, key string) (int64, error) {
	return c.redisClient.Incr(ctx, key).Result()
}

func (c *client) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.redisClient.Expire(ctx, key, ttl).Err()
}

func (c *client) CreateTTLMap(name string, ttl time.Duration) *TTLMap {
	ttlMap := NewTTLMap(ttl)
	c.ttlMaps.Store(name, ttlMap)
	return ttlMap
}

func (c *client) GetTTLMap(name string) *TTLMap {
	if value, ok := c.ttlMaps.Load(name); ok {
		ttlMap, ok := value.(*TTLMap)
		if !ok {
			return nil
		}
		return ttlMap
	}
	return nil
}

func (c *client) GetRoute(ctx context.Context, slug string) (*route.Policy, error) {
	key := fmt.Sprintf(RouteKeyPattern, slug)
	res, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	policy := new(route.Policy)
	if err := json.Unmarshal([]byte(res), policy); err != nil {
		return nil, err
	}
	return policy, nil
}

func (c *client) SaveRoute(ctx context.Context, policy *route.Policy) error {
	key := fmt.Sprintf(RouteKeyPattern, policy.Slug)
	data, err := json.Marshal(policy)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, string(data), c.ttl)
}

func (c *client) DeleteRoute(ctx context.Context, slug string) error {
	return c.Delete(ctx, fmt.Sprintf(RouteKeyPattern, slug))
}
