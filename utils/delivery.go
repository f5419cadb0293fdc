// File: utils/delivery.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"campday/config"
)

// deliveryTTL expires delivery state well after the camp session the meal
// instance belonged to.
const deliveryTTL = 60 * 24 * time.Hour

// DeliveryStore tracks per-order delivery state for meal instances, keyed by
// (instanceID, option, orderID). One Redis hash per instance, one field per
// (option, orderID) pair. It replaces the ambient client-side tracking the
// mobile app used to do: state lives here and is injected where needed.
type DeliveryStore struct {
	client *redis.Client
}

// NewDeliveryStore connects the store to Redis using the delivery DB from AppConfig.
func NewDeliveryStore() *DeliveryStore {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDeliveryDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Delivery Store): %v", err)
	}
	return &DeliveryStore{client: client}
}

// Client exposes the underlying Redis client (health checks).
func (s *DeliveryStore) Client() *redis.Client { return s.client }

func deliveryKey(instanceID string) string { return "delivery:" + instanceID }

func deliveryField(option, orderID string) string { return option + ":" + orderID }

// Get reports whether the order's option has been marked delivered.
func (s *DeliveryStore) Get(ctx context.Context, instanceID, option, orderID string) (bool, error) {
	val, err := s.client.HGet(ctx, deliveryKey(instanceID), deliveryField(option, orderID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "1", nil
}

// Set marks (or unmarks) the order's option as delivered.
func (s *DeliveryStore) Set(ctx context.Context, instanceID, option, orderID string, delivered bool) error {
	val := "0"
	if delivered {
		val = "1"
	}
	key := deliveryKey(instanceID)
	if err := s.client.HSet(ctx, key, deliveryField(option, orderID), val).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, deliveryTTL).Err()
}
