package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotHeld is returned when another booking currently holds the slot.
var ErrSlotHeld = errors.New("slot is held by another booking")

const RedisSlotKeyPrefix = "appointment:slot:"

// releaseSlotScript deletes the hold only if it still carries our token, so
// an expired hold taken over by another request is left alone.
var releaseSlotScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// SlotHold is a short-lived claim on one (doctor, instant) pair.
type SlotHold struct {
	key   string
	token string
}

type SlotLock interface {
	Acquire(ctx context.Context, doctorID uuid.UUID, instant time.Time) (*SlotHold, error)
	Release(ctx context.Context, hold *SlotHold) error
}

// RedisSlotLock serializes bookings of the same doctor slot across
// instances. The database unique index remains the final guard.
type RedisSlotLock struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewRedisSlotLock(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *RedisSlotLock {
	return &RedisSlotLock{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

func slotKey(doctorID uuid.UUID, instant time.Time) string {
	return fmt.Sprintf("%s%s:%d", RedisSlotKeyPrefix, doctorID, instant.UTC().Unix())
}

func (l *RedisSlotLock) Acquire(ctx context.Context, doctorID uuid.UUID, instant time.Time) (*SlotHold, error) {
	hold := &SlotHold{key: slotKey(doctorID, instant), token: uuid.NewString()}

	ok, err := l.redisClient.SetNX(ctx, hold.key, hold.token, l.ttl).Result()
	if err != nil {
		l.log.Warnf("Failed to acquire slot hold %s: %+v", hold.key, err)
		return nil, fmt.Errorf("acquire slot hold %s: %w", hold.key, err)
	}
	if !ok {
		return nil, ErrSlotHeld
	}

	l.log.Debugf("Acquired slot hold %s", hold.key)
	return hold, nil
}

func (l *RedisSlotLock) Release(ctx context.Context, hold *SlotHold) error {
	if hold == nil {
		return nil
	}
	if err := releaseSlotScript.Run(ctx, l.redisClient, []string{hold.key}, hold.token).Err(); err != nil {
		l.log.Warnf("Failed to release slot hold %s: %+v", hold.key, err)
		return fmt.Errorf("release slot hold %s: %w", hold.key, err)
	}
	return nil
}

// NoopSlotLock is used when Redis is not configured.
type NoopSlotLock struct{}

func (NoopSlotLock) Acquire(context.Context, uuid.UUID, time.Time) (*SlotHold, error) {
	return &SlotHold{}, nil
}

func (NoopSlotLock) Release(context.Context, *SlotHold) error {
	return nil
}
