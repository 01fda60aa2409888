package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pitchlucy/lucy/pkg/xredis"
)

// MockRedisClient keeps values in memory unless a func field overrides the call.
type MockRedisClient struct {
	ExistFunc  func(ctx context.Context, key string) (bool, error)
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value string, ttl time.Duration) error
	DelFunc    func(ctx context.Context, key ...string) error
	SetObjFunc func(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetObjFunc func(ctx context.Context, key string, v any) error

	mutex  sync.Mutex
	values map[string]string
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{values: map[string]string{}}
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	if m.ExistFunc != nil {
		return m.ExistFunc(ctx, key)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	_, ok := m.values[key]
	return ok, nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", xredis.ErrMiss
	}

	return v, nil
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, k := range key {
		delete(m.values, k)
	}
	return nil
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if m.SetObjFunc != nil {
		return m.SetObjFunc(ctx, key, obj, ttl)
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	return m.Set(ctx, key, string(b), ttl)
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc != nil {
		return m.GetObjFunc(ctx, key, v)
	}

	s, err := m.Get(ctx, key)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(s), v)
}

func (m *MockRedisClient) Close() error {
	return nil
}
