package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linkveil/cloakgate/pkg/infra/cache"
)

func TestTTLMap_SetAndGet(t *testing.T) {
	m := cache.NewTTLMap(time.Minute)

	m.Set("promo-abc", "value")

	got, ok := m.Get("promo-abc")
	assert.True(t, ok)
	assert.Equal(t, "value", got)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestTTLMap_ExpiredEntryIsEvicted(t *testing.T) {
	m := cache.NewTTLMap(10 * time.Millisecond)

	m.Set("promo-abc", "value")
	time.Sleep(25 * time.Millisecond)

	_, ok := m.Get("promo-abc")
	assert.False(t, ok)
}

func TestTTLMap_SetRestartsTTL(t *testing.T) {
	m := cache.NewTTLMap(50 * time.Millisecond)

	m.Set("promo-abc", "old")
	time.Sleep(30 * time.Millisecond)
	m.Set("promo-abc", "new")
	time.Sleep(30 * time.Millisecond)

	got, ok := m.Get("promo-abc")
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestTTLMap_DeleteAndClear(t *testing.T) {
	m := cache.NewTTLMap(time.Minute)

	m.Set("a", 1)
	m.Set("b", 2)

	m.Delete("a")
	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Clear()
	_, ok = m.Get("b")
	assert.False(t, ok)
}
