package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreReturnsValueBeforeTTL(t *testing.T) {
	s := NewMemoryStore(time.Hour)

	s.Set(context.Background(), Key("numverify", "+56912345678"), []byte(`{"carrier":"Entel"}`))

	got, ok := s.Get(context.Background(), "numverify:+56912345678")
	require.True(t, ok)
	assert.Equal(t, `{"carrier":"Entel"}`, string(got))
}

func TestMemoryStoreExpiresAndPurges(t *testing.T) {
	now := time.Now()
	s := NewMemoryStore(time.Hour)
	s.now = func() time.Time { return now }

	s.Set(context.Background(), "composite:+56912345678", []byte(`{}`))

	now = now.Add(time.Hour + time.Second)

	_, ok := s.Get(context.Background(), "composite:+56912345678")
	assert.False(t, ok, "expired record must read as absent")
	assert.Equal(t, 0, s.Len(), "expired record must be purged on access")
}

func TestMemoryStoreOverwritesWholesale(t *testing.T) {
	s := NewMemoryStore(time.Hour)

	s.Set(context.Background(), "k", []byte("old"))
	s.Set(context.Background(), "k", []byte("new"))

	got, ok := s.Get(context.Background(), "k")
	require.True(t, ok)
	assert.Equal(t, "new", string(got))
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStoreMissingKey(t *testing.T) {
	s := NewMemoryStore(time.Hour)

	_, ok := s.Get(context.Background(), "never-set")
	assert.False(t, ok)
}

func TestKeyNamespacing(t *testing.T) {
	assert.NotEqual(t,
		Key("numverify", "+56912345678"),
		Key("composite", "+56912345678"))
}
