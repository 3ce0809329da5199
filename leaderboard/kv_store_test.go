package leaderboard

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connectTestKV opens a throwaway bucket on the server named by NATS_URL
func connectTestKV(t *testing.T) *KVStore {
	t.Helper()
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set, skipping JetStream key-value tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bucket := fmt.Sprintf("VI_INVADERS_TEST_%d", time.Now().UnixNano())
	s, err := ConnectKVStore(ctx, url, bucket, "")
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestKVStoreRoundTrip(t *testing.T) {
	s := connectTestKV(t)
	ctx := context.Background()

	empty, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, s.Save(ctx, []Entry{entry("AAA", 10)}))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "AAA", got[0].Name)
}

func TestKVStoreConcurrentUpdates(t *testing.T) {
	s := connectTestKV(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, err := s.Update(ctx, func(current []Entry) []Entry {
				return Merge(current, entry("CON", score))
			})
			assert.NoError(t, err)
		}(i + 1)
	}
	wg.Wait()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2, 1}, scores(got))
}
