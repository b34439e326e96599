package reminder

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	id := uuid.MustParse("6f1c1b8e-0d7e-4a4b-9b61-0c3f1f0d2a11")
	assert.Equal(t, "reminder:6f1c1b8e-0d7e-4a4b-9b61-0c3f1f0d2a11:2026-01-10", Key(id, "2026-01-10"))
}

func TestMemoryDeduper_ClaimOnce(t *testing.T) {
	d := NewMemoryDeduper()
	ctx := context.Background()

	var claimed int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := d.Claim(ctx, "reminder:x:2026-01-10")
			assert.NoError(t, err)
			if ok {
				atomic.AddInt32(&claimed, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), claimed)

	ok, err := d.Claim(ctx, "reminder:x:2026-01-11")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryDeduper_Expires(t *testing.T) {
	d := NewMemoryDeduper()
	clock := time.Date(2026, 1, 10, 17, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return clock }

	ok, _ := d.Claim(context.Background(), "k")
	require.True(t, ok)

	clock = clock.Add(KeyTTL)
	ok, _ = d.Claim(context.Background(), "k")
	assert.True(t, ok)
}
