package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type swappableSource struct {
	mu   sync.Mutex
	data string
}

func (s *swappableSource) Read(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return []byte(s.data), nil
}

func (s *swappableSource) Name() string { return "swappable" }

func (s *swappableSource) set(data string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}

func TestStoreRefreshSwapsSnapshot(t *testing.T) {
	t.Parallel()

	src := &swappableSource{data: `[{"id":"1","name":"one","price":1,"tags":["Industry: Welding"]}]`}
	opts := testOptions()
	store := NewStore(context.Background(), NewLoader(opts, zap.NewNop()), src, opts, zap.NewNop())

	first := store.Snapshot()
	require.Len(t, first.Products, 1)
	require.Len(t, first.Groups, 1)

	src.set(`[{"id":"1","name":"one","price":1},{"id":"2","name":"two","price":2,"tags":["Gender: Men"]}]`)
	store.Refresh(context.Background())

	second := store.Snapshot()
	require.Len(t, second.Products, 2)
	require.Equal(t, "Gender", second.Groups[0].Key)
	require.Len(t, first.Products, 1, "old snapshot is untouched")
}

func TestStoreBrokenFeedGivesEmptySnapshot(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	store := NewStore(context.Background(), NewLoader(opts, zap.NewNop()), &swappableSource{data: "nope"}, opts, zap.NewNop())
	require.Empty(t, store.Snapshot().Products)
	require.Empty(t, store.Snapshot().Groups)
}

func TestStoreFailedRefreshKeepsSnapshot(t *testing.T) {
	t.Parallel()

	src := &swappableSource{data: `[{"id":"1","name":"one","price":1,"tags":["Industry: Welding"]}]`}
	opts := testOptions()
	store := NewStore(context.Background(), NewLoader(opts, zap.NewNop()), src, opts, zap.NewNop())
	good := store.Snapshot()
	require.Len(t, good.Products, 1)

	for _, broken := range []string{"", "{not json"} {
		src.set(broken)
		store.Refresh(context.Background())
		require.Same(t, good, store.Snapshot(), "feed %q", broken)
	}

	// an empty feed that parses is a real change
	src.set(`[]`)
	store.Refresh(context.Background())
	require.Empty(t, store.Snapshot().Products)
	require.Empty(t, store.Snapshot().Groups)
}

func TestStoreScheduledRefreshStopsOnCancel(t *testing.T) {
	t.Parallel()

	src := &swappableSource{data: `[]`}
	opts := testOptions()
	store := NewStore(context.Background(), NewLoader(opts, zap.NewNop()), src, opts, zap.NewNop())
	src.set(`[{"id":"1","name":"one","price":1}]`)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.StartScheduledRefresh(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(store.Snapshot().Products) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled refresh did not stop")
	}
}

func TestStaticStore(t *testing.T) {
	t.Parallel()

	store := NewStaticStore(scenario(), DefaultOptions())
	require.Len(t, store.Snapshot().Products, 3)
	require.Equal(t, []string{"Industry", "Gender"}, []string{store.Snapshot().Groups[0].Key, store.Snapshot().Groups[1].Key})

	var empty Store
	require.NotNil(t, empty.Snapshot())
}
