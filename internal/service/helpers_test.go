package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/brp/internal/repository"
	"github.com/alexanderramin/brp/internal/store"
	"github.com/alexanderramin/brp/internal/testutil"
	"github.com/stretchr/testify/require"
)

// stepClock returns a strictly increasing time on every call.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: testutil.FixedNow}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Minute)
	return c.t
}

// recordingObserver keeps every observed use case.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.events))
	for _, e := range o.events {
		out = append(out, e.Name)
	}
	return out
}

func setupService(t *testing.T, observers ...UseCaseObserver) (BRPService, *store.Store) {
	t.Helper()
	clock := newStepClock()
	st := store.New(repository.NewSQLiteDocumentRepo(testutil.NewTestDB(t)), store.WithClock(clock.Now))
	return NewBRPService(st, clock.Now, observers...), st
}

// storeAtGate writes a fully filled record at gate g straight into the store
// and returns its ID.
func storeAtGate(t *testing.T, st *store.Store, g int) string {
	t.Helper()
	ctx := context.Background()
	c := st.Load(ctx)
	r := testutil.NewBRPAtGate("Stored", g)
	r.ID = st.NextID(c)
	c.Records = append(c.Records, r)
	require.NoError(t, st.Save(ctx, c))
	return r.ID
}

func createTestBRP(t *testing.T, svc BRPService, title string) string {
	t.Helper()
	r, err := svc.Create(context.Background(), CreateRequest{Title: title, ProjectNumber: "PN-" + title})
	require.NoError(t, err)
	return r.ID
}
