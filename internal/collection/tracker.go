package collection

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
)

const DEFAULT_VIEWER_IDLE_TTL = 30 * time.Minute

// Tracker keeps the latest view per viewer. A new trigger cancels the
// viewer's in-flight build, and a superseded build never replaces the view
// of a newer one. Viewers with no build running that were not triggered or
// read for the idle TTL are dropped.
//
//go:generate mockgen -source=tracker.go -destination=../mocks/tracker.go -package=mocks -mock_names=Tracker=MockCollectionTracker
type Tracker interface {
	// Trigger builds a view for viewer. current is false when a newer trigger
	// for the same viewer superseded this one; the returned view is then stale
	// and was not stored.
	Trigger(ctx context.Context, viewer string, req Request) (view *domain.CollectionView, current bool)

	// Latest returns the last stored view for viewer, or a loading view when
	// the first build is still running
	Latest(viewer string) (*domain.CollectionView, bool)

	// Forget cancels any build for viewer and drops its view. It reports
	// whether the viewer was tracked.
	Forget(viewer string) bool

	// RefreshAccount rebuilds every view tracking contract for account and
	// returns the number of viewers refreshed
	RefreshAccount(ctx context.Context, contractAddress, account common.Address) int
}

type viewerState struct {
	generation uint64
	cancel     context.CancelFunc
	request    Request
	view       *domain.CollectionView
	touched    time.Time
}

type tracker struct {
	aggregator Aggregator
	clock      adapter.Clock
	idleTTL    time.Duration
	mu         sync.Mutex
	viewers    map[string]*viewerState
}

// NewTracker creates a tracker over aggregator; a non-positive idleTTL uses DEFAULT_VIEWER_IDLE_TTL
func NewTracker(aggregator Aggregator, clock adapter.Clock, idleTTL time.Duration) Tracker {
	if idleTTL <= 0 {
		idleTTL = DEFAULT_VIEWER_IDLE_TTL
	}
	return &tracker{
		aggregator: aggregator,
		clock:      clock,
		idleTTL:    idleTTL,
		viewers:    make(map[string]*viewerState),
	}
}

// evictIdle drops idle viewers; callers hold t.mu
func (t *tracker) evictIdle(ctx context.Context, now time.Time) {
	evicted := 0
	for viewer, state := range t.viewers {
		if state.cancel == nil && now.Sub(state.touched) > t.idleTTL {
			delete(t.viewers, viewer)
			evicted++
		}
	}
	if evicted > 0 {
		logger.DebugCtx(ctx, "Evicted idle collection viewers",
			zap.Int("evicted", evicted),
			zap.Int("remaining", len(t.viewers)))
	}
}

func (t *tracker) Trigger(ctx context.Context, viewer string, req Request) (*domain.CollectionView, bool) {
	t.mu.Lock()
	now := t.clock.Now()
	t.evictIdle(ctx, now)

	state, ok := t.viewers[viewer]
	if !ok {
		state = &viewerState{}
		t.viewers[viewer] = state
	}
	if state.cancel != nil {
		state.cancel()
	}
	state.generation++
	generation := state.generation
	buildCtx, cancel := context.WithCancel(ctx)
	state.cancel = cancel
	state.request = req
	state.touched = now
	t.mu.Unlock()

	defer cancel()

	view := t.aggregator.BuildView(buildCtx, req)

	t.mu.Lock()
	defer t.mu.Unlock()

	if current, ok := t.viewers[viewer]; !ok || current != state || state.generation != generation {
		logger.DebugCtx(ctx, "Discarding superseded collection view",
			zap.String("viewer", viewer),
			zap.String("build_id", view.BuildID),
			zap.Uint64("generation", generation))
		return view, false
	}

	state.view = view
	state.cancel = nil
	state.touched = t.clock.Now()
	return view, true
}

func (t *tracker) Latest(viewer string) (*domain.CollectionView, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.viewers[viewer]
	if !ok {
		return nil, false
	}
	now := t.clock.Now()
	if state.cancel == nil && now.Sub(state.touched) > t.idleTTL {
		delete(t.viewers, viewer)
		return nil, false
	}
	state.touched = now

	if state.view != nil {
		return state.view, true
	}

	req := state.request
	return domain.NewLoadingView(domain.NewEIP155Chain(req.Handle.ChainID()), req.Handle.Address(), req.Standard, req.Account, req.Range), true
}

func (t *tracker) Forget(viewer string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.viewers[viewer]
	if !ok {
		return false
	}
	if state.cancel != nil {
		state.cancel()
	}
	delete(t.viewers, viewer)
	return true
}

func (t *tracker) RefreshAccount(ctx context.Context, contractAddress, account common.Address) int {
	t.mu.Lock()
	pending := make(map[string]Request)
	for viewer, state := range t.viewers {
		if state.request.Matches(contractAddress, account) {
			pending[viewer] = state.request
		}
	}
	t.mu.Unlock()

	var wg sync.WaitGroup
	for viewer, req := range pending {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t.Trigger(ctx, viewer, req)
		}()
	}
	wg.Wait()

	if len(pending) > 0 {
		logger.InfoCtx(ctx, "Refreshed collection views",
			zap.String("contract", contractAddress.Hex()),
			zap.String("account", account.Hex()),
			zap.Int("viewers", len(pending)))
	}

	return len(pending)
}
