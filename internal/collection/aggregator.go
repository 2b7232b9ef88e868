package collection

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/adapter"
	"github.com/feral-file/ff-marketplace/internal/contract"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/metadata"
	"github.com/feral-file/ff-marketplace/internal/uri"
)

const (
	DEFAULT_FAN_OUT      = 16
	DEFAULT_VIEW_TIMEOUT = 30 * time.Second

	headerErrorMessage  = "Unable to load this collection. Check that the contract address and network are correct."
	partialErrorMessage = "Some tokens could not be loaded in time; %d of %d ids were checked."
)

// Config holds the aggregator settings
type Config struct {
	NativeSymbol           string
	NativeDecimals         int32
	FanOut                 int
	ViewTimeout            time.Duration
	MaxScanSize            int
	PlaceholderImage       string
	PlaceholderDescription string
}

// Request identifies the collection to build
type Request struct {
	Handle   contract.Handle
	Standard domain.Standard
	// Account is nil when no wallet is connected
	Account *common.Address
	Range   domain.ScanRange
}

// Matches reports whether the request tracks the given contract and account
func (r Request) Matches(contractAddress, account common.Address) bool {
	return r.Handle != nil &&
		r.Handle.Address() == contractAddress &&
		r.Account != nil &&
		*r.Account == account
}

// Aggregator builds collection views
//
//go:generate mockgen -source=aggregator.go -destination=../mocks/collection.go -package=mocks -mock_names=Aggregator=MockCollectionAggregator
type Aggregator interface {
	// BuildView probes every id in the request range and returns a fresh view.
	// It never fails: problems are reported through the view status.
	BuildView(ctx context.Context, req Request) *domain.CollectionView

	// Close stops the probe workers
	Close()
}

type aggregator struct {
	cfg        Config
	pool       pond.Pool
	fetcher    metadata.Fetcher
	normalizer *uri.Normalizer
	header     *HeaderReader
	format     displayFormat
	clock      adapter.Clock
}

// NewAggregator creates an aggregator. Every build gets a subpool of FanOut
// workers on the aggregator's pool.
func NewAggregator(fetcher metadata.Fetcher, normalizer *uri.Normalizer, clock adapter.Clock, cfg Config) Aggregator {
	if cfg.FanOut <= 0 {
		cfg.FanOut = DEFAULT_FAN_OUT
	}
	if cfg.ViewTimeout <= 0 {
		cfg.ViewTimeout = DEFAULT_VIEW_TIMEOUT
	}
	if cfg.MaxScanSize <= 0 {
		cfg.MaxScanSize = domain.MAX_SCAN_SIZE
	}

	header := NewHeaderReader(fetcher, normalizer, cfg.PlaceholderImage, cfg.PlaceholderDescription)

	return &aggregator{
		cfg:        cfg,
		pool:       pond.NewPool(0),
		fetcher:    fetcher,
		normalizer: normalizer,
		header:     header,
		format: displayFormat{
			placeholderImage:       header.placeholderImage,
			placeholderDescription: header.placeholderDescription,
			nativeSymbol:           cfg.NativeSymbol,
			nativeDecimals:         cfg.NativeDecimals,
		},
		clock: clock,
	}
}

func (a *aggregator) BuildView(ctx context.Context, req Request) *domain.CollectionView {
	start := a.clock.Now()
	view := domain.NewLoadingView(domain.NewEIP155Chain(req.Handle.ChainID()), req.Handle.Address(), req.Standard, req.Account, req.Range)
	view.BuildID = ulid.MustNewDefault(start).String()

	ctx, cancel := context.WithTimeout(ctx, a.cfg.ViewTimeout)
	defer cancel()

	fields := []zap.Field{
		zap.String("build_id", view.BuildID),
		zap.String("contract", view.Contract),
		zap.String("standard", string(req.Standard)),
		zap.Stringer("range", req.Range),
	}

	prober, err := NewProber(req.Standard)
	if err != nil {
		return a.fail(ctx, view, err, err.Error(), fields)
	}
	if err := req.Range.Validate(a.cfg.MaxScanSize); err != nil {
		return a.fail(ctx, view, err, err.Error(), fields)
	}

	header, err := a.header.Read(ctx, req.Handle)
	if err != nil {
		return a.fail(ctx, view, err, headerErrorMessage, fields)
	}
	view.Header = header

	items, probed, complete := a.discover(ctx, req, prober)

	view.Available = items
	view.Owned = make([]domain.DisplayItem, 0, len(items))
	for _, item := range items {
		if item.Owned {
			view.Owned = append(view.Owned, item)
		}
	}

	view.Status = domain.ViewStatusReady
	if !complete {
		view.Status = domain.ViewStatusPartialError
		view.Message = fmt.Sprintf(partialErrorMessage, probed, req.Range.Len())
	}
	view.BuiltAt = a.clock.Now()

	logger.InfoCtx(ctx, "Collection view built", append(fields,
		zap.String("status", string(view.Status)),
		zap.Int("available", len(view.Available)),
		zap.Int("owned", len(view.Owned)),
		zap.Duration("duration", a.clock.Since(start)))...)

	return view
}

func (a *aggregator) fail(ctx context.Context, view *domain.CollectionView, err error, message string, fields []zap.Field) *domain.CollectionView {
	logger.WarnCtx(ctx, "Collection view failed", append(fields, zap.Error(err))...)

	view.Status = domain.ViewStatusError
	view.Message = message
	view.BuiltAt = a.clock.Now()
	return view
}

// factsResult is the outcome of one on-chain probe; skipped is set when the
// build context ended before the probe could give a reliable answer
type factsResult struct {
	facts    *domain.TokenFacts
	relevant bool
	skipped  bool
}

// metadataResult carries the resolved metadata of items[index]
type metadataResult struct {
	index int
	md    *domain.TokenMetadata
}

// discover probes the range and resolves metadata for the relevant ids in
// ascending id order. Each build runs on its own subpool so builds never queue
// behind each other. It returns the relevant items, the number of ids probed
// and whether every probe finished.
func (a *aggregator) discover(ctx context.Context, req Request, prober Prober) ([]domain.DisplayItem, int, bool) {
	pool := a.pool.NewSubpool(a.cfg.FanOut)
	defer pool.Stop()

	ids := req.Range.IDs()
	relevant, probed := a.readFacts(ctx, pool, req, prober, ids)
	items := a.resolveMetadata(ctx, pool, req, relevant)

	return items, probed, probed == len(ids)
}

// readFacts runs the probes and returns the facts of the relevant ids sorted by id
func (a *aggregator) readFacts(ctx context.Context, pool pond.Pool, req Request, prober Prober, ids []domain.TokenID) ([]*domain.TokenFacts, int) {
	// Buffered so probes finishing after the deadline never block
	results := make(chan factsResult, len(ids))
	for _, id := range ids {
		pool.Submit(func() {
			results <- a.probeFacts(ctx, req, prober, id)
		})
	}

	relevant := make([]*domain.TokenFacts, 0, len(ids))
	received, probed := 0, 0
	collect := func(r factsResult) {
		received++
		if r.skipped {
			return
		}
		probed++
		if r.relevant {
			relevant = append(relevant, r.facts)
		}
	}

wait:
	for received < len(ids) {
		select {
		case r := <-results:
			collect(r)
		case <-ctx.Done():
			// Keep whatever already finished
			for {
				select {
				case r := <-results:
					collect(r)
				default:
					break wait
				}
			}
		}
	}

	sort.Slice(relevant, func(i, j int) bool {
		return relevant[i].TokenID < relevant[j].TokenID
	})

	return relevant, probed
}

func (a *aggregator) probeFacts(ctx context.Context, req Request, prober Prober, id domain.TokenID) factsResult {
	if ctx.Err() != nil {
		return factsResult{skipped: true}
	}

	facts, relevant := prober.Probe(ctx, req.Handle, id, req.Account)
	if ctx.Err() != nil {
		// Reads cut short by the deadline say nothing about the token
		return factsResult{skipped: true}
	}
	return factsResult{facts: facts, relevant: relevant}
}

// resolveMetadata turns every relevant token into a display item. Tokens
// start as fallback items and are upgraded as their metadata arrives; a fetch
// still running at the deadline leaves the fallback in place.
func (a *aggregator) resolveMetadata(ctx context.Context, pool pond.Pool, req Request, relevant []*domain.TokenFacts) []domain.DisplayItem {
	items := make([]domain.DisplayItem, len(relevant))
	uris := make([]string, len(relevant))
	results := make(chan metadataResult, len(relevant))
	pending := 0

	for i, facts := range relevant {
		if facts.URI == nil {
			items[i] = a.format.toDisplayItem(facts, nil, "")
			continue
		}

		expanded := uri.ExpandTokenID(*facts.URI, facts.TokenID)
		uris[i] = a.normalizer.Normalize(expanded)
		items[i] = a.format.toDisplayItem(facts, nil, uris[i])

		pending++
		pool.Submit(func() {
			results <- metadataResult{index: i, md: a.fetchMetadata(ctx, req, facts.TokenID, expanded)}
		})
	}

	apply := func(r metadataResult) {
		if r.md != nil {
			items[r.index] = a.format.toDisplayItem(relevant[r.index], r.md, uris[r.index])
		}
	}

wait:
	for received := 0; received < pending; received++ {
		select {
		case r := <-results:
			apply(r)
		case <-ctx.Done():
			for {
				select {
				case r := <-results:
					apply(r)
					received++
				default:
					logger.DebugCtx(ctx, "Metadata deadline reached, keeping fallback items",
						zap.String("contract", req.Handle.Address().Hex()),
						zap.Int("pending", pending-received))
					break wait
				}
			}
		}
	}

	return items
}

func (a *aggregator) fetchMetadata(ctx context.Context, req Request, id domain.TokenID, metadataURI string) *domain.TokenMetadata {
	if ctx.Err() != nil {
		return nil
	}

	md, err := a.fetcher.Fetch(ctx, metadataURI)
	if err != nil {
		logger.DebugCtx(ctx, "Token metadata unavailable",
			zap.String("contract", req.Handle.Address().Hex()),
			zap.Uint64("token_id", uint64(id)),
			zap.String("uri", metadataURI),
			zap.Error(err))
		return nil
	}
	return md
}

func (a *aggregator) Close() {
	a.pool.StopAndWait()
}
