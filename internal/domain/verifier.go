package domain

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"mapdispel.dev/pkg/mapdispel/internal/adapter"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// VerificationResult is delivered once per verification round.
type VerificationResult struct {
	Entries []m.MapEntry // catalog entries after the merge
	Merged  int
	Err     error
}

// Verifier runs verification round-trips against a catalog. At most one
// round is in flight at a time.
type Verifier interface {
	Begin(ctx context.Context) (<-chan VerificationResult, error)
	Cancel()
	InFlight() bool
}

type verifier struct {
	catalog *Catalog
	client  adapter.TrustClient

	mu       sync.Mutex
	inFlight bool
	round    uint64
	cancel   context.CancelFunc
}

// NewVerifier binds a verifier to catalog, sending through client.
func NewVerifier(catalog *Catalog, client adapter.TrustClient) Verifier {
	return &verifier{catalog: catalog, client: client}
}

// Begin snapshots the hashed entries and posts their digests. The returned
// channel receives exactly one result and is then closed. A second Begin while
// a round is pending fails with ErrVerificationInFlight.
func (v *verifier) Begin(ctx context.Context) (<-chan VerificationResult, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.inFlight {
		return nil, ErrVerificationInFlight
	}

	req := v.catalog.Snapshot()
	roundCtx, cancel := context.WithCancel(ctx)

	v.round++
	round := v.round
	v.inFlight = true
	v.cancel = cancel

	results := make(chan VerificationResult, 1)

	slog.Info("verification started", "digests", len(req.Digests), "generation", req.Generation)

	go func() {
		defer close(results)

		result := v.roundTrip(roundCtx, req)

		cancel()
		v.release(round)

		results <- result
	}()

	return results, nil
}

// Cancel aborts the pending round, if any, and frees the slot at once. The
// aborted round still delivers its result on its own channel.
func (v *verifier) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cancel != nil {
		v.cancel()
	}

	v.inFlight = false
	v.cancel = nil
}

// InFlight reports whether a round is pending.
func (v *verifier) InFlight() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.inFlight
}

// release frees the slot unless a newer round has taken it since.
func (v *verifier) release(round uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if round != v.round {
		return
	}

	v.inFlight = false
	v.cancel = nil
}

func (v *verifier) roundTrip(ctx context.Context, req VerificationRequest) VerificationResult {
	body, err := v.client.Post(ctx, req.Payload())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			slog.Info("verification cancelled", "generation", req.Generation)
			return VerificationResult{Err: ctxErr}
		}

		slog.Error("verification transport failed", "error", err)

		return VerificationResult{Err: &TransportError{Message: err.Error(), Err: err}}
	}

	labels, err := DecodeLabels(body)
	if err != nil {
		slog.Error("verification response rejected", "error", err)
		return VerificationResult{Err: err}
	}

	if len(labels) != len(req.Entries) {
		slog.Warn("classification count mismatch", "labels", len(labels), "digests", len(req.Entries))
	}

	merged, err := v.catalog.Merge(req.Resolve(labels))
	if err != nil {
		slog.Warn("discarding stale verification", "generation", req.Generation, "error", err)
		return VerificationResult{Err: err}
	}

	slog.Info("verification complete", "classified", merged)

	return VerificationResult{Entries: v.catalog.Entries(), Merged: merged}
}
