package credential

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/trustseal/trustseal-go/pkg/worker"
)

// VerifyResult is the outcome of a proof verification. Timestamp records when
// the answer was generated so verifiers can tell a stale answer from a fresh
// one.
type VerifyResult struct {
	IsValid   bool
	Timestamp time.Time
}

// Stats are running verification counters for this process.
type Stats struct {
	Total      int64
	Successful int64
	Failed     int64
}

// Verifier forwards verification requests to the proof worker.
type Verifier struct {
	worker worker.Client

	total      atomic.Int64
	successful atomic.Int64
	failed     atomic.Int64
}

// NewVerifier creates a verification forwarder
func NewVerifier(workerClient worker.Client) *Verifier {
	return &Verifier{worker: workerClient}
}

// Verify checks a proof against public inputs. Empty inputs are a request
// error and never reach the worker. A worker-reported invalid proof comes
// back as IsValid=false with no error, and so does an unreachable worker
// (the client already maps that to invalid): "proof is invalid" is a normal
// outcome.
func (v *Verifier) Verify(ctx context.Context, proof, publicInputs string) (VerifyResult, error) {
	if proof == "" {
		return VerifyResult{}, fmt.Errorf("%w: proof is required", ErrValidation)
	}
	if publicInputs == "" {
		return VerifyResult{}, fmt.Errorf("%w: publicInputs is required", ErrValidation)
	}

	isValid := v.worker.VerifyProof(ctx, proof, publicInputs)
	v.total.Add(1)
	if isValid {
		v.successful.Add(1)
	} else {
		v.failed.Add(1)
	}

	return VerifyResult{
		IsValid:   isValid,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Stats returns the verification counters accumulated by this process.
func (v *Verifier) Stats() Stats {
	return Stats{
		Total:      v.total.Load(),
		Successful: v.successful.Load(),
		Failed:     v.failed.Load(),
	}
}
