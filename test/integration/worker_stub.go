package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
)

// StubWorker is an in-process stand-in for the proof worker service. It mints
// deterministic credential identifiers and records every proof it generates so
// verification can check membership instead of real ZK math.
type StubWorker struct {
	server  *httptest.Server
	counter atomic.Int64

	mu     sync.Mutex
	proofs map[string]bool
	down   bool
}

func NewStubWorker() *StubWorker {
	w := &StubWorker{proofs: make(map[string]bool)}

	mux := http.NewServeMux()
	mux.HandleFunc("/issue", w.handleIssue)
	mux.HandleFunc("/verify", w.handleVerify)
	mux.HandleFunc("/health", w.handleHealth)
	w.server = httptest.NewServer(mux)
	return w
}

func (w *StubWorker) URL() string {
	return w.server.URL
}

func (w *StubWorker) Close() {
	w.server.Close()
}

// SetDown makes every endpoint return 503 until reset
func (w *StubWorker) SetDown(down bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.down = down
}

func (w *StubWorker) isDown() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.down
}

func (w *StubWorker) handleIssue(rw http.ResponseWriter, r *http.Request) {
	if w.isDown() {
		rw.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	var req struct {
		StudentID string `json:"studentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.WriteHeader(http.StatusBadRequest)
		return
	}

	n := w.counter.Add(1)
	credentialID := fmt.Sprintf("CRED-TEST-%03d", n)
	proof := fmt.Sprintf(`{"pi_a":["%d"],"protocol":"groth16","credential":"%s"}`, n, credentialID)

	w.mu.Lock()
	w.proofs[proof] = true
	w.mu.Unlock()

	rw.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(rw).Encode(map[string]interface{}{
		"success":      true,
		"credentialId": credentialID,
		"proof":        json.RawMessage(proof),
		"qrCode":       "data:image/png;base64,stub-" + credentialID,
	})
}

func (w *StubWorker) handleVerify(rw http.ResponseWriter, r *http.Request) {
	if w.isDown() {
		rw.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Proof json.RawMessage `json:"proof"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.WriteHeader(http.StatusBadRequest)
		return
	}

	// Minted proofs are stored compact; strip any whitespace a relay may have
	// introduced before the membership lookup. Key order still has to match.
	var compacted bytes.Buffer
	valid := false
	if err := json.Compact(&compacted, req.Proof); err == nil {
		w.mu.Lock()
		valid = w.proofs[compacted.String()]
		w.mu.Unlock()
	}

	rw.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(rw).Encode(map[string]bool{"isValid": valid})
}

func (w *StubWorker) handleHealth(rw http.ResponseWriter, r *http.Request) {
	if w.isDown() {
		rw.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	_, _ = rw.Write([]byte(`{"status":"ok"}`))
}
