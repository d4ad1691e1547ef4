// Package worker provides the client for the external proof worker service.
//
// The worker computes zero-knowledge proofs; its cryptography is entirely
// opaque to this service. Two operations are consumed: credential issuance
// (POST /issue) and proof verification (POST /verify).
//
// The two operations fail differently on purpose. An issuance failure is
// surfaced as an error so no half-created credential is persisted. A
// verification failure is mapped to "invalid": an unreachable worker must
// never be interpreted as a valid proof.
package worker
