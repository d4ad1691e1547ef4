// Package credential implements the issuance orchestrator and the
// verification forwarder.
//
// Issuance resolves the issuer, resolves or creates the student, asks the
// proof worker to mint the credential, and persists the result. The sequence
// is strict: a worker failure aborts with nothing written to the credential
// store, and only the (idempotent) student creation may have happened.
//
// Verification validates request shape and forwards to the worker; a negative
// result is a normal outcome, not an error.
package credential
