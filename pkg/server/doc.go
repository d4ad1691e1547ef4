// Package server provides the HTTP server for the TrustSeal API.
//
// It uses gorilla/mux for routing and wires the stores, the proof worker
// client, and the orchestration services together. Endpoint handlers live in
// the endpoints subpackage; storage interfaces and their GORM implementations
// live under store.
package server
