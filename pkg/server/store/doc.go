// Package store defines the storage interfaces used by the TrustSeal server.
//
// Interfaces are defined here and implemented by the gorm subpackage. This
// split keeps endpoint handlers and the issuance orchestrator testable with
// mock stores, and leaves room for alternative backends without touching
// business code.
package store
