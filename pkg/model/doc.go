// Package model contains the database models for the TrustSeal service.
//
// Two tables back the whole system: users (students, issuer admins,
// verifiers) and credentials (issued claims with their proof material).
// Models are mapped with GORM; timestamps are store-assigned on persist.
package model
