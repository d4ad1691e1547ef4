// Package main provides trustsealctl, the CLI for the TrustSeal credential
// issuance and verification server.
//
// TrustSeal orchestrates issuance of zero-knowledge-proof-backed academic
// credentials. Issuers mint credentials through an external proof worker,
// students retrieve their credentials and proof material, and verifiers check
// proofs without the service ever holding proving keys.
//
// # Architecture
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/middleware: JWT bearer token authentication
//   - pkg/credential: issuance orchestration and proof verification
//   - pkg/registry: student identity resolution
//   - pkg/worker: proof worker HTTP client
//   - pkg/model: database models
//   - pkg/db: database connection utilities
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	trustsealctl db migrate
//
//	# Start the server
//	trustsealctl server
//
//	# Mint a token for an issuer
//	trustsealctl token registrar@university.edu
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - TRUSTSEAL_JWT_SECRET: secret for signing and validating bearer tokens
//   - TRUSTSEAL_WORKER_URL: proof worker base URL (default: http://localhost:3001)
//   - TRUSTSEAL_LOG_LEVEL: log level (debug enables SQL logging)
//   - PORT: server port (default: 8080)
package main
