// Package audit provides audit logging for credential operations.
//
// Security-relevant operations are logged in RFC5424 syslog format and
// optionally persisted to a dedicated audit database. Two event types are
// emitted:
//
//   - Issuance events, recording which issuer minted which credential for
//     which student, or why issuance failed
//   - Verification events, recording proof verification outcomes
//
// Audit logging is on by default and can be disabled with
// TRUSTSEAL_AUDIT_ENABLED=false. Database persistence activates when
// TRUSTSEAL_AUDIT_DATABASE_URL is set.
package audit
