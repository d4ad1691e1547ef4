// Package registry owns user resolution for the issuance path: issuers are
// looked up and must exist, students are resolved or created on first sight
// keyed by their student identifier.
package registry
