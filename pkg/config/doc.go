// Package config provides configuration management for the TrustSeal service.
//
// Configuration is loaded from an optional YAML file and overridden by
// environment variables; each attribute remembers where its value came from
// so `trustsealctl configuration show` can report it.
package config
