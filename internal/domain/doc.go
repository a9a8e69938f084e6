// Package domain contains shared domain types used across sub-packages.
// Check-specific types (Result, Severity, Check) live in domain/check. This
// root package holds the sentinel errors and error types that the inbound
// adapter maps onto transport status codes.
package domain
