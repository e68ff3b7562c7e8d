// Package api contains the client-side building blocks for talking to the
// Tempest backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering
//     authentication, password recovery, user records, and site metadata.
//  2. A concrete REST implementation (see HTTPClient) that builds each
//     request from the current session token via a TokenSource, tags it
//     with an X-Request-Id, and maps response statuses to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as values callers can match: ErrUnavailable
// and ErrUnauthorized with errors.Is, ConflictError and StatusError with
// errors.As. The recovery endpoints are different: the backend reports
// success or failure there as plain text distinguished only by prefix
// (PrefixOTPSent, PrefixOTPVerified, PrefixPasswordReset), so those methods
// return the body and leave the decision to the caller.
//
// All operations accept context.Context and honor cancellation/timeouts.
package api
