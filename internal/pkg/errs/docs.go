// Package errs provides the standardized error types used across the
// fulfillment service. It implements a consistent pattern for error creation,
// formatting, and unwrapping.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - a struct type carrying error details
//   - constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for classification
//
// Beyond the generic validation errors, the package carries the transition
// taxonomy used by the order state machine: IllegalTransitionError for status
// changes the transition table forbids, UnauthorizedError for actors lacking
// authority, and PreconditionFailedError for runtime conflicts such as an
// order already claimed by another driver. HTTP handlers map these to 409,
// 403 and 409 respectively; ObjectNotFoundError maps to 404.
//
// Notification channel failures are deliberately not part of this taxonomy:
// they are classified transient/terminal inside the notify package, absorbed
// there, and never surfaced to transition callers.
package errs
