// Package shared holds helpers used by more than one layer of the dashboard.
//
// The testutil subpackage provides a capturing slog handler and a small
// fixture movie table for package tests. It has no production callers.
package shared
