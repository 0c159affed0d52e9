// Package core is the orchestration layer.  It turns a validated
// Config into a runnable Mode.
//
// Architecture layers (bottom → top):
//
//	transport  →  session  →  inspector  →  core  →  cmd (CLI)
package core

import "context"

// Mode is a complete operational mode that owns its lifecycle from
// bind to teardown.
type Mode interface {
	Run(ctx context.Context) error
}
