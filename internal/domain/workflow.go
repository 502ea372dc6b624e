// Package domain implements the map verification engine and the workflows
// the CLI drives it with.
package domain

import (
	"context"

	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// ScanArgs contains the arguments for scanning a map directory.
type ScanArgs struct {
	Dir m.Path
}

// VerifyArgs contains the arguments for verifying a map directory.
type VerifyArgs struct {
	Dir m.Path
}

// DeleteArgs contains the arguments for deleting maps from a directory.
type DeleteArgs struct {
	Dir         m.Path
	Names       []string // display names given on the command line
	Cheats      bool     // also select every map classified as cheat
	Interactive bool     // let the user pick maps in the terminal UI
}

// Workflow is the set of user-facing operations of the CLI.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) error
	Verify(ctx context.Context, args VerifyArgs) error
	Delete(ctx context.Context, args DeleteArgs) error
}
