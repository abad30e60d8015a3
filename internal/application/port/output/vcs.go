package output

import (
	"context"
)

// ChangeKind classifies how version control sees a file
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"    // Staged as new ("A ")
	ChangeModified ChangeKind = "modified" // Modified in index or worktree ("M " / " M")
	ChangeRenamed  ChangeKind = "renamed"  // Staged as renamed ("R ")
	ChangeUnknown  ChangeKind = "unknown"  // Anything else, or no repository
)

// VCS is the version control collaborator used to describe and re-stage patched files
type VCS interface {
	// Status classifies a single file
	Status(ctx context.Context, path string) (ChangeKind, error)

	// StagedFiles lists files staged as added, copied or modified,
	// as absolute paths
	StagedFiles(ctx context.Context) ([]string, error)

	// Stage adds the file's current content to the index
	Stage(ctx context.Context, path string) error
}
