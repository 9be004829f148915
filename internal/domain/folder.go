// internal/domain/folder.go
package domain

import (
	"regexp"
	"time"
)

// FolderOperation selects one of the emulated-folder operations. The store has
// no native folder concept; all of these act on key prefixes.
type FolderOperation string

const (
	FolderOpCreate FolderOperation = "create"
	FolderOpRename FolderOperation = "rename"
	FolderOpCopy   FolderOperation = "copy"
	FolderOpMove   FolderOperation = "move"
	FolderOpDelete FolderOperation = "delete"
)

// FolderRequest is the caller-facing request shape. Which path fields are
// required depends on the operation; Validate enforces that before any remote
// call is made.
type FolderRequest struct {
	Operation         FolderOperation `json:"operation"`
	FolderName        string          `json:"folderName,omitempty"`
	OldPath           string          `json:"oldPath,omitempty"`
	NewPath           string          `json:"newPath,omitempty"`
	DestinationBucket string          `json:"destinationBucket,omitempty"`
	DestinationPath   string          `json:"destinationPath,omitempty"`
	Force             bool            `json:"force,omitempty"`
}

// OperationContext carries the resolved parameters of a single folder
// operation. It is created once per request and owned by that request.
type OperationContext struct {
	SourceBucket      string
	DestinationBucket string
	SourcePrefix      string
	DestinationPrefix string
	Force             bool
}

// ObjectRecord is a single listed item.
type ObjectRecord struct {
	Key        string     `json:"key"`
	Size       uint64     `json:"size"`
	UploadedAt *time.Time `json:"uploadedAt,omitempty"`
}

// ListingPage is one page of a paginated listing. Cursor is opaque; callers
// only round-trip it back to the lister.
type ListingPage struct {
	Objects     []ObjectRecord `json:"objects"`
	Cursor      string         `json:"cursor,omitempty"`
	IsTruncated bool           `json:"isTruncated"`
}

// Per-operation results. Field names follow the wire format the frontend
// consumes, so each operation reports its own count name.

type CreateResult struct {
	Success bool   `json:"success"`
	Key     string `json:"key"`
}

type RenameResult struct {
	Success bool `json:"success"`
	Moved   int  `json:"moved"`
	Failed  int  `json:"failed"`
	Deleted int  `json:"deleted"`
}

type CopyResult struct {
	Success bool `json:"success"`
	Copied  int  `json:"copied"`
	Failed  int  `json:"failed"`
}

type MoveResult struct {
	Success bool `json:"success"`
	Moved   int  `json:"moved"`
	Failed  int  `json:"failed"`
	Deleted int  `json:"deleted"`
}

// DeleteResult doubles as the confirmation handshake: when the force flag was
// not set and the folder is non-empty, Success is false and FileCount reports
// how many objects the first page held, with nothing deleted.
type DeleteResult struct {
	Success   bool `json:"success"`
	Deleted   int  `json:"deleted"`
	Failed    int  `json:"failed"`
	FileCount int  `json:"fileCount,omitempty"`
}

var folderPathPattern = regexp.MustCompile(`^[A-Za-z0-9\-_/]+$`)

// ValidFolderPath reports whether p is a usable folder name or path. Empty
// strings and anything outside [A-Za-z0-9-_/] are rejected.
func ValidFolderPath(p string) bool {
	return p != "" && folderPathPattern.MatchString(p)
}

// Validate checks the request shape for the selected operation. It never
// touches the remote store.
func (r *FolderRequest) Validate() error {
	switch r.Operation {
	case FolderOpCreate:
		if !ValidFolderPath(r.FolderName) {
			return ErrInvalidFolderPath
		}
	case FolderOpRename:
		if !ValidFolderPath(r.OldPath) || !ValidFolderPath(r.NewPath) {
			return ErrInvalidFolderPath
		}
	case FolderOpCopy, FolderOpMove:
		if !ValidFolderPath(r.FolderName) {
			return ErrInvalidFolderPath
		}
		if r.DestinationBucket == "" {
			return ErrMissingDestination
		}
		if r.DestinationPath != "" && !ValidFolderPath(r.DestinationPath) {
			return ErrInvalidFolderPath
		}
	case FolderOpDelete:
		if !ValidFolderPath(r.FolderName) {
			return ErrInvalidFolderPath
		}
	default:
		return ErrUnknownOperation
	}
	return nil
}
