package sentinel

import "errors"

// Infrastructure facts returned by stores and caches, optionally wrapped with
// fmt.Errorf("...: %w"). Services translate them into domain-errors codes.
//
//   - ErrNotFound: no approved site, whitelist entry or client for the key
//   - ErrConflict: a uniqueness constraint rejected the write
//   - ErrUnavailable: the backing store or cache could not be reached
//
// Validation failures never use these; see pkg/domain-errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
