//go:build js

package game

import "errors"

// The browser build has no file system to save into.
var errSnapshotUnsupported = errors.New("snapshots are not available in the browser")

func (g *Game) saveSnapshotDialog() error {
	return errSnapshotUnsupported
}
