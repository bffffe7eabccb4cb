//go:build windows

package storage

import (
	"fmt"
	"os"
	"time"
)

// writeFileAtomic writes data atomically with a write-rename pattern, since
// renameio doesn't support Windows. The temp name carries pid and nanotime
// so two writers of the same path never clobber each other's temp file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tempFile := fmt.Sprintf("%s.%d.%d.tmp", path, os.Getpid(), time.Now().UnixNano())
	if err := os.WriteFile(tempFile, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile) // Clean up on failure
		return err
	}
	return nil
}
