package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry describes one persisted report.
type Entry struct {
	ID      string
	Path    string
	ModTime time.Time
}

// ListReports returns the reports under dir, oldest first. Report ids are
// ULIDs, so lexicographic name order is creation order.
func ListReports(dir string) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading report dir: %w", err)
	}

	var entries []Entry
	for _, e := range dirents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			ID:      strings.TrimSuffix(e.Name(), Ext),
			Path:    filepath.Join(dir, e.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})

	return entries, nil
}

// Latest returns the most recent report under dir.
func Latest(dir string) (Entry, error) {
	entries, err := ListReports(dir)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("no crash reports found in %s", dir)
	}
	return entries[len(entries)-1], nil
}

// Prune removes the oldest reports until at most keep remain, returning the
// paths it removed. Removal failures are skipped, not fatal: the next prune
// will pick them up.
func Prune(dir string, keep int) ([]string, error) {
	if keep < 0 {
		keep = 0
	}

	entries, err := ListReports(dir)
	if err != nil {
		return nil, err
	}

	var removed []string
	for len(entries) > keep {
		if err := os.Remove(entries[0].Path); err == nil {
			removed = append(removed, entries[0].Path)
		}
		entries = entries[1:]
	}

	return removed, nil
}
