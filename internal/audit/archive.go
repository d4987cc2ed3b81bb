package audit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mrlokans/bookstack/internal/logging"
)

// ErrInvalidReportName is returned by Load for names Save could not have
// produced.
var ErrInvalidReportName = errors.New("invalid report name")

// Archive keeps integrity reports as JSON files named by UUID so that past
// audits can be compared after the fact.
type Archive struct {
	Dir string
}

func NewArchive(dir string) *Archive {
	return &Archive{Dir: dir}
}

// Save writes data as indented JSON and returns the file name.
func (a *Archive) Save(data any) (string, error) {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	name := uuid.NewString() + ".json"
	path := filepath.Join(a.Dir, name)

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	logging.Debug().Str("path", path).Msg("integrity report archived")
	return name, nil
}

// Load decodes a previously saved report into v.
func (a *Archive) Load(name string, v any) error {
	id, err := uuid.Parse(strings.TrimSuffix(name, ".json"))
	if err != nil || id.String()+".json" != name {
		return fmt.Errorf("%w: %q", ErrInvalidReportName, name)
	}
	raw, err := os.ReadFile(filepath.Join(a.Dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// List returns archived report names, oldest first.
func (a *Archive) List() ([]string, error) {
	entries, err := os.ReadDir(a.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	type item struct {
		name string
		mod  int64
	}
	var items []item
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		items = append(items, item{e.Name(), info.ModTime().UnixNano()})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].mod != items[j].mod {
			return items[i].mod < items[j].mod
		}
		return items[i].name < items[j].name
	})

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.name
	}
	return names, nil
}

// Prune removes reports last written before cutoff and returns how many
// were deleted. A missing directory prunes nothing.
func (a *Archive) Prune(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(a.Dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(a.Dir, e.Name())); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to remove report %s: %w", e.Name(), err)
		}
		removed++
	}
	return removed, nil
}
