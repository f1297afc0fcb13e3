package apkindex

import (
	"bufio"
	"context"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/apkgraph/apkgraph/pkg/deps"
	"github.com/apkgraph/apkgraph/pkg/errors"
)

// Index is a static dependency source backed by an APKINDEX file parsed
// whole into memory. The resolver queries packages by name and needs random
// access, so the file is never streamed.
//
// Index is safe for concurrent readers once built.
type Index struct {
	records map[string][]string
	names   []string // sorted package names
}

// Load reads and parses the APKINDEX file at path.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "index file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidIndex, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads APKINDEX records from r.
//
// The format is line-oriented: a "P:" line starts a package record with the
// package name as value, a "D:" line lists whitespace-separated dependency
// specifiers for the current record, and a blank line ends the record.
// Multiple "D:" lines within one record accumulate. Lines with any other
// prefix are ignored, as is a "D:" line outside a record.
func Parse(r io.Reader) (*Index, error) {
	idx := &Index{records: make(map[string][]string)}
	var current string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			current = ""
		case strings.HasPrefix(line, "P:"):
			current = strings.TrimSpace(line[2:])
			if current != "" {
				if _, seen := idx.records[current]; !seen {
					idx.records[current] = nil
					idx.names = append(idx.names, current)
				}
			}
		case strings.HasPrefix(line, "D:") && current != "":
			idx.records[current] = append(idx.records[current], strings.Fields(line[2:])...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidIndex, err, "read index")
	}

	slices.Sort(idx.names)
	return idx, nil
}

// Lookup returns the raw dependency specifiers recorded for name.
// It implements [deps.Source]. A package without a record answers with
// PACKAGE_NOT_FOUND.
func (i *Index) Lookup(ctx context.Context, name string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLookupFailed, err, "index lookup %s", name)
	}
	specs, ok := i.records[name]
	if !ok {
		return nil, errors.New(errors.ErrCodePackageNotFound, "package %q not in index", name)
	}
	return specs, nil
}

// Contains reports whether the index has a record for name.
func (i *Index) Contains(name string) bool {
	_, ok := i.records[name]
	return ok
}

// Len returns the number of package records.
func (i *Index) Len() int { return len(i.records) }

// Packages returns all package names in sorted order.
func (i *Index) Packages() []string { return slices.Clone(i.names) }

// Search returns the sorted package names containing term as a substring.
// An empty term matches everything.
func (i *Index) Search(term string) []string {
	if term == "" {
		return i.Packages()
	}
	var out []string
	for _, name := range i.names {
		if strings.Contains(name, term) {
			out = append(out, name)
		}
	}
	return out
}

// Ensure Index implements deps.Source.
var _ deps.Source = (*Index)(nil)
