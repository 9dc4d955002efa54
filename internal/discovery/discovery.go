// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// MarkerFile is the file that turns a subdirectory into a module.
const MarkerFile = "pom.xml"

// ErrListDirectory is wrapped by the error Discover returns when the scanned
// directory itself cannot be listed.
var ErrListDirectory = errors.New("failed to list directory")

// Result is the outcome of one discovery pass.
type Result struct {
	// Modules are directory base names in the order the listing returned them.
	Modules []string
	// Diagnostics lists entries that were skipped because they could not be
	// inspected.
	Diagnostics []Diagnostic
}

// Discover lists the direct entries of dir and returns those that are not
// excluded, are directories (symlinks followed), and contain a regular file
// named MarkerFile. There is no recursion beyond that one level and no
// sorting: the listing order is kept. An empty result is not an error.
//
// Only a failure to list dir itself is returned as an error; entries that
// cannot be inspected are skipped with a warning diagnostic.
func Discover(ctx context.Context, fsys afero.Fs, dir string, m *ExcludeMatcher) (Result, error) {
	if m == nil {
		var err error
		if m, err = NewExcludeMatcher(nil); err != nil {
			return Result{}, err
		}
	}

	names, err := listNames(fsys, dir)
	if err != nil {
		return Result{}, fmt.Errorf("%w %s: %w", ErrListDirectory, dir, err)
	}

	var res Result
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if m.Match(name) {
			continue
		}

		entryPath := filepath.Join(dir, name)
		info, err := fsys.Stat(entryPath)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics,
				newWarning(CodeEntryUnreadable, entryPath, "skipping entry that cannot be inspected", err))
			continue
		}
		if !info.IsDir() {
			continue
		}

		ok, err := hasMarker(fsys, entryPath)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics,
				newWarning(CodeMarkerUnreadable, filepath.Join(entryPath, MarkerFile), "skipping directory whose "+MarkerFile+" cannot be inspected", err))
			continue
		}
		if ok {
			res.Modules = append(res.Modules, name)
		}
	}

	return res, nil
}

// listNames returns the entry names of dir without sorting them.
func listNames(fsys afero.Fs, dir string) ([]string, error) {
	f, err := fsys.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return f.Readdirnames(-1)
}

func hasMarker(fsys afero.Fs, dir string) (bool, error) {
	info, err := fsys.Stat(filepath.Join(dir, MarkerFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
