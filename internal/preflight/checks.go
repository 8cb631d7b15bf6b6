package preflight

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"prompter/internal/manifest"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckManifest loads the manifest and confirms every document exists.
func CheckManifest(path, documentDir string) Result {
	docs, err := manifest.Load(path, documentDir)
	if err != nil {
		return Result{Name: "Manifest", Detail: err.Error()}
	}
	if err := docs.Validate(); err != nil {
		var merr *manifest.Error
		if errors.As(err, &merr) && len(merr.Missing) > 0 {
			return Result{Name: "Manifest", Detail: fmt.Sprintf("%s (%d of %d documents missing, first %s)",
				path, len(merr.Missing), docs.Len(), merr.Missing[0])}
		}
		return Result{Name: "Manifest", Detail: err.Error()}
	}
	return Result{Name: "Manifest", Passed: true, Detail: fmt.Sprintf("%s (%d documents)", path, docs.Len())}
}
