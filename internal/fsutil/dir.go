package fsutil

import "github.com/spf13/afero"

// DirChecker answers whether a path names an existing directory.
type DirChecker interface {
	IsDir(path string) (bool, error)
}

// FsDirChecker implements DirChecker on an afero filesystem.
type FsDirChecker struct {
	Fs afero.Fs
}

// NewDirChecker returns a DirChecker backed by fsys.
func NewDirChecker(fsys afero.Fs) *FsDirChecker {
	return &FsDirChecker{Fs: fsys}
}

// IsDir implements DirChecker.
func (c *FsDirChecker) IsDir(path string) (bool, error) {
	return afero.DirExists(c.Fs, path)
}
