package types

import (
	"io/fs"
)

// FS is the filesystem the generator reads template sources from and checks
// destinations against. Implementations live in pkg/filesystem.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
}
