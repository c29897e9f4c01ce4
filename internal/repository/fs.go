package repository

import "github.com/spf13/afero"

// FileSystemRepository is the filesystem the configuration file is read from.
type FileSystemRepository interface {
	afero.Fs
}
