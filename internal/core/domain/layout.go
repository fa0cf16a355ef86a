package domain

import "path/filepath"

const (
	// MetaDirName is the name of the internal workspace directory.
	MetaDirName = ".gradle"

	// HistoryDirName is the name of the execution history directory.
	HistoryDirName = "history"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "build.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultMetaPath returns the default root directory for build metadata.
func DefaultMetaPath() string {
	return MetaDirName
}

// DefaultHistoryPath returns the default path for the execution history
// store. It joins .gradle and history.
func DefaultHistoryPath() string {
	return filepath.Join(MetaDirName, HistoryDirName)
}
