package utils

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// IsExists reports whether path exists.
func IsExists(path string) bool {
	_, err := os.Stat(path)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// IsDir reports whether path is an existing directory.
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// CreateDir creates path and any missing parents.
func CreateDir(path string) bool {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		log.Errorf("Create directory %s failed: %v", path, err)
		return false
	}
	return true
}

// Copy copies the file at src to dst.
func Copy(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destination.Close()

	_, err = io.Copy(destination, source)
	return err
}
