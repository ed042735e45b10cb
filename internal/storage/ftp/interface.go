package ftp

import "io"

// Client abstracts the document byte backend so the store can be tested
// without a live FTP server.
type Client interface {
	Upload(remotePath string, data io.Reader) error
	Download(remotePath string) (io.ReadCloser, error)
	Delete(remotePath string) error
	Close() error
}
