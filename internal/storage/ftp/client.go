package ftp

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
)

// ServerClient talks to an FTP server holding the rendered documents.
type ServerClient struct {
	host     string
	port     string
	user     string
	password string
	baseDir  string
	conn     *ftp.ServerConn
}

func NewServerClient(host, port, user, password, baseDir string) *ServerClient {
	return &ServerClient{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		baseDir:  baseDir,
	}
}

// Connect establishes connection to the FTP server
func (c *ServerClient) Connect() error {
	addr := c.host + ":" + c.port
	conn, err := ftp.Dial(addr, ftp.DialWithTimeout(10*time.Second))
	if err != nil {
		return fmt.Errorf("failed to connect to FTP: %w", err)
	}

	if err := conn.Login(c.user, c.password); err != nil {
		conn.Quit()
		return fmt.Errorf("failed to login to FTP: %w", err)
	}

	c.conn = conn
	return nil
}

// Upload stores a document under the base directory, creating the owner
// directory when needed.
func (c *ServerClient) Upload(remotePath string, data io.Reader) error {
	if c.conn == nil {
		if err := c.Connect(); err != nil {
			return err
		}
	}

	full := path.Join(c.baseDir, remotePath)
	if dir := path.Dir(full); dir != "." {
		// MakeDir fails when the directory already exists; that is fine.
		c.ensureDir(dir)
	}

	if err := c.conn.Stor(full, data); err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}

	return nil
}

// Download retrieves a document from the FTP server
func (c *ServerClient) Download(remotePath string) (io.ReadCloser, error) {
	if c.conn == nil {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	resp, err := c.conn.Retr(path.Join(c.baseDir, remotePath))
	if err != nil {
		return nil, fmt.Errorf("failed to download document: %w", err)
	}

	return resp, nil
}

// Delete removes a document from the FTP server
func (c *ServerClient) Delete(remotePath string) error {
	if c.conn == nil {
		if err := c.Connect(); err != nil {
			return err
		}
	}

	if err := c.conn.Delete(path.Join(c.baseDir, remotePath)); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

// Close closes the FTP connection
func (c *ServerClient) Close() error {
	if c.conn != nil {
		return c.conn.Quit()
	}
	return nil
}

func (c *ServerClient) ensureDir(dir string) {
	parts := strings.Split(dir, "/")
	current := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		current = path.Join(current, part)
		c.conn.MakeDir(current)
	}
}
