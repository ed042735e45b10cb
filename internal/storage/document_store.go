package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/missaelcorm/notas-service/internal/models"
	"github.com/missaelcorm/notas-service/internal/repository"
	"github.com/missaelcorm/notas-service/internal/storage/ftp"
)

// DocumentStore stores rendered note documents addressed by
// {rfc}/{folio}.pdf. Bytes live on the FTP backend; the mutable metadata
// side channel (send counter, downloaded flag) lives in its own table,
// updated with atomic SQL increments rather than read-then-overwrite.
type DocumentStore struct {
	client    ftp.Client
	documents repository.DocumentRepository
	signer    *Signer
	originURL string
	ttl       time.Duration
}

func NewDocumentStore(client ftp.Client, documents repository.DocumentRepository, signer *Signer, originURL string, ttl time.Duration) *DocumentStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &DocumentStore{
		client:    client,
		documents: documents,
		signer:    signer,
		originURL: originURL,
		ttl:       ttl,
	}
}

// ObjectKey returns the storage address of a note document.
func ObjectKey(rfc, folio string) string {
	return fmt.Sprintf("%s/%s.pdf", rfc, folio)
}

// Put uploads the document bytes and records the send on the metadata
// side channel: the counter starts at 1 on first write and increments on
// every re-send. Returns the storage address.
func (s *DocumentStore) Put(ctx context.Context, rfc, folio string, data []byte) (string, error) {
	key := ObjectKey(rfc, folio)

	if err := s.client.Upload(key, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to store document %s: %w", key, err)
	}

	if _, err := s.documents.RecordSend(ctx, rfc, folio, key, time.Now()); err != nil {
		return "", fmt.Errorf("failed to update document metadata %s: %w", key, err)
	}

	return key, nil
}

// GetAndMarkDownloaded flips the downloaded flag (idempotently) and
// issues a time-bounded retrieval handle for the document. The handle is
// a pre-signed URL served by the direct retrieval endpoint.
func (s *DocumentStore) GetAndMarkDownloaded(ctx context.Context, rfc, folio string) (*models.DocumentMetadata, string, error) {
	meta, err := s.documents.Find(ctx, rfc, folio)
	if err != nil {
		return nil, "", err
	}
	if meta == nil {
		return nil, "", nil
	}

	if err := s.documents.MarkDownloaded(ctx, rfc, folio); err != nil {
		return nil, "", err
	}
	meta.Downloaded = true

	expires := time.Now().Add(s.ttl)
	signature := s.signer.Sign(rfc, folio, expires)

	handle := fmt.Sprintf("%s/notes/file?owner=%s&reference=%s&expires=%d&sig=%s",
		s.originURL, url.QueryEscape(rfc), url.QueryEscape(folio), expires.Unix(), signature)

	return meta, handle, nil
}

// Fetch reads the raw document bytes. Callers must verify the retrieval
// handle first.
func (s *DocumentStore) Fetch(ctx context.Context, rfc, folio string) ([]byte, error) {
	reader, err := s.client.Download(ObjectKey(rfc, folio))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

// VerifyHandle validates a retrieval handle's signature and expiry.
func (s *DocumentStore) VerifyHandle(rfc, folio string, expiresUnix int64, signature string) error {
	return s.signer.Verify(rfc, folio, expiresUnix, signature, time.Now())
}
