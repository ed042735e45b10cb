package service

import (
	"context"
	"time"

	"github.com/missaelcorm/notas-service/internal/bus"
	"github.com/missaelcorm/notas-service/internal/models"
	"github.com/missaelcorm/notas-service/internal/pdf"
	"github.com/missaelcorm/notas-service/internal/repository"
	"github.com/missaelcorm/notas-service/internal/storage"
	"github.com/missaelcorm/notas-service/pkg/apperrors"
	"github.com/missaelcorm/notas-service/pkg/helpers"
	"github.com/missaelcorm/notas-service/pkg/logger"
	"github.com/missaelcorm/notas-service/pkg/metrics"
)

// CreateNoteInput is the create-note request.
type CreateNoteInput struct {
	CustomerID        string        `json:"customer_id"`
	BillingAddressID  string        `json:"billing_address_id"`
	ShippingAddressID string        `json:"shipping_address_id"`
	Products          []LineRequest `json:"products"`
}

// CreateNoteResult is the create-note response: the persisted note, its
// lines, the document's storage address and the wall-clock time spent.
type CreateNoteResult struct {
	Note        models.Note        `json:"note"`
	Lines       []*models.NoteLine `json:"lines"`
	DocumentKey string             `json:"document_key"`
	ElapsedMS   float64            `json:"execution_time_ms"`
}

// NoteService orchestrates the create-note saga and note reads.
type NoteService interface {
	CreateNote(ctx context.Context, input CreateNoteInput) (*CreateNoteResult, error)
	GetNote(ctx context.Context, id string) (*models.NoteDetail, error)
	Download(ctx context.Context, rfc, folio string) (string, error)
	FetchDocument(ctx context.Context, rfc, folio string, expiresUnix int64, signature string) ([]byte, error)
}

type noteService struct {
	customerRepo repository.CustomerRepository
	addressRepo  repository.AddressRepository
	noteRepo     repository.NoteRepository
	lineRepo     repository.NoteLineRepository
	productRepo  repository.ProductRepository
	pricing      PricingService
	store        *storage.DocumentStore
	dispatcher   *bus.Dispatcher
	ids          *helpers.IDGenerator
	log          *logger.Logger
	metrics      *metrics.Metrics
	originURL    string
}

func NewNoteService(
	customerRepo repository.CustomerRepository,
	addressRepo repository.AddressRepository,
	noteRepo repository.NoteRepository,
	lineRepo repository.NoteLineRepository,
	productRepo repository.ProductRepository,
	pricing PricingService,
	store *storage.DocumentStore,
	dispatcher *bus.Dispatcher,
	ids *helpers.IDGenerator,
	log *logger.Logger,
	m *metrics.Metrics,
	originURL string,
) NoteService {
	return &noteService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		noteRepo:     noteRepo,
		lineRepo:     lineRepo,
		productRepo:  productRepo,
		pricing:      pricing,
		store:        store,
		dispatcher:   dispatcher,
		ids:          ids,
		log:          log,
		metrics:      m,
		originURL:    originURL,
	}
}

// CreateNote runs the creation saga. The read phase (validation and
// reference resolution) leaves no side effects; the write phase persists
// the note, its lines, the rendered document and its metadata across
// independent stores with no cross-store atomicity. A failure after the
// first write is surfaced as INTERNAL and already-completed writes stay
// in place — there is no compensation pass. The notification publish at
// the end is best-effort and never fails the operation.
func (s *noteService) CreateNote(ctx context.Context, input CreateNoteInput) (*CreateNoteResult, error) {
	start := time.Now()

	// Read phase.
	if input.CustomerID == "" || input.BillingAddressID == "" || input.ShippingAddressID == "" {
		return nil, s.fail(apperrors.Validation("customer_id, billing_address_id and shipping_address_id are required"))
	}
	if len(input.Products) == 0 {
		return nil, s.fail(apperrors.Validation("at least one product is required"))
	}

	customer, err := s.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		return nil, s.fail(apperrors.Internal("failed to resolve customer", err))
	}
	if customer == nil {
		return nil, s.fail(apperrors.NotFound("customer not found"))
	}

	billing, err := s.addressRepo.FindByID(ctx, input.BillingAddressID)
	if err != nil {
		return nil, s.fail(apperrors.Internal("failed to resolve billing address", err))
	}
	if billing == nil {
		return nil, s.fail(apperrors.NotFound("billing address not found"))
	}

	shipping, err := s.addressRepo.FindByID(ctx, input.ShippingAddressID)
	if err != nil {
		return nil, s.fail(apperrors.Internal("failed to resolve shipping address", err))
	}
	if shipping == nil {
		return nil, s.fail(apperrors.NotFound("shipping address not found"))
	}

	lines, total, err := s.pricing.BuildLines(ctx, input.Products)
	if err != nil {
		return nil, s.fail(err)
	}

	// Write phase. No rollback from here on.
	noteID := s.ids.GenerateUUID()
	createdAt := time.Now()
	folio := s.ids.GenerateFolio(noteID, createdAt)

	note := &models.Note{
		ID:                noteID,
		Folio:             folio,
		CustomerID:        input.CustomerID,
		BillingAddressID:  input.BillingAddressID,
		ShippingAddressID: input.ShippingAddressID,
		Total:             total,
		CreatedAt:         createdAt,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, s.fail(apperrors.Internal("failed to persist note", err))
	}

	for _, line := range lines {
		line.ID = s.ids.GenerateUUID()
		line.NoteID = noteID
		if err := s.lineRepo.Create(ctx, line); err != nil {
			// Accepted consistency gap: the note keeps whatever lines
			// were written before the failure.
			return nil, s.fail(apperrors.Internal("failed to persist note line", err))
		}
	}

	document, err := pdf.Render(note, customer, lines)
	if err != nil {
		return nil, s.fail(apperrors.Internal("failed to render note document", err))
	}

	key, err := s.store.Put(ctx, customer.RFC, folio, document)
	if err != nil {
		return nil, s.fail(apperrors.Internal("failed to store note document", err))
	}

	// Best-effort notification handoff.
	if err := s.dispatcher.PublishNoteCreated(customer.Email, folio, customer.RFC, s.originURL); err != nil {
		s.log.WithFolio(folio).WithError(err).Warn("failed to publish note-created event")
	}

	elapsed := time.Since(start)
	s.metrics.NotesCreated.Inc()
	s.metrics.NoteCreationDuration.Observe(elapsed.Seconds())
	s.log.WithFolio(folio).WithField("duration_ms", elapsed.Milliseconds()).Info("note created")

	return &CreateNoteResult{
		Note:        *note,
		Lines:       lines,
		DocumentKey: key,
		ElapsedMS:   float64(elapsed.Microseconds()) / 1000.0,
	}, nil
}

func (s *noteService) fail(err error) error {
	s.metrics.ErrorCounter.WithLabelValues("create_note").Inc()
	return err
}

// GetNote returns the full note detail: customer, both addresses and the
// lines joined with their current product records.
func (s *noteService) GetNote(ctx context.Context, id string) (*models.NoteDetail, error) {
	note, err := s.noteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to get note", err)
	}
	if note == nil {
		return nil, apperrors.NotFound("note not found")
	}

	customer, err := s.customerRepo.FindByID(ctx, note.CustomerID)
	if err != nil {
		return nil, apperrors.Internal("failed to get customer", err)
	}

	billing, err := s.addressRepo.FindByID(ctx, note.BillingAddressID)
	if err != nil {
		return nil, apperrors.Internal("failed to get billing address", err)
	}
	shipping, err := s.addressRepo.FindByID(ctx, note.ShippingAddressID)
	if err != nil {
		return nil, apperrors.Internal("failed to get shipping address", err)
	}

	lines, err := s.lineRepo.FindByNoteID(ctx, note.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to get note lines", err)
	}

	details := make([]models.NoteLineDetail, 0, len(lines))
	for _, line := range lines {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, apperrors.Internal("failed to get product", err)
		}
		details = append(details, models.NoteLineDetail{NoteLine: *line, Product: product})
	}

	return &models.NoteDetail{
		Note:            *note,
		Customer:        customer,
		BillingAddress:  billing,
		ShippingAddress: shipping,
		Lines:           details,
	}, nil
}

// Download marks the document downloaded and returns its time-bounded
// retrieval handle.
func (s *noteService) Download(ctx context.Context, rfc, folio string) (string, error) {
	meta, handle, err := s.store.GetAndMarkDownloaded(ctx, helpers.NormalizeRFC(rfc), folio)
	if err != nil {
		return "", apperrors.Internal("failed to prepare document download", err)
	}
	if meta == nil {
		return "", apperrors.NotFound("document not found")
	}
	return handle, nil
}

// FetchDocument verifies a retrieval handle and returns the raw bytes.
func (s *noteService) FetchDocument(ctx context.Context, rfc, folio string, expiresUnix int64, signature string) ([]byte, error) {
	rfc = helpers.NormalizeRFC(rfc)
	if err := s.store.VerifyHandle(rfc, folio, expiresUnix, signature); err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}
	data, err := s.store.Fetch(ctx, rfc, folio)
	if err != nil {
		return nil, apperrors.NotFound("document not found")
	}
	return data, nil
}
