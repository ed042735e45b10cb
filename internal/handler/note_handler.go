package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/missaelcorm/notas-service/internal/service"
	"github.com/missaelcorm/notas-service/pkg/apperrors"
	"github.com/missaelcorm/notas-service/pkg/logger"
)

// NoteHandler exposes note creation, retrieval and document download.
type NoteHandler struct {
	notes service.NoteService
	log   *logger.Logger
}

func NewNoteHandler(notes service.NoteService, log *logger.Logger) *NoteHandler {
	return &NoteHandler{notes: notes, log: log}
}

// RegisterRoutes registers all note routes
func (h *NoteHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /notes", h.createNote)
	mux.HandleFunc("GET /notes/download", h.downloadNote)
	mux.HandleFunc("GET /notes/file", h.fetchFile)
	mux.HandleFunc("GET /notes/{id}", h.getNote)
}

func (h *NoteHandler) createNote(w http.ResponseWriter, r *http.Request) {
	var input service.CreateNoteInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.notes.CreateNote(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *NoteHandler) getNote(w http.ResponseWriter, r *http.Request) {
	detail, err := h.notes.GetNote(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// downloadNote resolves a document by owner RFC and folio, flags it as
// downloaded, and redirects the caller to its time-bounded handle.
func (h *NoteHandler) downloadNote(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	reference := r.URL.Query().Get("reference")
	if owner == "" || reference == "" {
		writeError(w, apperrors.Validation("owner and reference query parameters are required"))
		return
	}

	handle, err := h.notes.Download(r.Context(), owner, reference)
	if err != nil {
		writeError(w, err)
		return
	}

	h.log.WithOwner(owner).WithField("reference", reference).Info("document download redirect issued")
	http.Redirect(w, r, handle, http.StatusFound)
}

// fetchFile verifies a signed handle and streams the document bytes.
func (h *NoteHandler) fetchFile(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	owner := q.Get("owner")
	reference := q.Get("reference")
	sig := q.Get("sig")
	expires, err := strconv.ParseInt(q.Get("expires"), 10, 64)
	if owner == "" || reference == "" || sig == "" || err != nil {
		writeError(w, apperrors.Validation("owner, reference, expires and sig query parameters are required"))
		return
	}

	data, err := h.notes.FetchDocument(r.Context(), owner, reference, expires, sig)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reference+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
