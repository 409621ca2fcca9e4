package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fes/internal/certificate/service"
	"fes/internal/document"
	dErrors "fes/pkg/domain-errors"
	"fes/pkg/platform/httputil"
	"fes/pkg/platform/middleware/admin"
	"fes/pkg/requestcontext"
)

// Service defines the certificate operations exposed over HTTP.
type Service interface {
	FindByPdfReference(ctx context.Context, pdfReference string) (*document.Document, error)
	VoidCertificate(ctx context.Context, documentNumber, user string) error
	InvestigateCertificate(ctx context.Context, documentNumber, user, investigationStatus string) error
}

// Handler serves certificate lookup and admin lifecycle endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts the certificate routes. PATCH requires x-admin-user.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1/certificates", func(r chi.Router) {
		r.Get("/", h.handleGetByPdfReference)
		r.Group(func(r chi.Router) {
			r.Use(admin.RequireAdminUser(h.logger))
			r.Patch("/{documentNumber}", h.handleMutate)
		})
	})
}

func (h *Handler) handleGetByPdfReference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	pdfReference := r.URL.Query().Get("pdfReference")

	doc, err := h.service.FindByPdfReference(ctx, pdfReference)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.InfoContext(ctx, "certificate not found",
				"request_id", requestID,
				"pdf_reference", pdfReference,
			)
		} else {
			h.logger.ErrorContext(ctx, "failed to find certificate",
				"request_id", requestID,
				"pdf_reference", pdfReference,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleMutate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	documentNumber := chi.URLParam(r, "documentNumber")
	user := requestcontext.AdminUser(ctx)

	req, err := decodeMutation(r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid certificate mutation",
			"request_id", requestID,
			"document_number", documentNumber,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	var resp mutationResponse
	if req.void {
		err = h.service.VoidCertificate(ctx, documentNumber, user)
		resp = mutationResponse{DocumentNumber: documentNumber, Status: string(document.StatusVoid)}
	} else {
		err = h.service.InvestigateCertificate(ctx, documentNumber, user, req.investigationStatus)
		resp = mutationResponse{DocumentNumber: documentNumber, InvestigationStatus: req.investigationStatus}
	}
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.InfoContext(ctx, "certificate mutation not applied",
				"request_id", requestID,
				"document_number", documentNumber,
				"precondition", service.PreconditionTag(err),
			)
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "certificate mutation failed",
			"request_id", requestID,
			"document_number", documentNumber,
			"error", err,
		)
		httputil.WriteRawError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type mutationResponse struct {
	DocumentNumber      string `json:"documentNumber"`
	Status              string `json:"status,omitempty"`
	InvestigationStatus string `json:"investigationStatus,omitempty"`
}

type mutationRequest struct {
	void                bool
	investigationStatus string
}

// decodeMutation accepts exactly {"status":"VOID"} or
// {"investigationStatus":"<non-empty>"}.
func decodeMutation(r *http.Request) (mutationRequest, error) {
	invalid := dErrors.New(dErrors.CodeBadRequest, `body must be {"status":"VOID"} or {"investigationStatus":"<value>"}`)

	var body map[string]json.RawMessage
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil {
		return mutationRequest{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	if dec.More() {
		return mutationRequest{}, invalid
	}
	if len(body) != 1 {
		return mutationRequest{}, invalid
	}

	if raw, ok := body["status"]; ok {
		status, ok := decodeString(raw)
		if !ok || status != string(document.StatusVoid) {
			return mutationRequest{}, invalid
		}
		return mutationRequest{void: true}, nil
	}
	if raw, ok := body["investigationStatus"]; ok {
		status, ok := decodeString(raw)
		if !ok || status == "" {
			return mutationRequest{}, invalid
		}
		return mutationRequest{investigationStatus: status}, nil
	}
	return mutationRequest{}, invalid
}

func decodeString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}
