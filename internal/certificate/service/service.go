package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fes/internal/certificate/metrics"
	"fes/internal/document"
	dErrors "fes/pkg/domain-errors"
	"fes/pkg/platform/audit"
	"fes/pkg/platform/sentinel"
	"fes/pkg/platform/sidechannel"
	"fes/pkg/requestcontext"
)

type Store interface {
	FindOne(ctx context.Context, pred document.Predicate) (*document.Document, error)
	UpdateOne(ctx context.Context, pred document.Predicate, update document.Update) error
}

type Guard interface {
	IsVoided(ctx context.Context, documentNumber string) (bool, error)
	IsDraft(ctx context.Context, documentNumber string) (bool, error)
	IsPending(ctx context.Context, documentNumber string, kind document.Kind) (bool, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, documentNumber string, event audit.Event) error
}

// Notifier reports a completed void to an external system. Best effort.
type Notifier interface {
	NotifyVoid(ctx context.Context, documentNumber string) error
}

// SideChannel runs work whose failure must not reach the caller.
type SideChannel interface {
	Go(ctx context.Context, name string, fn func(ctx context.Context) error)
}

// Precondition failures. They surface as not_found so callers cannot tell a
// non-applicable document from a missing one.
var (
	ErrAlreadyVoided = errors.New("certificate already voided")
	ErrDraft         = errors.New("certificate is a draft")
	ErrPending       = errors.New("certificate is pending")
)

const (
	operationVoid        = "void"
	operationInvestigate = "investigate"
)

// Service voids and investigates certificates after checking their lifecycle
// state, and looks certificates up by their PDF reference.
type Service struct {
	store          Store
	guard          Guard
	auditPublisher AuditPublisher
	notifier       Notifier
	sideChannel    SideChannel
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(s *Service) {
		s.notifier = notifier
	}
}

func WithSideChannel(sc SideChannel) Option {
	return func(s *Service) {
		s.sideChannel = sc
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service. Store and guard are required.
func New(store Store, guard Guard, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("document store is required")
	}
	if guard == nil {
		return nil, errors.New("state guard is required")
	}
	s := &Service{store: store, guard: guard}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.sideChannel == nil {
		s.sideChannel = sidechannel.New(s.logger)
	}
	return s, nil
}

// FindByPdfReference returns the newest document whose PDF reference matches.
func (s *Service) FindByPdfReference(ctx context.Context, pdfReference string) (*document.Document, error) {
	if pdfReference == "" {
		return nil, dErrors.New(dErrors.CodeNotFound, "pdf reference is required")
	}
	doc, err := s.store.FindOne(ctx, document.Predicate{PdfReference: pdfReference})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "certificate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find certificate")
	}
	return doc, nil
}

// VoidCertificate moves a certificate to VOID. The audit event and the
// external notification run on the side channel after the write commits.
func (s *Service) VoidCertificate(ctx context.Context, documentNumber, user string) (err error) {
	start := time.Now()
	defer func() { s.observe(operationVoid, err, start) }()

	kind := kindOf(documentNumber)
	if err := s.checkPreconditions(ctx, documentNumber, kind, true); err != nil {
		return err
	}

	status := document.StatusVoid
	err = s.store.UpdateOne(ctx, document.Predicate{
		DocumentNumber: documentNumber,
		Kinds:          document.Scope(documentNumber),
		StatusNotIn:    []document.Status{document.StatusVoid, document.StatusDraft, document.StatusPending},
	}, document.Update{Status: &status})
	if err != nil {
		return s.wrapWriteErr(err, "failed to void certificate")
	}

	s.logAudit(ctx, audit.EventVoided, documentNumber, user)
	event := audit.Event{
		EventType:   audit.EventVoided,
		TriggeredBy: user,
		Timestamp:   requestcontext.Now(ctx).UTC(),
	}
	if s.auditPublisher != nil {
		s.sideChannel.Go(ctx, "audit_voided", func(ctx context.Context) error {
			return s.auditPublisher.Emit(ctx, documentNumber, event)
		})
	}
	if s.notifier != nil {
		s.sideChannel.Go(ctx, "notify_void", func(ctx context.Context) error {
			return s.notifier.NotifyVoid(ctx, documentNumber)
		})
	}
	return nil
}

// InvestigateCertificate records an investigation annotation. Voided
// certificates may be investigated; the status is left unchanged.
func (s *Service) InvestigateCertificate(ctx context.Context, documentNumber, user, investigationStatus string) (err error) {
	start := time.Now()
	defer func() { s.observe(operationInvestigate, err, start) }()

	kind := kindOf(documentNumber)
	if err := s.checkPreconditions(ctx, documentNumber, kind, false); err != nil {
		return err
	}

	err = s.store.UpdateOne(ctx, document.Predicate{
		DocumentNumber: documentNumber,
		Kinds:          document.Scope(documentNumber),
		StatusNotIn:    []document.Status{document.StatusDraft, document.StatusPending},
	}, document.Update{Investigation: &document.Investigation{
		Investigator: user,
		Status:       investigationStatus,
	}})
	if err != nil {
		return s.wrapWriteErr(err, "failed to investigate certificate")
	}

	s.logAudit(ctx, audit.EventInvestigated, documentNumber, user, "investigation_status", investigationStatus)
	if s.auditPublisher != nil {
		emitErr := s.auditPublisher.Emit(ctx, documentNumber, audit.Event{
			EventType:   audit.EventInvestigated,
			TriggeredBy: user,
			Data:        map[string]string{audit.DataInvestigationStatus: investigationStatus},
		})
		if emitErr != nil {
			s.logger.ErrorContext(ctx, "failed to append audit event",
				"document_number", documentNumber,
				"event", audit.EventInvestigated,
				"error", emitErr,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}
	return nil
}

// PreconditionTag names the failed precondition, or "" if err is not one.
func PreconditionTag(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyVoided):
		return "already_voided"
	case errors.Is(err, ErrDraft):
		return "draft"
	case errors.Is(err, ErrPending):
		return "pending"
	default:
		return ""
	}
}

func (s *Service) checkPreconditions(ctx context.Context, documentNumber string, kind document.Kind, checkVoided bool) error {
	type check struct {
		fn  func() (bool, error)
		err error
	}
	checks := []check{
		{func() (bool, error) { return s.guard.IsDraft(ctx, documentNumber) }, ErrDraft},
		{func() (bool, error) { return s.guard.IsPending(ctx, documentNumber, kind) }, ErrPending},
	}
	if checkVoided {
		checks = append([]check{{func() (bool, error) { return s.guard.IsVoided(ctx, documentNumber) }, ErrAlreadyVoided}}, checks...)
	}

	for _, c := range checks {
		hit, err := c.fn()
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check certificate state")
		}
		if hit {
			s.logger.WarnContext(ctx, "certificate not applicable",
				"document_number", documentNumber,
				"precondition", PreconditionTag(c.err),
				"request_id", requestcontext.RequestID(ctx),
			)
			return dErrors.Wrap(c.err, dErrors.CodeNotFound, "certificate not applicable")
		}
	}
	return nil
}

func (s *Service) wrapWriteErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNoRowsAffected) || errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "certificate not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func (s *Service) logAudit(ctx context.Context, event audit.EventType, documentNumber, user string, attributes ...any) {
	args := append([]any{
		"event", event,
		"log_type", "audit",
		"document_number", documentNumber,
		"triggered_by", user,
		"request_id", requestcontext.RequestID(ctx),
	}, attributes...)
	s.logger.InfoContext(ctx, string(event), args...)
}

func (s *Service) observe(operation string, err error, start time.Time) {
	if s.metrics == nil {
		return
	}
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case PreconditionTag(err) != "":
		outcome = metrics.OutcomePrecondition
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomeError
	}
	s.metrics.ObserveMutation(operation, outcome, start)
}

// kindOf treats numbers without a known marker as generic documents.
func kindOf(documentNumber string) document.Kind {
	if kind, ok := document.KindFromNumber(documentNumber); ok {
		return kind
	}
	return document.KindStorageDocument
}
