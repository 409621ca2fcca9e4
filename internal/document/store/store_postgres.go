package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"fes/internal/document"
	"fes/pkg/platform/audit"
	"fes/pkg/platform/sentinel"
	txcontext "fes/pkg/platform/tx"
)

//go:embed migrations/0001_documents.sql
var schemaSQL string

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore persists documents in a single table tagged by kind.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed document store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the documents table and its indexes in one transaction.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.execer(ctx).ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("migrate documents: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const documentColumns = `document_number, kind, status, pdf_reference, created_at, exporter, export_data, audit, investigation`

func (s *PostgresStore) Save(ctx context.Context, doc *document.Document) error {
	var exportData []byte
	if doc.Fields != nil {
		raw, err := json.Marshal(doc.Fields)
		if err != nil {
			return fmt.Errorf("marshal export data: %w", err)
		}
		exportData = raw
	}
	trail := doc.Audit
	if trail == nil {
		trail = []audit.Event{}
	}
	auditJSON, err := json.Marshal(trail)
	if err != nil {
		return fmt.Errorf("marshal audit trail: %w", err)
	}
	var exporter []byte
	if doc.Exporter != nil {
		if exporter, err = json.Marshal(doc.Exporter); err != nil {
			return fmt.Errorf("marshal exporter: %w", err)
		}
	}
	var investigation []byte
	if doc.Investigation != nil {
		if investigation, err = json.Marshal(doc.Investigation); err != nil {
			return fmt.Errorf("marshal investigation: %w", err)
		}
	}

	_, err = s.execer(ctx).ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)
		ON CONFLICT (document_number) DO UPDATE SET
			kind = EXCLUDED.kind,
			status = EXCLUDED.status,
			pdf_reference = EXCLUDED.pdf_reference,
			exporter = EXCLUDED.exporter,
			export_data = EXCLUDED.export_data,
			audit = EXCLUDED.audit,
			investigation = EXCLUDED.investigation
	`, doc.DocumentNumber, string(doc.Kind), string(doc.Status), doc.PdfReference,
		doc.CreatedAt, nullJSON(exporter), nullJSON(exportData), auditJSON, nullJSON(investigation))
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindOne(ctx context.Context, pred document.Predicate) (*document.Document, error) {
	where, args := whereClause(pred, 1)
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents`+where+` ORDER BY created_at DESC LIMIT 1`, args...)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return doc, nil
}

func (s *PostgresStore) Count(ctx context.Context, pred document.Predicate) (int, error) {
	where, args := whereClause(pred, 1)
	var count int
	err := s.execer(ctx).QueryRowContext(ctx, `SELECT count(*) FROM documents`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

// UpdateOne applies the update to the newest matching row in one statement.
func (s *PostgresStore) UpdateOne(ctx context.Context, pred document.Predicate, update document.Update) error {
	var status sql.NullString
	if update.Status != nil {
		status = sql.NullString{String: string(*update.Status), Valid: true}
	}
	var investigation []byte
	if update.Investigation != nil {
		raw, err := json.Marshal(update.Investigation)
		if err != nil {
			return fmt.Errorf("marshal investigation: %w", err)
		}
		investigation = raw
	}

	where, args := whereClause(pred, 3)
	query := `
		UPDATE documents SET
			status = COALESCE($1, status),
			investigation = COALESCE($2::jsonb, investigation)
		WHERE document_number = (
			SELECT document_number FROM documents` + where + `
			ORDER BY created_at DESC LIMIT 1 FOR UPDATE
		)`
	args = append([]any{status, nullJSON(investigation)}, args...)

	res, err := s.execer(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNoRowsAffected
	}
	return nil
}

// Append adds an event to the end of the document's audit array.
func (s *PostgresStore) Append(ctx context.Context, documentNumber string, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	res, err := s.execer(ctx).ExecContext(ctx,
		`UPDATE documents SET audit = audit || jsonb_build_array($2::jsonb) WHERE document_number = $1`,
		documentNumber, payload)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("append audit event rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// whereClause renders the predicate with placeholders numbered from start.
func whereClause(pred document.Predicate, start int) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", start+len(args)-1)
	}

	if pred.DocumentNumber != "" {
		conds = append(conds, "document_number = "+next(pred.DocumentNumber))
	}
	if pred.PdfReference != "" {
		conds = append(conds, "pdf_reference = "+next(pred.PdfReference))
	}
	if len(pred.Kinds) > 0 {
		conds = append(conds, "kind = ANY("+next(pq.Array(kindStrings(pred.Kinds)))+")")
	}
	if len(pred.StatusIn) > 0 {
		conds = append(conds, "status = ANY("+next(pq.Array(statusStrings(pred.StatusIn)))+")")
	}
	if len(pred.StatusNotIn) > 0 {
		conds = append(conds, "NOT (status = ANY("+next(pq.Array(statusStrings(pred.StatusNotIn)))+"))")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanDocument(row *sql.Row) (*document.Document, error) {
	var (
		number, kind, status string
		pdfReference         sql.NullString
		doc                  document.Document
		exporter             []byte
		exportData           []byte
		auditJSON            []byte
		investigation        []byte
	)
	if err := row.Scan(&number, &kind, &status, &pdfReference, &doc.CreatedAt, &exporter, &exportData, &auditJSON, &investigation); err != nil {
		return nil, err
	}
	doc.DocumentNumber = number
	doc.Kind = document.Kind(kind)
	doc.Status = document.Status(status)
	doc.PdfReference = pdfReference.String
	doc.CreatedAt = doc.CreatedAt.UTC()

	if len(exporter) > 0 {
		doc.Exporter = &document.Exporter{}
		if err := json.Unmarshal(exporter, doc.Exporter); err != nil {
			return nil, fmt.Errorf("unmarshal exporter: %w", err)
		}
	}
	fields, err := document.DecodeExportData(doc.Kind, exportData)
	if err != nil {
		return nil, err
	}
	doc.Fields = fields
	if len(auditJSON) > 0 {
		if err := json.Unmarshal(auditJSON, &doc.Audit); err != nil {
			return nil, fmt.Errorf("unmarshal audit trail: %w", err)
		}
	}
	if len(investigation) > 0 {
		doc.Investigation = &document.Investigation{}
		if err := json.Unmarshal(investigation, doc.Investigation); err != nil {
			return nil, fmt.Errorf("unmarshal investigation: %w", err)
		}
	}
	return &doc, nil
}

func nullJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}

func kindStrings(kinds []document.Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func statusStrings(statuses []document.Status) []string {
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}
