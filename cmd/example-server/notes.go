package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-service-kit/auth"
	"github.com/MKhiriev/go-service-kit/config"
	"github.com/MKhiriev/go-service-kit/csv"
	"github.com/MKhiriev/go-service-kit/entity"
	"github.com/MKhiriev/go-service-kit/httperr"
	"github.com/MKhiriev/go-service-kit/logger"
	"github.com/MKhiriev/go-service-kit/store"
)

const notesTable = "notes"

// Note is the demo resource: the smallest entity exercising the kit's
// audit, soft-delete and optimistic-locking embeddables.
type Note struct {
	entity.Base

	Title string `json:"title"`
	Body  string `json:"body"`
}

// notePayload is the mutable part of a note accepted from clients.
type notePayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

var noteImportSpecs = []csv.FieldSpec{
	{Name: "title", Type: csv.FieldText, Required: true},
	{Name: "body", Type: csv.FieldText, Required: true, AllowEmpty: true},
}

// noteService stores notes through the kit's database plumbing and records
// every mutation in the audit trail.
type noteService struct {
	db       *store.DB
	auditLog *store.AuditRepository
	recorder store.AuditRecorder
}

func newNoteService(db *store.DB, auditLog *store.AuditRepository, recorder store.AuditRecorder) *noteService {
	return &noteService{db: db, auditLog: auditLog, recorder: recorder}
}

// ensureSchema creates the demo table. A real service would ship its own
// goose migration; the demo keeps the schema local so the kit migrations
// stay service-agnostic.
func (s *noteService) ensureSchema(ctx context.Context) error {
	idColumn := "BIGSERIAL PRIMARY KEY"
	if s.db.Driver() == config.DriverSQLite {
		idColumn = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS notes (
    id %s,
    title TEXT NOT NULL,
    body TEXT NOT NULL DEFAULT '',
    version BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    created_by TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMP NOT NULL,
    updated_by TEXT NOT NULL DEFAULT '',
    deleted BOOLEAN NOT NULL DEFAULT FALSE,
    deleted_at TIMESTAMP,
    deleted_by TEXT NOT NULL DEFAULT ''
)`, idColumn)

	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("error creating notes table: %w", err)
	}

	return nil
}

// routes mounts the demo resource. Reads need a valid token, mutations
// additionally need the notes:write scope.
func (s *noteService) routes(v auth.Verifier) func(chi.Router) {
	return func(r chi.Router) {
		r.Use(auth.Middleware(v))

		r.Get("/{id}", s.get)
		r.Get("/{id}/audit", s.auditTrail)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireScopes("notes:write"))
			r.Post("/", s.create)
			r.Put("/{id}", s.update)
			r.Delete("/{id}", s.delete)
			r.Post("/import", s.importCSV)
		})
	}
}

func (s *noteService) create(w http.ResponseWriter, r *http.Request) {
	var payload notePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httperr.Respond(w, r, fmt.Errorf("%w: invalid JSON body", httperr.ErrBadRequest))
		return
	}
	if payload.Title == "" {
		httperr.Respond(w, r, httperr.New(http.StatusBadRequest, "title_required", "title must not be empty"))
		return
	}

	actor, _ := auth.GetSubjectFromContext(r.Context())

	note := Note{Title: payload.Title, Body: payload.Body}
	note.Touch(actor)

	query, args, err := insertNoteQuery(note)
	if err != nil {
		httperr.Respond(w, r, err)
		return
	}

	err = store.WithRetry(r.Context(), s.db, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(&note.ID)
	})
	if err != nil {
		httperr.Respond(w, r, store.SentinelFor(err))
		return
	}

	s.audit(r, store.ActionCreate, note.ID, nil, &note)
	writeJSON(w, r, note, http.StatusCreated)
}

func (s *noteService) get(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		httperr.Respond(w, r, err)
		return
	}

	note, err := s.fetch(r.Context(), id)
	if err != nil {
		httperr.Respond(w, r, err)
		return
	}

	writeJSON(w, r, note, http.StatusOK)
}

func (s *noteService) update(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		httperr.Respond(w, r, err)
		return
	}

	var payload struct {
		notePayload
		Version int64 `json:"version"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httperr.Respond(w, r, fmt.Errorf("%w: invalid JSON body", httperr.ErrBadRequest))
		return
	}
	if payload.Title == "" {
		httperr.Respond(w, r, httperr.New(http.StatusBadRequest, "title_required", "title must not be empty"))
		return
	}

	actor, _ := auth.GetSubjectFromContext(r.Context())

	// снимок до изменения нужен только аудиту
	old, err := s.fetch(r.Context(), id)
	if err != nil {
		httperr.Respond(w, r, err)
		return
	}

	updated := old
	updated.Title = payload.Title
	updated.Body = payload.Body
	updated.Version = payload.Version
	updated.Touch(actor)
	updated.BumpVersion()

	upd := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update(notesTable).
		Set("title", updated.Title).
		Set("body", updated.Body).
		Set("version", updated.Version).
		Where(sq.Eq{"id": id, "deleted": false})
	upd = entity.TouchSet(upd, actor)

	query, args, err := entity.VersionGuard(upd, payload.Version).ToSql()
	if err != nil {
		httperr.Respond(w, r, err)
		return
	}

	res, err := s.db.ExecContext(r.Context(), query, args...)
	if err != nil {
		httperr.Respond(w, r, store.SentinelFor(err))
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		httperr.Respond(w, r, fmt.Errorf("%w: note %d was changed by someone else", httperr.ErrConflict, id))
		return
	}

	s.audit(r, store.ActionUpdate, id, &old, &updated)
	writeJSON(w, r, updated, http.StatusOK)
}

func (s *noteService) delete(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		httperr.Respond(w, r, err)
		return
	}

	actor, _ := auth.GetSubjectFromContext(r.Context())

	old, err := s.fetch(r.Context(), id)
	if err != nil {
		httperr.Respond(w, r, err)
		return
	}

	upd := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update(notesTable).
		Where(sq.Eq{"id": id, "deleted": false})

	query, args, err := entity.SoftDeleteSet(upd, actor).ToSql()
	if err != nil {
		httperr.Respond(w, r, err)
		return
	}

	res, err := s.db.ExecContext(r.Context(), query, args...)
	if err != nil {
		httperr.Respond(w, r, store.SentinelFor(err))
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		httperr.Respond(w, r, fmt.Errorf("%w: note %d", httperr.ErrNotFound, id))
		return
	}

	s.audit(r, store.ActionDelete, id, &old, nil)
	w.WriteHeader(http.StatusNoContent)
}

// importCSV bulk-loads notes from a CSV body in one transaction. Rows that
// fail validation do not abort the import: they come back as a failure
// file with a reason column, ready to fix up and re-submit.
func (s *noteService) importCSV(w http.ResponseWriter, r *http.Request) {
	doc, err := csv.Read(r.Body)
	if err != nil {
		httperr.Respond(w, r, fmt.Errorf("%w: %v", httperr.ErrBadRequest, err))
		return
	}

	if err := csv.ValidateHeaders(doc.Headers, noteImportSpecs); err != nil {
		httperr.Respond(w, r, fmt.Errorf("%w: %v", httperr.ErrUnprocessable, err))
		return
	}

	rowErrs, err := doc.Validate(r.Context(), noteImportSpecs)
	if err != nil {
		httperr.Respond(w, r, err)
		return
	}

	badLines := make(map[int]string, len(rowErrs))
	for _, rowErr := range rowErrs {
		if _, seen := badLines[rowErr.Line]; !seen {
			badLines[rowErr.Line] = failureReason(rowErr)
		}
	}

	actor, _ := auth.GetSubjectFromContext(r.Context())
	failures := csv.NewFailures(doc.Headers)

	var imported []Note
	err = store.Tx(r.Context(), s.db, func(tx *sql.Tx) error {
		return doc.Each(r.Context(), func(line int, row csv.Row) error {
			if reason, bad := badLines[line]; bad {
				failures.Add(reason, row)
				return nil
			}

			note := Note{Title: row["title"], Body: row["body"]}
			note.Touch(actor)

			query, args, err := insertNoteQuery(note)
			if err != nil {
				return err
			}
			if err := tx.QueryRowContext(r.Context(), query, args...).Scan(&note.ID); err != nil {
				return store.SentinelFor(err)
			}

			imported = append(imported, note)
			return nil
		})
	})
	if err != nil {
		httperr.Respond(w, r, err)
		return
	}

	// аудит только после коммита
	for i := range imported {
		s.audit(r, store.ActionCreate, imported[i].ID, nil, &imported[i])
	}

	if !failures.Empty() {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("X-Imported-Count", strconv.Itoa(len(imported)))
		w.WriteHeader(http.StatusUnprocessableEntity)
		if err := failures.Write(w); err != nil {
			logger.FromRequest(r).Error().Err(err).Msg("error writing failures file")
		}
		return
	}

	writeJSON(w, r, map[string]int{"imported": len(imported)}, http.StatusCreated)
}

func (s *noteService) auditTrail(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		httperr.Respond(w, r, err)
		return
	}

	filter := store.AuditFilter{Entity: "note", EntityID: strconv.FormatInt(id, 10)}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		filter.Limit, err = strconv.ParseUint(limit, 10, 64)
		if err != nil {
			httperr.Respond(w, r, fmt.Errorf("%w: limit must be a positive integer", httperr.ErrBadRequest))
			return
		}
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		filter.Offset, err = strconv.ParseUint(offset, 10, 64)
		if err != nil {
			httperr.Respond(w, r, fmt.Errorf("%w: offset must be a positive integer", httperr.ErrBadRequest))
			return
		}
	}

	entries, err := s.auditLog.List(r.Context(), filter)
	if err != nil {
		httperr.Respond(w, r, err)
		return
	}

	writeJSON(w, r, entries, http.StatusOK)
}

// fetch loads a live note by id. Soft-deleted rows are invisible here.
func (s *noteService) fetch(ctx context.Context, id int64) (Note, error) {
	sel := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id", "title", "body", "version",
			"created_at", "created_by", "updated_at", "updated_by",
			"deleted", "deleted_at", "deleted_by").
		From(notesTable).
		Where(sq.Eq{"id": id})

	query, args, err := entity.NotDeleted(sel).ToSql()
	if err != nil {
		return Note{}, err
	}

	var note Note
	row := s.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&note.ID, &note.Title, &note.Body, &note.Version,
		&note.CreatedAt, &note.CreatedBy, &note.UpdatedAt, &note.UpdatedBy,
		&note.Deleted, &note.DeletedAt, &note.DeletedBy)
	if err != nil {
		return Note{}, store.SentinelFor(err)
	}

	return note, nil
}

// audit hands a mutation to the audit recorder. The recorder is
// best-effort: the business response never depends on it.
func (s *noteService) audit(r *http.Request, action string, id int64, oldNote, newNote *Note) {
	entry := store.AuditEntry{
		Action:   action,
		Entity:   "note",
		EntityID: strconv.FormatInt(id, 10),
		IP:       r.RemoteAddr,
	}
	if actor, ok := auth.GetSubjectFromContext(r.Context()); ok {
		entry.Actor = actor
	}
	if oldNote != nil {
		entry.OldValue, _ = json.Marshal(oldNote)
	}
	if newNote != nil {
		entry.NewValue, _ = json.Marshal(newNote)
	}

	if err := s.recorder.Record(r.Context(), entry); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("error recording audit entry")
	}
}

func insertNoteQuery(note Note) (string, []any, error) {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Insert(notesTable).
		Columns("title", "body", "version",
			"created_at", "created_by", "updated_at", "updated_by",
			"deleted", "deleted_by").
		Values(note.Title, note.Body, note.Version,
			note.CreatedAt, note.CreatedBy, note.UpdatedAt, note.UpdatedBy,
			note.Deleted, note.DeletedBy).
		Suffix("RETURNING id").
		ToSql()
}

func noteID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: note id must be an integer", httperr.ErrBadRequest)
	}

	return id, nil
}

func failureReason(rowErr csv.RowError) string {
	if rowErr.Field == "" {
		return rowErr.Reason
	}

	return rowErr.Field + ": " + rowErr.Reason
}

func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := httperr.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("error writing response")
	}
}
