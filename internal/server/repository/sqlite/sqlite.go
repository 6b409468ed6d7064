package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/raai2005/form-builder-app/internal/server/models"
	"github.com/raai2005/form-builder-app/internal/server/repository"
)

type Repository struct {
	db *sqlx.DB
}

func New(dsn string) (*Repository, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer; one pooled connection keeps concurrent
	// counter updates from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			airtable BLOB,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS forms (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			fields BLOB NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			views INTEGER NOT NULL DEFAULT 0,
			response_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			FOREIGN KEY(owner_id) REFERENCES users(id)
		);
		CREATE INDEX IF NOT EXISTS idx_forms_owner_status ON forms(owner_id, status);
		CREATE TABLE IF NOT EXISTS responses (
			id TEXT PRIMARY KEY,
			form_id TEXT NOT NULL,
			data BLOB NOT NULL,
			submitted_at TIMESTAMP NOT NULL,
			ip_address TEXT,
			FOREIGN KEY(form_id) REFERENCES forms(id)
		);
		CREATE INDEX IF NOT EXISTS idx_responses_form_submitted ON responses(form_id, submitted_at DESC);
	`); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error { return r.db.Close() }

// Users

type userRow struct {
	ID           string    `db:"id"`
	FullName     string    `db:"full_name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Airtable     []byte    `db:"airtable"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (row userRow) toUser() models.User {
	u := models.User{
		ID:        row.ID,
		FullName:  row.FullName,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if len(row.Airtable) > 0 {
		var cred models.AirtableCredential
		if err := json.Unmarshal(row.Airtable, &cred); err == nil {
			u.Airtable = &cred
		}
	}
	return u
}

func (r *Repository) CreateUser(ctx context.Context, fullName, email, passwordHash string) (models.User, error) {
	now := time.Now().UTC()
	row := userRow{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users(id, full_name, email, password_hash, created_at, updated_at) VALUES(?,?,?,?,?,?)`,
		row.ID, row.FullName, row.Email, row.PasswordHash, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return models.User{}, repository.ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return row.toUser(), nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (models.User, string, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, "", repository.ErrNotFound
		}
		return models.User{}, "", err
	}
	return row.toUser(), row.PasswordHash, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, repository.ErrNotFound
		}
		return models.User{}, err
	}
	return row.toUser(), nil
}

// SetAirtableCredential stores the full OAuth bundle on the user, or clears
// it when cred is nil.
func (r *Repository) SetAirtableCredential(ctx context.Context, userID string, cred *models.AirtableCredential) error {
	var blob []byte
	if cred != nil {
		b, err := json.Marshal(cred)
		if err != nil {
			return err
		}
		blob = b
	}
	res, err := r.db.ExecContext(ctx, `UPDATE users SET airtable = ?, updated_at = ? WHERE id = ?`,
		blob, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Forms

type formRow struct {
	ID            string    `db:"id"`
	OwnerID       string    `db:"owner_id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Fields        []byte    `db:"fields"`
	Status        string    `db:"status"`
	Views         int64     `db:"views"`
	ResponseCount int64     `db:"response_count"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (row formRow) toForm() models.Form {
	f := models.Form{
		ID:            row.ID,
		OwnerID:       row.OwnerID,
		Title:         row.Title,
		Description:   row.Description,
		Fields:        []models.FormField{},
		Status:        models.FormStatus(row.Status),
		Views:         row.Views,
		ResponseCount: row.ResponseCount,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if len(row.Fields) > 0 {
		_ = json.Unmarshal(row.Fields, &f.Fields)
	}
	return f
}

func (r *Repository) CreateForm(ctx context.Context, form models.Form) (models.Form, error) {
	form.ID = uuid.NewString()
	form.Views = 0
	form.ResponseCount = 0
	now := time.Now().UTC()
	form.CreatedAt = now
	form.UpdatedAt = now
	if form.Fields == nil {
		form.Fields = []models.FormField{}
	}
	fieldsJSON, err := json.Marshal(form.Fields)
	if err != nil {
		return models.Form{}, err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO forms(id, owner_id, title, description, fields, status, views, response_count, created_at, updated_at)
		VALUES(?,?,?,?,?,?,?,?,?,?)`,
		form.ID, form.OwnerID, form.Title, form.Description, fieldsJSON, string(form.Status),
		form.Views, form.ResponseCount, form.CreatedAt, form.UpdatedAt)
	if err != nil {
		return models.Form{}, err
	}
	return form, nil
}

// ListForms returns the owner's forms, most recently updated first. An empty
// status applies no filter.
func (r *Repository) ListForms(ctx context.Context, ownerID string, status models.FormStatus) ([]models.Form, error) {
	q := sq.Select("*").From("forms").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("updated_at DESC")
	if status != "" {
		q = q.Where(sq.Eq{"status": string(status)})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var rows []formRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]models.Form, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toForm())
	}
	return out, nil
}

func (r *Repository) GetForm(ctx context.Context, ownerID, id string) (models.Form, error) {
	var row formRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM forms WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Form{}, repository.ErrNotFound
		}
		return models.Form{}, err
	}
	return row.toForm(), nil
}

// GetFormByID looks a form up without an ownership filter. Used by the
// public submission and view-count paths.
func (r *Repository) GetFormByID(ctx context.Context, id string) (models.Form, error) {
	var row formRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM forms WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Form{}, repository.ErrNotFound
		}
		return models.Form{}, err
	}
	return row.toForm(), nil
}

// UpdateForm replaces title, description, fields and status on the owner's
// form. Counters and created_at are untouched.
func (r *Repository) UpdateForm(ctx context.Context, ownerID, id string, title, description string, fields []models.FormField, status models.FormStatus) (models.Form, error) {
	if fields == nil {
		fields = []models.FormField{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return models.Form{}, err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE forms SET title = ?, description = ?, fields = ?, status = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		title, description, fieldsJSON, string(status), time.Now().UTC(), id, ownerID)
	if err != nil {
		return models.Form{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Form{}, repository.ErrNotFound
	}
	return r.GetForm(ctx, ownerID, id)
}

func (r *Repository) DeleteForm(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM forms WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// IncrementFormViews bumps the view counter in a single UPDATE so concurrent
// opens never lose a count, and returns the new value.
func (r *Repository) IncrementFormViews(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE forms SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, repository.ErrNotFound
	}
	var views int64
	if err := r.db.GetContext(ctx, &views, `SELECT views FROM forms WHERE id = ?`, id); err != nil {
		return 0, err
	}
	return views, nil
}

// AddToResponseCount applies a relative adjustment to the form's response
// counter. No floor at zero.
func (r *Repository) AddToResponseCount(ctx context.Context, formID string, delta int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE forms SET response_count = response_count + ? WHERE id = ?`, delta, formID)
	return err
}

func (r *Repository) CountFormsByOwner(ctx context.Context, ownerID string, status models.FormStatus) (int64, error) {
	q := sq.Select("COUNT(*)").From("forms").Where(sq.Eq{"owner_id": ownerID})
	if status != "" {
		q = q.Where(sq.Eq{"status": string(status)})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, err
	}
	return n, nil
}

// Responses

type responseRow struct {
	ID          string         `db:"id"`
	FormID      string         `db:"form_id"`
	Data        []byte         `db:"data"`
	SubmittedAt time.Time      `db:"submitted_at"`
	IPAddress   sql.NullString `db:"ip_address"`
}

func (row responseRow) toResponse() models.Response {
	resp := models.Response{
		ID:          row.ID,
		FormID:      row.FormID,
		Data:        map[string]any{},
		SubmittedAt: row.SubmittedAt,
		IPAddress:   row.IPAddress.String,
	}
	if len(row.Data) > 0 {
		_ = json.Unmarshal(row.Data, &resp.Data)
	}
	return resp
}

func (r *Repository) CreateResponse(ctx context.Context, resp models.Response) (models.Response, error) {
	resp.ID = uuid.NewString()
	if resp.SubmittedAt.IsZero() {
		resp.SubmittedAt = time.Now().UTC()
	}
	dataJSON, err := json.Marshal(resp.Data)
	if err != nil {
		return models.Response{}, err
	}
	var ip sql.NullString
	if resp.IPAddress != "" {
		ip = sql.NullString{String: resp.IPAddress, Valid: true}
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO responses(id, form_id, data, submitted_at, ip_address) VALUES(?,?,?,?,?)`,
		resp.ID, resp.FormID, dataJSON, resp.SubmittedAt, ip)
	if err != nil {
		return models.Response{}, err
	}
	return resp, nil
}

func (r *Repository) ListResponsesByForm(ctx context.Context, formID string) ([]models.Response, error) {
	var rows []responseRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM responses WHERE form_id = ? ORDER BY submitted_at DESC`, formID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Response, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toResponse())
	}
	return out, nil
}

func (r *Repository) GetResponse(ctx context.Context, id string) (models.Response, error) {
	var row responseRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM responses WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Response{}, repository.ErrNotFound
		}
		return models.Response{}, err
	}
	return row.toResponse(), nil
}

func (r *Repository) DeleteResponse(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM responses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteResponsesByForm(ctx context.Context, formID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM responses WHERE form_id = ?`, formID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// CountResponsesForForms counts responses across the given form ids.
func (r *Repository) CountResponsesForForms(ctx context.Context, formIDs []string) (int64, error) {
	if len(formIDs) == 0 {
		return 0, nil
	}
	query, args, err := sq.Select("COUNT(*)").From("responses").
		Where(sq.Eq{"form_id": formIDs}).ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, err
	}
	return n, nil
}
