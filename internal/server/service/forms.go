package service

import (
	"context"
	"strings"

	"github.com/raai2005/form-builder-app/internal/server/models"
)

// FormsService owns form definitions: CRUD with per-owner visibility,
// dashboard statistics and the public view counter.
type FormsService struct {
	repo Repository
}

// FormInput is the client-supplied part of a form definition, shared by
// create and update.
type FormInput struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Fields      []models.FormField `json:"fields"`
	Status      models.FormStatus  `json:"status"`
}

func (s *FormsService) validate(in *FormInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	var ve ValidationError
	if in.Title == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "Form title is required"})
	}
	for _, f := range in.Fields {
		if f.ID == "" {
			ve.Errors = append(ve.Errors, FieldError{Field: "fields", Message: "Field id is required"})
			break
		}
		if !f.Type.Valid() {
			ve.Errors = append(ve.Errors, FieldError{Field: "fields", Message: "Invalid field type: " + string(f.Type)})
			break
		}
		if f.Label == "" {
			ve.Errors = append(ve.Errors, FieldError{Field: "fields", Message: "Field label is required"})
			break
		}
	}
	if len(ve.Errors) > 0 {
		return &ve
	}
	// Omitted or unknown status falls back to draft.
	if !in.Status.Valid() {
		in.Status = models.FormStatusDraft
	}
	if in.Fields == nil {
		in.Fields = []models.FormField{}
	}
	return nil
}

func (s *FormsService) Create(ctx context.Context, ownerID string, in FormInput) (models.Form, error) {
	if err := s.validate(&in); err != nil {
		return models.Form{}, err
	}
	return s.repo.CreateForm(ctx, models.Form{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Fields:      in.Fields,
		Status:      in.Status,
	})
}

// List returns the owner's forms, newest-updated first, together with
// dashboard stats. Status "all" or empty applies no filter. Total and active
// counts cover all of the owner's forms; response and view totals cover the
// returned ones.
func (s *FormsService) List(ctx context.Context, ownerID string, statusFilter string) ([]models.Form, models.FormStats, error) {
	var status models.FormStatus
	if statusFilter != "" && statusFilter != "all" {
		status = models.FormStatus(statusFilter)
	}
	forms, err := s.repo.ListForms(ctx, ownerID, status)
	if err != nil {
		return nil, models.FormStats{}, err
	}

	var stats models.FormStats
	if stats.TotalForms, err = s.repo.CountFormsByOwner(ctx, ownerID, ""); err != nil {
		return nil, models.FormStats{}, err
	}
	if stats.ActiveForms, err = s.repo.CountFormsByOwner(ctx, ownerID, models.FormStatusActive); err != nil {
		return nil, models.FormStats{}, err
	}
	ids := make([]string, 0, len(forms))
	for _, f := range forms {
		ids = append(ids, f.ID)
		stats.TotalViews += f.Views
	}
	if stats.TotalResponses, err = s.repo.CountResponsesForForms(ctx, ids); err != nil {
		return nil, models.FormStats{}, err
	}
	return forms, stats, nil
}

func (s *FormsService) Get(ctx context.Context, ownerID, id string) (models.Form, error) {
	return s.repo.GetForm(ctx, ownerID, id)
}

// Update is full-replace: title, description, fields and status are all
// overwritten, with the same validation as Create.
func (s *FormsService) Update(ctx context.Context, ownerID, id string, in FormInput) (models.Form, error) {
	if err := s.validate(&in); err != nil {
		return models.Form{}, err
	}
	return s.repo.UpdateForm(ctx, ownerID, id, in.Title, in.Description, in.Fields, in.Status)
}

// Delete removes the form and then its responses. The form goes first so a
// crash in between leaves orphaned responses, never a dangling form.
func (s *FormsService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.DeleteForm(ctx, ownerID, id); err != nil {
		return err
	}
	_, err := s.repo.DeleteResponsesByForm(ctx, id)
	return err
}

// IncrementViews is called when anyone opens a form to fill it in; there is
// deliberately no ownership check.
func (s *FormsService) IncrementViews(ctx context.Context, id string) (int64, error) {
	return s.repo.IncrementFormViews(ctx, id)
}
