package service

import (
	"context"
	"errors"

	"github.com/raai2005/form-builder-app/internal/server/models"
	"github.com/raai2005/form-builder-app/internal/server/repository"
)

// ResponsesService handles public submission intake and the owner-side
// retrieval and deletion of submissions.
type ResponsesService struct {
	repo Repository
}

// Submit stores a submission against an active form and bumps the form's
// response counter. The payload is stored as-is; it is not validated against
// the form's field definitions.
func (s *ResponsesService) Submit(ctx context.Context, formID string, data map[string]any, sourceIP string) (models.Response, error) {
	if data == nil {
		return models.Response{}, newValidationError("data", "Response data must be an object")
	}
	form, err := s.repo.GetFormByID(ctx, formID)
	if err != nil {
		return models.Response{}, err
	}
	if form.Status != models.FormStatusActive {
		return models.Response{}, ErrNotAcceptingResponses
	}
	resp, err := s.repo.CreateResponse(ctx, models.Response{
		FormID:    formID,
		Data:      data,
		IPAddress: sourceIP,
	})
	if err != nil {
		return models.Response{}, err
	}
	if err := s.repo.AddToResponseCount(ctx, formID, 1); err != nil {
		return models.Response{}, err
	}
	return resp, nil
}

// ListForForm returns all responses for one of the caller's forms, newest
// first. A form owned by someone else is indistinguishable from a missing
// one.
func (s *ResponsesService) ListForForm(ctx context.Context, ownerID, formID string) ([]models.Response, error) {
	if _, err := s.repo.GetForm(ctx, ownerID, formID); err != nil {
		return nil, err
	}
	return s.repo.ListResponsesByForm(ctx, formID)
}

// GetOne fetches a single response. Unlike the form paths, a response whose
// parent form belongs to someone else fails with ErrAccessDenied rather than
// not-found.
func (s *ResponsesService) GetOne(ctx context.Context, ownerID, id string) (models.Response, error) {
	resp, err := s.repo.GetResponse(ctx, id)
	if err != nil {
		return models.Response{}, err
	}
	if _, err := s.repo.GetForm(ctx, ownerID, resp.FormID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Response{}, ErrAccessDenied
		}
		return models.Response{}, err
	}
	return resp, nil
}

// Delete removes a response and decrements the parent form's counter. The
// counter has no floor at zero.
func (s *ResponsesService) Delete(ctx context.Context, ownerID, id string) error {
	resp, err := s.repo.GetResponse(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.repo.GetForm(ctx, ownerID, resp.FormID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccessDenied
		}
		return err
	}
	if err := s.repo.DeleteResponse(ctx, id); err != nil {
		return err
	}
	return s.repo.AddToResponseCount(ctx, resp.FormID, -1)
}
