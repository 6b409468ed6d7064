package service

import (
	"context"

	"github.com/raai2005/form-builder-app/internal/server/airtable"
	"github.com/raai2005/form-builder-app/internal/server/config"
	"github.com/raai2005/form-builder-app/internal/server/models"
)

type Repository interface {
	CreateUser(ctx context.Context, fullName, email, passwordHash string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (user models.User, passwordHash string, err error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	SetAirtableCredential(ctx context.Context, userID string, cred *models.AirtableCredential) error

	CreateForm(ctx context.Context, form models.Form) (models.Form, error)
	ListForms(ctx context.Context, ownerID string, status models.FormStatus) ([]models.Form, error)
	GetForm(ctx context.Context, ownerID, id string) (models.Form, error)
	GetFormByID(ctx context.Context, id string) (models.Form, error)
	UpdateForm(ctx context.Context, ownerID, id, title, description string, fields []models.FormField, status models.FormStatus) (models.Form, error)
	DeleteForm(ctx context.Context, ownerID, id string) error
	IncrementFormViews(ctx context.Context, id string) (int64, error)
	AddToResponseCount(ctx context.Context, formID string, delta int64) error
	CountFormsByOwner(ctx context.Context, ownerID string, status models.FormStatus) (int64, error)

	CreateResponse(ctx context.Context, resp models.Response) (models.Response, error)
	ListResponsesByForm(ctx context.Context, formID string) ([]models.Response, error)
	GetResponse(ctx context.Context, id string) (models.Response, error)
	DeleteResponse(ctx context.Context, id string) error
	DeleteResponsesByForm(ctx context.Context, formID string) (int64, error)
	CountResponsesForForms(ctx context.Context, formIDs []string) (int64, error)
}

type Services struct {
	Auth      *AuthService
	Forms     *FormsService
	Responses *ResponsesService
	Airtable  *AirtableService
}

func NewServices(repo Repository, cfg config.Config, atClient *airtable.Client) *Services {
	return &Services{
		Auth:      &AuthService{repo: repo, jwtSecret: []byte(cfg.JWTSecret)},
		Forms:     &FormsService{repo: repo},
		Responses: &ResponsesService{repo: repo},
		Airtable:  &AirtableService{repo: repo, client: atClient},
	}
}
