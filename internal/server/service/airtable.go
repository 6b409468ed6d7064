package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/raai2005/form-builder-app/internal/server/airtable"
	"github.com/raai2005/form-builder-app/internal/server/models"
)

// expirySkew is how close to expiry a stored access token may get before
// AccessToken refreshes it.
const expirySkew = time.Minute

// AirtableService manages the per-user Airtable connection: the
// authorization-code exchange, token refresh and the stored credential
// bundle on the user record.
type AirtableService struct {
	repo   Repository
	client *airtable.Client
}

// ConnectURL returns the provider authorization URL for the user to be
// redirected to. Nothing is persisted at this step; the user id rides along
// as the state parameter.
func (s *AirtableService) ConnectURL(ctx context.Context, userID string) (string, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return "", err
	}
	return s.client.AuthorizationURL(userID), nil
}

// HandleCallback completes the OAuth flow: code for tokens, whoami for the
// provider identity, then the whole bundle onto the user named by state.
func (s *AirtableService) HandleCallback(ctx context.Context, code, state string) error {
	if code == "" {
		return errors.New("authorization code is missing")
	}
	tok, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}
	airtableUserID, err := s.client.WhoAmI(ctx, tok.AccessToken)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return s.repo.SetAirtableCredential(ctx, state, &models.AirtableCredential{
		UserID:       airtableUserID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenExpiry:  tok.Expiry(now),
		ConnectedAt:  now,
		Scopes:       splitScopes(tok.Scope),
	})
}

// Refresh exchanges the stored refresh token for a new pair and overwrites
// the stored bundle, keeping the provider identity, connection time and
// scopes. Returns the new access token.
func (s *AirtableService) Refresh(ctx context.Context, userID string) (string, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	cred := user.Airtable
	if cred == nil || cred.RefreshToken == "" {
		return "", ErrAirtableNotConnected
	}
	tok, err := s.client.Refresh(ctx, cred.RefreshToken)
	if err != nil {
		return "", err
	}
	cred.AccessToken = tok.AccessToken
	cred.RefreshToken = tok.RefreshToken
	cred.TokenExpiry = tok.Expiry(time.Now().UTC())
	if err := s.repo.SetAirtableCredential(ctx, userID, cred); err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// AccessToken returns a usable access token, refreshing first when the
// stored one expires within the skew window.
func (s *AirtableService) AccessToken(ctx context.Context, userID string) (string, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	cred := user.Airtable
	if cred == nil || cred.AccessToken == "" {
		return "", ErrAirtableNotConnected
	}
	if time.Now().Add(expirySkew).Before(cred.TokenExpiry) {
		return cred.AccessToken, nil
	}
	return s.Refresh(ctx, userID)
}

func (s *AirtableService) Status(ctx context.Context, userID string) (models.AirtableStatus, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return models.AirtableStatus{}, err
	}
	cred := user.Airtable
	if cred == nil || cred.AccessToken == "" {
		return models.AirtableStatus{Connected: false}, nil
	}
	connectedAt := cred.ConnectedAt
	return models.AirtableStatus{
		Connected:   true,
		UserID:      cred.UserID,
		ConnectedAt: &connectedAt,
		Scopes:      cred.Scopes,
	}, nil
}

// Disconnect clears the stored bundle. Idempotent: clearing an absent bundle
// succeeds.
func (s *AirtableService) Disconnect(ctx context.Context, userID string) error {
	return s.repo.SetAirtableCredential(ctx, userID, nil)
}

func splitScopes(scope string) []string {
	if scope == "" {
		return nil
	}
	return strings.Fields(scope)
}
