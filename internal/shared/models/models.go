package models

import "time"

// User is the public shape of an account. The password hash never leaves the
// repository layer, and the Airtable bundle is only exposed through the
// integration status endpoint.
type User struct {
	ID        string              `json:"id"`
	FullName  string              `json:"fullName"`
	Email     string              `json:"email"`
	Airtable  *AirtableCredential `json:"-"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

type FormStatus string

const (
	FormStatusDraft    FormStatus = "draft"
	FormStatusActive   FormStatus = "active"
	FormStatusArchived FormStatus = "archived"
)

func (s FormStatus) Valid() bool {
	switch s {
	case FormStatusDraft, FormStatusActive, FormStatusArchived:
		return true
	}
	return false
}

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDate     FieldType = "date"
	FieldTypeFile     FieldType = "file"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeNumber, FieldTypeTextarea,
		FieldTypeSelect, FieldTypeRadio, FieldTypeCheckbox, FieldTypeDate, FieldTypeFile:
		return true
	}
	return false
}

// FieldValidation holds optional constraints attached to a field. They are
// stored with the form definition but not enforced on submission.
type FieldValidation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Message string   `json:"message,omitempty"`
}

type FormField struct {
	ID          string           `json:"id"`
	Type        FieldType        `json:"type"`
	Label       string           `json:"label"`
	Placeholder string           `json:"placeholder,omitempty"`
	Required    bool             `json:"required"`
	Options     []string         `json:"options,omitempty"`
	Validation  *FieldValidation `json:"validation,omitempty"`
}

type Form struct {
	ID            string      `json:"id"`
	OwnerID       string      `json:"userId"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Fields        []FormField `json:"fields"`
	Status        FormStatus  `json:"status"`
	Views         int64       `json:"views"`
	ResponseCount int64       `json:"responseCount"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// FormStats summarizes a user's forms for the dashboard. Computed per call,
// never cached.
type FormStats struct {
	TotalForms     int64 `json:"totalForms"`
	TotalResponses int64 `json:"totalResponses"`
	ActiveForms    int64 `json:"activeForms"`
	TotalViews     int64 `json:"totalViews"`
}

// Response is a single submission against a form. Data carries whatever
// object the submitter sent; it is not checked against the form's fields.
type Response struct {
	ID          string         `json:"id"`
	FormID      string         `json:"formId"`
	Data        map[string]any `json:"data"`
	SubmittedAt time.Time      `json:"submittedAt"`
	IPAddress   string         `json:"ipAddress,omitempty"`
}

// AirtableCredential is the OAuth bundle stored on a user after a successful
// callback exchange.
type AirtableCredential struct {
	UserID       string    `json:"userId"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	TokenExpiry  time.Time `json:"tokenExpiry"`
	ConnectedAt  time.Time `json:"connectedAt"`
	Scopes       []string  `json:"scopes"`
}

type AirtableStatus struct {
	Connected   bool       `json:"connected"`
	UserID      string     `json:"userId,omitempty"`
	ConnectedAt *time.Time `json:"connectedAt,omitempty"`
	Scopes      []string   `json:"scopes,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
