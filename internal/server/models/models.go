package models

import sm "github.com/raai2005/form-builder-app/internal/shared/models"

type (
	User               = sm.User
	Form               = sm.Form
	FormField          = sm.FormField
	FormStatus         = sm.FormStatus
	FieldType          = sm.FieldType
	FieldValidation    = sm.FieldValidation
	FormStats          = sm.FormStats
	Response           = sm.Response
	AirtableCredential = sm.AirtableCredential
	AirtableStatus     = sm.AirtableStatus
	AuthResponse       = sm.AuthResponse
)

const (
	FormStatusDraft    = sm.FormStatusDraft
	FormStatusActive   = sm.FormStatusActive
	FormStatusArchived = sm.FormStatusArchived

	FieldTypeText     = sm.FieldTypeText
	FieldTypeEmail    = sm.FieldTypeEmail
	FieldTypeNumber   = sm.FieldTypeNumber
	FieldTypeTextarea = sm.FieldTypeTextarea
	FieldTypeSelect   = sm.FieldTypeSelect
	FieldTypeRadio    = sm.FieldTypeRadio
	FieldTypeCheckbox = sm.FieldTypeCheckbox
	FieldTypeDate     = sm.FieldTypeDate
	FieldTypeFile     = sm.FieldTypeFile
)
