package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "textunited-client/internal/errors"
	"textunited-client/internal/language"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return language.Language(fl.Field().Int()).IsValid()
	})
	if err != nil {
		panic(fmt.Sprintf("register language validation: %v", err))
	}
	return v
}

// FileUpload is a file sent with a project creation request
type FileUpload struct {
	Name    string `validate:"required"`
	Content []byte `validate:"required"`
}

type fileUploadPayload struct {
	Filename string `json:"Filename"`
	Content  string `json:"Content"`
}

// NewFileUpload creates a file upload; content must be non-nil binary data
func NewFileUpload(name string, content []byte) (*FileUpload, error) {
	if content == nil {
		return nil, apperrors.NewContractViolationError("content", "must be binary data")
	}
	if name == "" {
		return nil, apperrors.NewContractViolationError("name", "is required")
	}
	return &FileUpload{Name: name, Content: content}, nil
}

// MarshalJSON encodes the upload in the remote format with base64 content
func (u FileUpload) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileUploadPayload{
		Filename: u.Name,
		Content:  EncodeContent(u.Content),
	})
}

// ProjectRequest holds everything needed to create a project with its files
type ProjectRequest struct {
	Name                string            `validate:"required"`
	SourceLanguage      language.Language `validate:"language"`
	TargetLanguage      language.Language `validate:"language"`
	Description         string
	Files               []*FileUpload `validate:"dive,required"`
	TranslatorID        int
	EndDate             *time.Time
	ProofreaderID       *int
	InCountryReviewerID *int
}

// ProjectRequestOption sets an optional ProjectRequest field
type ProjectRequestOption func(*ProjectRequest)

// WithEndDate sets the project deadline
func WithEndDate(t time.Time) ProjectRequestOption {
	return func(r *ProjectRequest) { r.EndDate = &t }
}

// WithProofreader assigns a proofreader account id
func WithProofreader(id int) ProjectRequestOption {
	return func(r *ProjectRequest) { r.ProofreaderID = &id }
}

// WithInCountryReviewer assigns an in-country reviewer account id
func WithInCountryReviewer(id int) ProjectRequestOption {
	return func(r *ProjectRequest) { r.InCountryReviewerID = &id }
}

// NewProjectRequest builds and validates a project creation request
func NewProjectRequest(name string, source, target language.Language, description string,
	files []*FileUpload, translatorID int, opts ...ProjectRequestOption) (*ProjectRequest, error) {
	req := &ProjectRequest{
		Name:           name,
		SourceLanguage: source,
		TargetLanguage: target,
		Description:    description,
		Files:          files,
		TranslatorID:   translatorID,
	}
	for _, opt := range opts {
		opt(req)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate reports the first contract violation of the request
func (r *ProjectRequest) Validate() error {
	if r == nil {
		return apperrors.NewContractViolationError("", "project request is nil")
	}
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		field := strings.TrimPrefix(fe.Namespace(), "ProjectRequest.")
		return apperrors.NewContractViolationError(field, contractMessage(fe))
	}
	return apperrors.NewContractViolationError("", err.Error())
}

func contractMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "language":
		if lang, ok := fe.Value().(language.Language); ok {
			return fmt.Sprintf("language id %d is not registered", lang.ID())
		}
		return "is not a registered language"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

type projectRequestPayload struct {
	ProjectName         string        `json:"ProjectName"`
	SourceLanguageID    int           `json:"SourceLanguageId"`
	TargetLanguageID    int           `json:"TargetLanguageId"`
	Description         string        `json:"Description"`
	Files               []*FileUpload `json:"Files"`
	TranslatorID        int           `json:"TranslatorId"`
	EndDate             *string       `json:"EndDate"`
	ProofreaderID       *int          `json:"ProofreaderId"`
	InCountryReviewerID *int          `json:"InCountryReviewerId"`
}

// MarshalJSON encodes the request in the remote fast-project format.
// Absent optional values are sent as null.
func (r *ProjectRequest) MarshalJSON() ([]byte, error) {
	payload := projectRequestPayload{
		ProjectName:         r.Name,
		SourceLanguageID:    r.SourceLanguage.ID(),
		TargetLanguageID:    r.TargetLanguage.ID(),
		Description:         r.Description,
		Files:               make([]*FileUpload, 0, len(r.Files)),
		TranslatorID:        r.TranslatorID,
		ProofreaderID:       r.ProofreaderID,
		InCountryReviewerID: r.InCountryReviewerID,
	}
	payload.Files = append(payload.Files, r.Files...)
	if r.EndDate != nil {
		end := FormatEndDate(*r.EndDate)
		payload.EndDate = &end
	}
	return json.Marshal(payload)
}

func (r *ProjectRequest) String() string {
	return fmt.Sprintf("'%s' %s to %s", r.Name, r.SourceLanguage, r.TargetLanguage)
}
