package models_test

import (
	"encoding/json"
	"testing"
	"time"

	apperrors "textunited-client/internal/errors"
	"textunited-client/internal/language"
	"textunited-client/internal/models"
	"textunited-client/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploads(t *testing.T) []*models.FileUpload {
	t.Helper()
	first, err := models.NewFileUpload("hello.txt", []byte(testutils.HelloWorld))
	require.NoError(t, err)
	second, err := models.NewFileUpload("empty.txt", []byte{})
	require.NoError(t, err)
	return []*models.FileUpload{first, second}
}

func TestNewFileUpload(t *testing.T) {
	upload, err := models.NewFileUpload("hello.txt", []byte(testutils.HelloWorld))
	require.NoError(t, err)

	payload, err := json.Marshal(upload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Filename": "hello.txt", "Content": "aGVsbG9fd29ybGQ="}`, string(payload))
}

func TestNewFileUploadContractViolations(t *testing.T) {
	_, err := models.NewFileUpload("hello.txt", nil)
	assert.True(t, apperrors.IsContractViolation(err))

	_, err = models.NewFileUpload("", []byte("x"))
	assert.True(t, apperrors.IsContractViolation(err))
}

func TestProjectRequestMarshalJSON(t *testing.T) {
	end := time.Date(2017, 10, 12, 22, 0, 15, 85000000, time.UTC)
	req, err := models.NewProjectRequest("Website", language.EnGB, language.EsES, "landing page",
		uploads(t), 11,
		models.WithEndDate(end),
		models.WithProofreader(12),
		models.WithInCountryReviewer(13),
	)
	require.NoError(t, err)

	payload, err := json.Marshal(req)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"ProjectName": "Website",
		"SourceLanguageId": 40,
		"TargetLanguageId": 104,
		"Description": "landing page",
		"Files": [
			{"Filename": "hello.txt", "Content": "aGVsbG9fd29ybGQ="},
			{"Filename": "empty.txt", "Content": ""}
		],
		"TranslatorId": 11,
		"EndDate": "2017-10-12T22:00:15.085000",
		"ProofreaderId": 12,
		"InCountryReviewerId": 13
	}`, string(payload))
	assert.Equal(t, "'Website' en_gb to es_es", req.String())
}

func TestProjectRequestMarshalJSONDefaults(t *testing.T) {
	req, err := models.NewProjectRequest("Website", language.DeDE, language.Ja, "", nil, 11)
	require.NoError(t, err)

	payload, err := json.Marshal(req)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"ProjectName": "Website",
		"SourceLanguageId": 53,
		"TargetLanguageId": 72,
		"Description": "",
		"Files": [],
		"TranslatorId": 11,
		"EndDate": null,
		"ProofreaderId": null,
		"InCountryReviewerId": null
	}`, string(payload))
}

func TestProjectRequestValidation(t *testing.T) {
	testCases := []struct {
		name    string
		req     *models.ProjectRequest
		message string
	}{
		{
			name:    "nil request",
			req:     nil,
			message: "contract violation: project request is nil",
		},
		{
			name:    "missing name",
			req:     &models.ProjectRequest{SourceLanguage: language.EnUS, TargetLanguage: language.DeDE},
			message: "contract violation: Name - is required",
		},
		{
			name:    "unregistered source language",
			req:     &models.ProjectRequest{Name: "x", SourceLanguage: language.Language(92), TargetLanguage: language.DeDE},
			message: "contract violation: SourceLanguage - language id 92 is not registered",
		},
		{
			name:    "zero target language",
			req:     &models.ProjectRequest{Name: "x", SourceLanguage: language.EnUS},
			message: "contract violation: TargetLanguage - language id 0 is not registered",
		},
		{
			name: "nil file",
			req: &models.ProjectRequest{
				Name:           "x",
				SourceLanguage: language.EnUS,
				TargetLanguage: language.DeDE,
				Files:          []*models.FileUpload{nil},
			},
			message: "contract violation: Files[0] - is required",
		},
		{
			name: "file without content",
			req: &models.ProjectRequest{
				Name:           "x",
				SourceLanguage: language.EnUS,
				TargetLanguage: language.DeDE,
				Files:          []*models.FileUpload{{Name: "a.txt"}},
			},
			message: "contract violation: Files[0].Content - is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()

			require.True(t, apperrors.IsContractViolation(err))
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

func TestNewProjectRequestRejectsInvalidInput(t *testing.T) {
	req, err := models.NewProjectRequest("", language.EnUS, language.DeDE, "", nil, 1)

	assert.Nil(t, req)
	assert.True(t, apperrors.IsContractViolation(err))
}

func TestProjectRequestWithoutFilesIsValid(t *testing.T) {
	for name, files := range map[string][]*models.FileUpload{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			req, err := models.NewProjectRequest("Glossary only", language.EnUS, language.DeDE, "", files, 1)
			require.NoError(t, err)
			assert.NoError(t, req.Validate())
			assert.Empty(t, req.Files)

			payload, err := json.Marshal(req)
			require.NoError(t, err)
			assert.Contains(t, string(payload), `"Files":[]`)
		})
	}
}

func TestLanguageValidationIsRegistered(t *testing.T) {
	// a registered custom tag accepts every known language and nothing else
	for _, lang := range []language.Language{language.EnUS, language.DeDE, language.Ja} {
		req := &models.ProjectRequest{Name: "x", SourceLanguage: lang, TargetLanguage: language.EsES}
		assert.NoError(t, req.Validate(), lang.String())
	}
}
