package models_test

import (
	"context"
	"net/http"
	"testing"

	apperrors "textunited-client/internal/errors"
	"textunited-client/internal/mocks"
	"textunited-client/internal/models"
	"textunited-client/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFileFromJSON(t *testing.T) {
	payload := `{"FileId": 156148, "Filename": "Resources.resx", "Subdir": "", "FileSize": 6991, "Words": 28, "Status": "Translated"}`
	file, err := models.FileFromJSON(nil, testutils.ProjectID, testutils.Raw(payload))
	require.NoError(t, err)

	assert.Equal(t, `id#156148 "Resources.resx" at project 8766 (Translated)`, file.String())
}

func TestFileFromJSONMissingStatus(t *testing.T) {
	file, err := models.FileFromJSON(nil, 1, testutils.Raw(`{"FileId": 1, "Filename": "a", "Subdir": "", "FileSize": 1, "Words": 1}`))

	assert.Nil(t, file)
	assert.True(t, apperrors.IsMalformedPayload(err))
}

func TestFetchTranslatedContentIsRepeatable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().
		FetchJSON(ctx, http.MethodGet, translatedContentPath, nil).
		Return(testutils.Raw(testutils.FileContentJSON), nil).
		Times(2)

	file := models.NewFile(fetcher, testutils.ProjectID, testutils.TranslatedFileID)

	require.NoError(t, file.FetchTranslatedContent(ctx))
	first := file.TranslatedContent
	require.NoError(t, file.FetchTranslatedContent(ctx))

	assert.Equal(t, []byte(testutils.HelloWorld), first)
	assert.Equal(t, first, file.TranslatedContent)
	assert.Nil(t, file.SourceContent)
}

func TestFetchSourceContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().
		FetchJSON(ctx, http.MethodGet, sourceContentPath, nil).
		Return(testutils.Raw(testutils.FileContentJSON), nil)

	file := models.NewFile(fetcher, testutils.ProjectID, testutils.TranslatedFileID)

	require.NoError(t, file.FetchSourceContent(ctx))
	assert.Equal(t, []byte(testutils.HelloWorld), file.SourceContent)
	assert.Nil(t, file.TranslatedContent)
}

func TestFetchContentErrors(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
	}{
		{"missing content", `{}`},
		{"invalid base64", `{"Content": "not base64!"}`},
		{"not an object", `"aGVsbG9fd29ybGQ="`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fetcher := mocks.NewMockFetcher(ctrl)
			fetcher.EXPECT().
				FetchJSON(gomock.Any(), http.MethodGet, translatedContentPath, nil).
				Return(testutils.Raw(tc.payload), nil)

			file := models.NewFile(fetcher, testutils.ProjectID, testutils.TranslatedFileID)
			err := file.FetchTranslatedContent(context.Background())

			assert.True(t, apperrors.IsMalformedPayload(err))
			assert.Nil(t, file.TranslatedContent)
		})
	}
}

func TestFetchContentRequiresFetcher(t *testing.T) {
	file := &models.File{ID: 1, ProjectID: 2}

	err := file.FetchSourceContent(context.Background())

	assert.True(t, apperrors.IsContractViolation(err))
}

func TestContentEncoding(t *testing.T) {
	assert.Equal(t, testutils.HelloWorldBase64, models.EncodeContent([]byte(testutils.HelloWorld)))

	decoded, err := models.DecodeContent(testutils.HelloWorldBase64)
	require.NoError(t, err)
	assert.Equal(t, []byte(testutils.HelloWorld), decoded)
}
