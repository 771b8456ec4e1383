package sandbox_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"textunited-client/internal/client"
	apperrors "textunited-client/internal/errors"
	"textunited-client/internal/language"
	"textunited-client/internal/models"
	"textunited-client/internal/sandbox"
	"textunited-client/internal/testutils"
	"textunited-client/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSandboxClient(t *testing.T, apiKey string) (*client.Client, *sandbox.Store) {
	t.Helper()

	store := sandbox.SeedStore()
	server := httptest.NewServer(sandbox.NewServer(store, sandboxCompanyID, sandboxAPIKey).Handler())
	t.Cleanup(server.Close)

	executor, err := transport.NewRestyExecutor(transport.Options{
		Timeout:  5 * time.Second,
		Endpoint: server.URL + "/api/",
	})
	require.NoError(t, err)

	return client.New(sandboxCompanyID, apiKey, executor), store
}

func TestClientAgainstSandbox(t *testing.T) {
	c, store := newSandboxClient(t, sandboxAPIKey)
	ctx := context.Background()

	projects, err := c.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	project, err := c.GetProject(ctx, testutils.ProjectID)
	require.NoError(t, err)
	target, err := project.TargetLanguage()
	require.NoError(t, err)
	assert.Equal(t, language.EnUS, target)

	files, err := project.Files(ctx, models.WithTranslatedContent())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, []byte(testutils.HelloWorld), files[0].TranslatedContent)
	assert.Nil(t, files[1].TranslatedContent)

	account, err := c.GetAccount(ctx, testutils.JohnEmail)
	require.NoError(t, err)

	upload, err := models.NewFileUpload("greeting.txt", []byte("dzien dobry"))
	require.NoError(t, err)
	req, err := models.NewProjectRequest("Greetings", language.EnGB, language.DeDE, "e2e",
		[]*models.FileUpload{upload}, account.ID, models.WithEndDate(time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)))
	require.NoError(t, err)

	id, err := c.AddProject(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "8768", id)

	created, err := c.GetProject(ctx, 8768)
	require.NoError(t, err)
	assert.Equal(t, "Greetings", created.Name)
	assert.Equal(t, "New", created.Status)
	require.NotNil(t, created.EndDateUTC)
	assert.Equal(t, time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC), *created.EndDateUTC)

	createdFiles, err := created.Files(ctx, models.WithSourceContent())
	require.NoError(t, err)
	require.Len(t, createdFiles, 1)
	assert.Equal(t, []byte("dzien dobry"), createdFiles[0].SourceContent)

	require.NoError(t, store.Translate(8768, createdFiles[0].ID, []byte("guten Tag")))
	require.NoError(t, createdFiles[0].FetchTranslatedContent(ctx))
	assert.Equal(t, []byte("guten Tag"), createdFiles[0].TranslatedContent)
}

func TestClientAgainstSandboxErrors(t *testing.T) {
	c, _ := newSandboxClient(t, sandboxAPIKey)
	ctx := context.Background()

	_, err := c.GetProject(ctx, 1)
	assert.True(t, errors.Is(err, apperrors.ErrProjectNotFound))

	_, err = c.GetAccount(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, apperrors.ErrAccountNotFound))

	_, err = c.FetchJSON(ctx, "", "/projectfiles?projectId=8766&fileId=156155&type=translated", nil)
	assert.True(t, apperrors.IsResourceUnavailable(err))
	assert.Equal(t, 404, apperrors.StatusCode(err))
}

func TestClientAgainstSandboxWrongCredentials(t *testing.T) {
	c, _ := newSandboxClient(t, "wrong-key")

	_, err := c.ListProjects(context.Background())
	assert.True(t, apperrors.IsUnauthorized(err))

	// project lookups report every unavailable response as not found
	_, err = c.GetProject(context.Background(), testutils.ProjectID)
	assert.True(t, errors.Is(err, apperrors.ErrProjectNotFound))
}
