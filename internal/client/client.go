package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "textunited-client/internal/errors"
	"textunited-client/internal/logger"
	"textunited-client/internal/models"

	"github.com/google/uuid"
)

// BaseURL is the root every resource path is composed against
const BaseURL = "https://www.textunited.com/api/"

const (
	projectsPath    = "/projects"
	fastProjectPath = "/fastproject"
	employeesPath   = "/employees"

	// RequestIDHeader carries the request id used for log correlation
	RequestIDHeader = "X-Request-ID"
)

// Client provides methods to interact with the Text United API.
// Its configuration is immutable, so one Client may serve concurrent callers.
type Client struct {
	auth     BasicAuth
	executor Executor
}

var _ models.Fetcher = (*Client)(nil)

// New creates a client authenticating with the company id and API key
func New(companyID, apiKey string, executor Executor) *Client {
	return &Client{
		auth:     BasicAuth{Username: companyID, Password: apiKey},
		executor: executor,
	}
}

// ListProjects returns every project of the company
func (c *Client) ListProjects(ctx context.Context) ([]*models.Project, error) {
	log := logger.WithContext(ctx)
	log.Infof("Retrieving all projects")

	raw, err := c.FetchJSON(ctx, http.MethodGet, projectsPath, nil)
	if err != nil {
		return nil, err
	}
	projects, err := models.ProjectsFromJSON(c, raw)
	if err != nil {
		return nil, err
	}

	log.Infof("%d projects retrieved", len(projects))
	return projects, nil
}

// GetProject returns a single project. Any unavailable response, 401
// included, is reported as a project NotFoundError.
func (c *Client) GetProject(ctx context.Context, projectID int) (*models.Project, error) {
	log := logger.WithContext(ctx).WithField("projectId", projectID)
	log.Infof("Retrieving project with id %d", projectID)

	raw, err := c.FetchJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", projectsPath, projectID), nil)
	if err != nil {
		if apperrors.IsResourceUnavailable(err) {
			log.Warnf("Project lookup failed: %v", err)
			return nil, apperrors.NewProjectNotFoundError(projectID)
		}
		return nil, err
	}
	project, err := models.ProjectFromJSON(c, raw)
	if err != nil {
		return nil, err
	}

	log.Infof("Project with id %d retrieved", projectID)
	return project, nil
}

// AddProject creates a project with its files and returns the remote id
func (c *Client) AddProject(ctx context.Context, req *models.ProjectRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	log := logger.WithContext(ctx)
	log.Infof("Creating project %s", req)

	raw, err := c.FetchJSON(ctx, http.MethodPost, fastProjectPath, req)
	if err != nil {
		return "", err
	}
	projectID, err := decodeProjectID(raw)
	if err != nil {
		return "", err
	}

	log.Infof("Project %s created with id %s", req, projectID)
	return projectID, nil
}

// decodeProjectID accepts the created id as either a JSON string or number
func decodeProjectID(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return "", apperrors.NewMalformedPayloadError("project id", "", "invalid JSON")
	}
	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", apperrors.NewMalformedPayloadError("project id", "", fmt.Sprintf("unexpected value %s", raw))
	}
}

// ListAccounts returns every account of the company
func (c *Client) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	log := logger.WithContext(ctx)
	log.Infof("Retrieving all accounts")

	raw, err := c.FetchJSON(ctx, http.MethodGet, employeesPath, nil)
	if err != nil {
		return nil, err
	}
	accounts, err := models.AccountsFromJSON(raw)
	if err != nil {
		return nil, err
	}

	log.Infof("%d accounts retrieved", len(accounts))
	return accounts, nil
}

// GetAccount scans the account list for an exact, case-sensitive email match.
// An empty list and a list without a match both yield an account NotFoundError.
func (c *Client) GetAccount(ctx context.Context, email string) (*models.Account, error) {
	log := logger.WithContext(ctx).WithField("email", email)
	log.Infof("Getting account with email %s", email)

	accounts, err := c.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.NewAccountNotFoundError("in Text United: the account list is empty")
	}

	for _, account := range accounts {
		if account.Email == email {
			log.Infof("Account with email %s found", email)
			return account, nil
		}
	}

	return nil, apperrors.NewAccountNotFoundError(fmt.Sprintf("with email %s", email))
}

// FetchJSON performs one request against the API and returns the raw JSON body.
// path may start with "/" or not. 401 yields UnauthorizedError, any other
// status but 200 yields ResourceUnavailableError. Nothing is retried.
func (c *Client) FetchJSON(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	if method == "" {
		method = http.MethodGet
	}
	url := BaseURL + strings.TrimPrefix(path, "/")

	requestID, ok := logger.RequestID(ctx)
	if !ok {
		requestID = uuid.NewString()
	}

	header := make(http.Header)
	header.Set("Accept", "application/json")
	header.Set("Content-Type", "application/json")
	header.Set(RequestIDHeader, requestID)

	log := logger.WithContext(ctx).WithFields(map[string]interface{}{
		"method":     method,
		"url":        url,
		"request_id": requestID,
	})
	log.Debugf("Text United request")

	resp, err := c.executor.Send(ctx, &Request{
		Method: method,
		URL:    url,
		Header: header,
		Auth:   c.auth,
		Body:   body,
	})
	if err != nil {
		log.Errorf("Text United request failed: %v", err)
		return nil, fmt.Errorf("textunited request failed: %w", err)
	}

	log.Debugf("Text United response: status=%d", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, apperrors.NewUnauthorizedError(string(resp.Body), url, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, apperrors.NewResourceUnavailableError(string(resp.Body), url, resp.StatusCode)
	}

	if !json.Valid(resp.Body) {
		return nil, apperrors.NewMalformedPayloadError("response", "", fmt.Sprintf("invalid JSON from %s", url))
	}
	return json.RawMessage(resp.Body), nil
}
