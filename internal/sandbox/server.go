// Package sandbox emulates the Text United REST API in memory, for local
// development and end-to-end tests.
package sandbox

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	apperrors "textunited-client/internal/errors"
	"textunited-client/internal/logger"
	"textunited-client/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Server serves the emulated API from a Store
type Server struct {
	store  *Store
	router *gin.Engine
}

// NewServer creates a server accepting Basic credentials companyID:apiKey
func NewServer(store *Store, companyID, apiKey string) *Server {
	s := &Server{store: store}

	router := gin.New()
	router.Use(Recovery())
	router.Use(RequestID())
	router.Use(Logger())

	api := router.Group("/api", gin.BasicAuth(gin.Accounts{companyID: apiKey}))
	{
		api.GET("/projects", s.ListProjects)
		api.GET("/projects/:id", s.GetProject)
		api.POST("/fastproject", s.CreateProject)
		api.GET("/employees", s.ListAccounts)
		api.GET("/projectfiles", s.ProjectFiles)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"Message": fmt.Sprintf("No HTTP resource was found that matches the request URI '%s'.", c.Request.URL.Path)})
	})

	s.router = router
	return s
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr and serves until the listener fails
func (s *Server) Run(addr string) error {
	logger.New().Infof("Starting Text United sandbox on %s", addr)
	return s.router.Run(addr)
}

// ListProjects returns every project
func (s *Server) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Projects())
}

// GetProject returns a project by id
func (s *Server) GetProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"Message": "The request is invalid."})
		return
	}

	project, err := s.store.Project(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// CreateProject creates a project with its files and returns the new id
func (s *Server) CreateProject(c *gin.Context) {
	var req FastProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"Message": bindingMessage(err)})
		return
	}

	id, err := s.store.CreateProject(req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.WithContext(c.Request.Context()).Infof("Sandbox project %s created with %d files", id, len(req.Files))
	c.JSON(http.StatusOK, id)
}

// ListAccounts returns every employee
func (s *Server) ListAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Accounts())
}

// ProjectFiles lists project files, or returns one file's content when fileId is given
func (s *Server) ProjectFiles(c *gin.Context) {
	projectID, err := strconv.Atoi(c.Query("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"Message": "projectId is required"})
		return
	}

	rawFileID := c.Query("fileId")
	if rawFileID == "" {
		files, err := s.store.Files(projectID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, files)
		return
	}

	fileID, err := strconv.Atoi(rawFileID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"Message": "fileId must be a number"})
		return
	}

	content, err := s.store.FileContent(projectID, fileID, models.ContentType(c.DefaultQuery("type", string(models.ContentTranslated))))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"Content": models.EncodeContent(content)})
}

// respondError maps store errors onto the remote status codes
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"Message": err.Error()})
	case apperrors.IsContractViolation(err), apperrors.IsUnsupportedLanguage(err):
		c.JSON(http.StatusBadRequest, gin.H{"Message": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).Errorf("Sandbox request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"Message": "An error has occurred."})
	}
}

func bindingMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
	return "The request is invalid."
}
