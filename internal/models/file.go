package models

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "textunited-client/internal/errors"
	"textunited-client/internal/logger"
)

// FileStatus is the remote processing state of a file. The remote API may
// add values, so it is not a closed set.
type FileStatus string

const (
	FileStatusWaiting          FileStatus = "Waiting"
	FileStatusProcessingError  FileStatus = "ProcessingError"
	FileStatusNotTranslated    FileStatus = "NotTranslated"
	FileStatusTranslated       FileStatus = "Translated"
	FileStatusTranslationError FileStatus = "TranslationError"
)

// ContentType discriminates the content variant of a file download
type ContentType string

const (
	ContentTranslated ContentType = "translated"
	ContentSource     ContentType = "source"
)

// File represents a file of a Text United project.
//
// TranslatedContent and SourceContent stay nil until FetchTranslatedContent or
// FetchSourceContent is called. Each call overwrites the field; a File is not
// meant to be fetched from concurrently.
type File struct {
	ID        int        `json:"id" yaml:"id"`
	ProjectID int        `json:"project_id" yaml:"project_id"`
	Name      string     `json:"name" yaml:"name"`
	Subdir    string     `json:"subdir" yaml:"subdir"`
	Size      int64      `json:"size" yaml:"size"`
	Words     int        `json:"words" yaml:"words"`
	Status    FileStatus `json:"status" yaml:"status"`

	TranslatedContent []byte `json:"-" yaml:"-"`
	SourceContent     []byte `json:"-" yaml:"-"`

	fetcher Fetcher
}

// FileFromJSON maps a remote project file object to a File bound to fetcher
func FileFromJSON(fetcher Fetcher, projectID int, data json.RawMessage) (*File, error) {
	r, err := newFieldReader("file", data)
	if err != nil {
		return nil, err
	}

	file := &File{
		ProjectID: projectID,
		ID:        r.intField("FileId"),
		Name:      r.stringField("Filename"),
		Subdir:    r.stringField("Subdir"),
		Size:      int64(r.intField("FileSize")),
		Words:     r.intField("Words"),
		Status:    FileStatus(r.stringField("Status")),
		fetcher:   fetcher,
	}
	if r.err != nil {
		return nil, r.err
	}
	return file, nil
}

// NewFile returns a file reference bound to fetcher, enough to download content
func NewFile(fetcher Fetcher, projectID, fileID int) *File {
	return &File{ID: fileID, ProjectID: projectID, fetcher: fetcher}
}

// FetchTranslatedContent downloads the translated content into TranslatedContent
func (f *File) FetchTranslatedContent(ctx context.Context) error {
	content, err := f.fetchContent(ctx, ContentTranslated)
	if err != nil {
		return err
	}
	f.TranslatedContent = content
	return nil
}

// FetchSourceContent downloads the source content into SourceContent
func (f *File) FetchSourceContent(ctx context.Context) error {
	content, err := f.fetchContent(ctx, ContentSource)
	if err != nil {
		return err
	}
	f.SourceContent = content
	return nil
}

func (f *File) fetchContent(ctx context.Context, contentType ContentType) ([]byte, error) {
	if f.fetcher == nil {
		return nil, apperrors.NewContractViolationError("file", "not bound to a client")
	}

	log := logger.WithContext(ctx).WithFields(map[string]interface{}{
		"projectId": f.ProjectID,
		"fileId":    f.ID,
		"type":      string(contentType),
	})
	log.Infof("Retrieving %s content of file %s", contentType, f)

	raw, err := f.fetcher.FetchJSON(ctx, http.MethodGet, fileContentPath(f.ProjectID, f.ID, contentType), nil)
	if err != nil {
		return nil, err
	}
	r, err := newFieldReader("file content", raw)
	if err != nil {
		return nil, err
	}
	content := r.bytesField("Content")
	if r.err != nil {
		return nil, r.err
	}

	log.Infof("Retrieved %s content of file %s (%d bytes)", contentType, f, len(content))
	return content, nil
}

func (f *File) String() string {
	return fmt.Sprintf("id#%d %q at project %d (%s)", f.ID, f.Name, f.ProjectID, f.Status)
}

func projectFilesPath(projectID int) string {
	return fmt.Sprintf("/projectfiles?projectId=%d", projectID)
}

func fileContentPath(projectID, fileID int, contentType ContentType) string {
	return fmt.Sprintf("/projectfiles?projectId=%d&fileId=%d&type=%s", projectID, fileID, contentType)
}
