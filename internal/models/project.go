package models

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "textunited-client/internal/errors"
	"textunited-client/internal/language"
	"textunited-client/internal/logger"
)

// Project represents a Text United translation project
type Project struct {
	ID                   int        `json:"id" yaml:"id"`
	Name                 string     `json:"name" yaml:"name"`
	Description          string     `json:"description" yaml:"description"`
	CreationDateUTC      *time.Time `json:"creation_date_utc,omitempty" yaml:"creation_date_utc,omitempty"`
	SourceLanguageID     int        `json:"source_language_id" yaml:"source_language_id"`
	TargetLanguageID     int        `json:"target_language_id" yaml:"target_language_id"`
	SourceLanguageCode   string     `json:"source_language_code" yaml:"source_language_code"`
	TargetLanguageCode   string     `json:"target_language_code" yaml:"target_language_code"`
	StartDateUTC         *time.Time `json:"start_date_utc,omitempty" yaml:"start_date_utc,omitempty"`
	EndDateUTC           *time.Time `json:"end_date_utc,omitempty" yaml:"end_date_utc,omitempty"`
	Status               string     `json:"status" yaml:"status"`
	OwnerID              int        `json:"owner_id" yaml:"owner_id"`
	OwnerName            string     `json:"owner_name" yaml:"owner_name"`
	ManagerID            int        `json:"manager_id" yaml:"manager_id"`
	ManagerName          string     `json:"manager_name" yaml:"manager_name"`
	Progress             int        `json:"progress" yaml:"progress"` // -1 means not applicable
	TranslationProgress  int        `json:"translation_progress" yaml:"translation_progress"`
	ProofreadingProgress int        `json:"proofreading_progress" yaml:"proofreading_progress"`
	ReferenceNumber      string     `json:"reference_number" yaml:"reference_number"`

	fetcher Fetcher
}

// ProjectFromJSON maps a remote project object to a Project bound to fetcher
func ProjectFromJSON(fetcher Fetcher, data json.RawMessage) (*Project, error) {
	r, err := newFieldReader("project", data)
	if err != nil {
		return nil, err
	}

	project := &Project{
		ID:                   r.intField("Id"),
		Name:                 r.stringField("Name"),
		Description:          r.stringField("Description"),
		CreationDateUTC:      r.dateField("CreationDateUtc"),
		SourceLanguageID:     r.intField("SourceLanguageId"),
		TargetLanguageID:     r.intField("TargetLanguageId"),
		SourceLanguageCode:   r.stringField("SourceLanguageCode"),
		TargetLanguageCode:   r.stringField("TargetLanguageCode"),
		StartDateUTC:         r.dateField("StartDateUtc"),
		EndDateUTC:           r.dateField("EndDateUtc"),
		Status:               r.stringField("State"),
		OwnerID:              r.intField("OwnerId"),
		OwnerName:            r.stringField("OwnerName"),
		ManagerID:            r.intField("ManagerId"),
		ManagerName:          r.stringField("ManagerName"),
		Progress:             r.intField("Progress"),
		TranslationProgress:  r.intField("TranslationProgress"),
		ProofreadingProgress: r.intField("ProofreadingProgress"),
		ReferenceNumber:      r.stringField("ReferenceNumber"),
		fetcher:              fetcher,
	}
	if r.err != nil {
		return nil, r.err
	}
	return project, nil
}

// NewProject returns an empty project with the given id bound to fetcher,
// enough to navigate to its files without fetching the project itself
func NewProject(fetcher Fetcher, id int) *Project {
	return &Project{ID: id, fetcher: fetcher}
}

// SourceLanguage resolves SourceLanguageID against the language registry
func (p *Project) SourceLanguage() (language.Language, error) {
	return language.ByID(p.SourceLanguageID)
}

// TargetLanguage resolves TargetLanguageID against the language registry
func (p *Project) TargetLanguage() (language.Language, error) {
	return language.ByID(p.TargetLanguageID)
}

// FileOption selects file content to download while listing files
type FileOption func(*fileOptions)

type fileOptions struct {
	translated bool
	source     bool
}

// WithTranslatedContent downloads translated content of files whose status is Translated
func WithTranslatedContent() FileOption {
	return func(o *fileOptions) { o.translated = true }
}

// WithSourceContent downloads the source content of every file
func WithSourceContent() FileOption {
	return func(o *fileOptions) { o.source = true }
}

// Files lists every file of the project. Content is only downloaded when
// requested through opts; each download is one extra request per file.
func (p *Project) Files(ctx context.Context, opts ...FileOption) ([]*File, error) {
	if p.fetcher == nil {
		return nil, apperrors.NewContractViolationError("project", "not bound to a client")
	}
	var o fileOptions
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.WithContext(ctx).WithField("projectId", p.ID)
	log.Infof("Retrieving files for project %d", p.ID)

	raw, err := p.fetcher.FetchJSON(ctx, http.MethodGet, projectFilesPath(p.ID), nil)
	if err != nil {
		return nil, err
	}
	items, err := decodeArray("file", raw)
	if err != nil {
		return nil, err
	}

	files := make([]*File, 0, len(items))
	for _, item := range items {
		file, err := FileFromJSON(p.fetcher, p.ID, item)
		if err != nil {
			return nil, err
		}
		if o.translated && file.Status == FileStatusTranslated {
			if err := file.FetchTranslatedContent(ctx); err != nil {
				return nil, err
			}
		}
		if o.source {
			if err := file.FetchSourceContent(ctx); err != nil {
				return nil, err
			}
		}
		files = append(files, file)
	}

	log.Infof("%d files for project %d", len(files), p.ID)
	return files, nil
}

func (p *Project) String() string {
	return fmt.Sprintf("id#%d %q %s -> %s by %s (%s)",
		p.ID, p.Name, p.SourceLanguageCode, p.TargetLanguageCode, p.OwnerName, p.Status)
}

// ProjectsFromJSON maps a remote project array; an empty array yields an empty slice
func ProjectsFromJSON(fetcher Fetcher, data json.RawMessage) ([]*Project, error) {
	items, err := decodeArray("project", data)
	if err != nil {
		return nil, err
	}
	projects := make([]*Project, 0, len(items))
	for _, item := range items {
		project, err := ProjectFromJSON(fetcher, item)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}
