package sandbox

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	apperrors "textunited-client/internal/errors"
	"textunited-client/internal/language"
	"textunited-client/internal/models"
)

// remoteDateLayout is how Text United renders timestamps
const remoteDateLayout = "2006-01-02T15:04:05.000Z"

// ProjectPayload is a project as served by the API
type ProjectPayload struct {
	ID                   int     `json:"Id"`
	Name                 string  `json:"Name"`
	Description          string  `json:"Description"`
	CreationDateUTC      string  `json:"CreationDateUtc"`
	SourceLanguageID     int     `json:"SourceLanguageId"`
	TargetLanguageID     int     `json:"TargetLanguageId"`
	SourceLanguageCode   string  `json:"SourceLanguageCode"`
	TargetLanguageCode   string  `json:"TargetLanguageCode"`
	StartDateUTC         string  `json:"StartDateUtc"`
	EndDateUTC           *string `json:"EndDateUtc"`
	State                string  `json:"State"`
	OwnerID              int     `json:"OwnerId"`
	OwnerName            string  `json:"OwnerName"`
	ManagerID            int     `json:"ManagerId"`
	ManagerName          string  `json:"ManagerName"`
	Progress             int     `json:"Progress"`
	TranslationProgress  int     `json:"TranslationProgress"`
	ProofreadingProgress int     `json:"ProofreadingProgress"`
	ReferenceNumber      string  `json:"ReferenceNumber"`
}

// AccountPayload is an employee as served by the API
type AccountPayload struct {
	ID        int     `json:"Id"`
	Email     string  `json:"Email"`
	FirstName string  `json:"FirstName"`
	LastName  string  `json:"LastName"`
	Phone     *string `json:"Phone"`
	Position  *string `json:"Position"`
}

// FilePayload is a project file as served by the API
type FilePayload struct {
	FileID   int    `json:"FileId"`
	Filename string `json:"Filename"`
	Subdir   string `json:"Subdir"`
	FileSize int    `json:"FileSize"`
	Words    int    `json:"Words"`
	Status   string `json:"Status"`
}

// FastProjectFile is a file uploaded with a project creation request
type FastProjectFile struct {
	Filename string `json:"Filename" binding:"required"`
	Content  string `json:"Content" binding:"omitempty,base64"`
}

// FastProjectRequest is the project creation payload
type FastProjectRequest struct {
	ProjectName         string            `json:"ProjectName" binding:"required"`
	SourceLanguageID    int               `json:"SourceLanguageId" binding:"required"`
	TargetLanguageID    int               `json:"TargetLanguageId" binding:"required"`
	Description         string            `json:"Description"`
	Files               []FastProjectFile `json:"Files" binding:"dive"`
	TranslatorID        int               `json:"TranslatorId"`
	EndDate             *string           `json:"EndDate"`
	ProofreaderID       *int              `json:"ProofreaderId"`
	InCountryReviewerID *int              `json:"InCountryReviewerId"`
}

type storedFile struct {
	FilePayload
	source     []byte
	translated []byte
}

// Store holds the emulated company data. It is safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	projects      map[int]*ProjectPayload
	files         map[int][]*storedFile
	accounts      []AccountPayload
	nextProjectID int
	nextFileID    int
	now           func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		projects:      make(map[int]*ProjectPayload),
		files:         make(map[int][]*storedFile),
		nextProjectID: 1,
		nextFileID:    1,
		now:           time.Now,
	}
}

// SeedStore creates a store holding demo projects, files and accounts
func SeedStore() *Store {
	s := NewStore()

	phone := "+48 32 917 947"
	position := "System admin"
	empty := ""
	s.accounts = []AccountPayload{
		{ID: 111999, Email: "john.doe@example.com", FirstName: "John", LastName: "Doe", Phone: &phone, Position: &position},
		{ID: 112000, Email: "jane.doe@example.com", FirstName: "Jane", LastName: "Doe", Phone: &empty},
	}

	end := "2015-10-13T20:00:15.085Z"
	s.projects[8766] = &ProjectPayload{
		ID: 8766, Name: "WebApplication1", Description: "PL to EN",
		CreationDateUTC: "2015-10-12T22:00:15.085Z", StartDateUTC: "2015-10-12T22:00:15.085Z", EndDateUTC: &end,
		SourceLanguageID: 92, TargetLanguageID: int(language.EnUS), SourceLanguageCode: "pl-PL", TargetLanguageCode: "en-US",
		State: "In progress", OwnerID: 111999, OwnerName: "John Doe", ManagerID: 111999, ManagerName: "John Doe",
		ProofreadingProgress: -1,
	}
	s.projects[8767] = &ProjectPayload{
		ID: 8767, Name: "WebApplication1", Description: "PL to DE",
		CreationDateUTC: "2015-10-12T22:00:15.085Z", StartDateUTC: "2015-10-12T22:00:15.085Z",
		SourceLanguageID: 92, TargetLanguageID: int(language.DeDE), SourceLanguageCode: "pl-PL", TargetLanguageCode: "de-DE",
		State: "In progress", OwnerID: 111999, OwnerName: "John Doe", ManagerID: 112000, ManagerName: "Jane Doe",
		Progress: 10, TranslationProgress: 20, ProofreadingProgress: -1,
	}
	s.files[8766] = []*storedFile{
		{
			FilePayload: FilePayload{FileID: 156148, Filename: "Resources.resx", FileSize: 6991, Words: 28, Status: string(models.FileStatusTranslated)},
			source:      []byte("witaj_swiecie"),
			translated:  []byte("hello_world"),
		},
		{
			FilePayload: FilePayload{FileID: 156155, Filename: "test.xml", Subdir: `subdir\subdir2\target\`, FileSize: 620897, Words: 1066, Status: string(models.FileStatusWaiting)},
			source:      []byte("<root/>"),
		},
	}
	s.files[8767] = []*storedFile{}

	s.nextProjectID = 8768
	s.nextFileID = 156156
	return s
}

// Projects returns every project ordered by id
func (s *Store) Projects() []ProjectPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ProjectPayload, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Project returns a single project
func (s *Store) Project(id int) (ProjectPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return ProjectPayload{}, apperrors.NewProjectNotFoundError(id)
	}
	return *p, nil
}

// Accounts returns every employee
func (s *Store) Accounts() []AccountPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]AccountPayload, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Files returns the files of a project
func (s *Store) Files(projectID int) ([]FilePayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, ok := s.files[projectID]
	if !ok {
		return nil, apperrors.NewProjectNotFoundError(projectID)
	}
	out := make([]FilePayload, 0, len(files))
	for _, f := range files {
		out = append(out, f.FilePayload)
	}
	return out, nil
}

// FileContent returns the source or translated content of a file.
// Translated content exists only for translated files.
func (s *Store) FileContent(projectID, fileID int, contentType models.ContentType) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, ok := s.files[projectID]
	if !ok {
		return nil, apperrors.NewProjectNotFoundError(projectID)
	}
	for _, f := range files {
		if f.FileID != fileID {
			continue
		}
		switch contentType {
		case models.ContentSource:
			return f.source, nil
		case models.ContentTranslated:
			if f.Status != string(models.FileStatusTranslated) {
				return nil, apperrors.NewNotFoundError("translation", fmt.Sprintf("for file %d in status %s", fileID, f.Status))
			}
			return f.translated, nil
		default:
			return nil, apperrors.NewContractViolationError("type", fmt.Sprintf("unknown content type %q", contentType))
		}
	}
	return nil, apperrors.NewNotFoundError("file", fmt.Sprintf("with id %d in project %d", fileID, projectID))
}

// CreateProject stores a new project with its files and returns the new id
func (s *Store) CreateProject(req FastProjectRequest) (string, error) {
	source, err := language.ByID(req.SourceLanguageID)
	if err != nil {
		return "", err
	}
	target, err := language.ByID(req.TargetLanguageID)
	if err != nil {
		return "", err
	}

	var endDate *string
	if req.EndDate != nil {
		end, err := time.Parse(models.EndDateLayout, *req.EndDate)
		if err != nil {
			return "", apperrors.NewContractViolationError("EndDate", fmt.Sprintf("invalid date %q", *req.EndDate))
		}
		formatted := end.UTC().Format(remoteDateLayout)
		endDate = &formatted
	}

	files := make([]*storedFile, 0, len(req.Files))
	for _, upload := range req.Files {
		content, err := models.DecodeContent(upload.Content)
		if err != nil {
			return "", apperrors.NewContractViolationError("Files", fmt.Sprintf("invalid content of %s", upload.Filename))
		}
		files = append(files, &storedFile{
			FilePayload: FilePayload{
				Filename: upload.Filename,
				FileSize: len(content),
				Status:   string(models.FileStatusWaiting),
			},
			source: content,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ownerName := ""
	for _, account := range s.accounts {
		if account.ID == req.TranslatorID {
			ownerName = account.FirstName + " " + account.LastName
		}
	}

	id := s.nextProjectID
	s.nextProjectID++
	for _, f := range files {
		f.FileID = s.nextFileID
		s.nextFileID++
	}

	now := s.now().UTC().Format(remoteDateLayout)
	s.projects[id] = &ProjectPayload{
		ID:                   id,
		Name:                 req.ProjectName,
		Description:          req.Description,
		CreationDateUTC:      now,
		StartDateUTC:         now,
		EndDateUTC:           endDate,
		SourceLanguageID:     source.ID(),
		TargetLanguageID:     target.ID(),
		SourceLanguageCode:   source.Code(),
		TargetLanguageCode:   target.Code(),
		State:                "New",
		OwnerID:              req.TranslatorID,
		OwnerName:            ownerName,
		ProofreadingProgress: -1,
	}
	s.files[id] = files

	return strconv.Itoa(id), nil
}

// Translate marks a file translated with the given content
func (s *Store) Translate(projectID, fileID int, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.files[projectID] {
		if f.FileID == fileID {
			f.translated = content
			f.Status = string(models.FileStatusTranslated)
			return nil
		}
	}
	return apperrors.NewNotFoundError("file", fmt.Sprintf("with id %d in project %d", fileID, projectID))
}
