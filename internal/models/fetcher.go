package models

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=fetcher.go -destination=../mocks/fetcher_mocks.go -package=mocks

// Fetcher is the capability entities use for follow-up calls (project files,
// file content). Entities never own its lifetime.
type Fetcher interface {
	FetchJSON(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error)
}
