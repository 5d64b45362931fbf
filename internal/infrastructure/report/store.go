// Package report persists diagnostic reports as timestamped JSON files.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/mdcognizant/cursor-sub001/internal/domain"
	"github.com/mdcognizant/cursor-sub001/internal/pkg/filesystem"
	"github.com/mdcognizant/cursor-sub001/internal/ports"
)

// FileStore writes reports under ~/.cmdwatch/reports.
type FileStore struct {
	dir string
}

// NewFileStore builds a store; dir overrides the default location.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = filepath.Join(filesystem.UserHomeDir(), ".cmdwatch", "reports")
	}
	return &FileStore{dir: dir}
}

// Save implements ports.ReportStore and returns the written path.
func (s *FileStore) Save(rep domain.DiagnosticReport) (string, error) {
	if err := os.MkdirAll(s.dir, domain.DirectoryPermissions); err != nil {
		return "", err
	}
	name := fmt.Sprintf("diagnostics-%s.json", rep.GeneratedAt.Format("20060102-150405"))
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", err
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

var _ ports.ReportStore = (*FileStore)(nil)
