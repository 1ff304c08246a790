package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"planhaus/internal/logger"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ExportService renders guest lists to XLSX files in a scratch directory.
// File names are random tokens so download URLs are not guessable; a sweep
// goroutine drops files older than an hour.
type ExportService struct {
	dir    string
	guests *GuestService
}

func NewExportService(dir string, guests *GuestService) (*ExportService, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "planhaus-exports")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	s := &ExportService{dir: dir, guests: guests}
	go s.sweep()
	return s, nil
}

var guestColumns = []string{"Name", "Email", "Phone", "RSVP", "Party Size", "Dietary", "Notes"}

// ExportGuests writes the project's guest list to a spreadsheet and returns
// the download file name.
func (s *ExportService) ExportGuests(ctx context.Context, projectID int) (string, error) {
	guests, err := s.guests.List(ctx, projectID, "")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Guests"
	f.SetSheetName("Sheet1", sheet)
	for i, col := range guestColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
	}
	for row, g := range guests {
		values := []any{g.Name, g.Email, g.Phone, g.RSVPStatus, g.PartySize, g.Dietary, g.Notes}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	name := uuid.NewString() + ".xlsx"
	if err := f.SaveAs(filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("save export: %w", err)
	}
	logger.Info("export.guests", "project_id", projectID, "guests", len(guests), "file", name)
	return name, nil
}

var exportNameRe = regexp.MustCompile(`^[0-9a-f-]{36}\.xlsx$`)

// Path resolves a download name to a file path. Names outside the token
// format are rejected so callers cannot walk the filesystem.
func (s *ExportService) Path(name string) (string, error) {
	if !exportNameRe.MatchString(name) {
		return "", ErrNotFound
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

func (s *ExportService) sweep() {
	for range time.Tick(10 * time.Minute) {
		entries, err := os.ReadDir(s.dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			info, err := e.Info()
			if err != nil {
				continue
			}
			if time.Since(info.ModTime()) > time.Hour {
				os.Remove(filepath.Join(s.dir, e.Name()))
			}
		}
	}
}
