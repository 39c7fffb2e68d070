package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/inah-tools/archivo/internal/core/domain"
	"github.com/inah-tools/archivo/internal/core/ports/driving"
	"github.com/inah-tools/archivo/internal/logger"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure ResultActionService implements the interface.
var _ driving.ResultActionService = (*ResultActionService)(nil)

// ResultActionService provides actions on search results.
type ResultActionService struct {
	open func(path string) error
	copy func(text string) error
}

// NewResultActionService creates a result action service that uses the
// platform file opener and the system clipboard.
func NewResultActionService() *ResultActionService {
	return &ResultActionService{
		open: openPath,
		copy: clipboard.WriteAll,
	}
}

// OpenDocument opens the record's file in the default application.
func (s *ResultActionService) OpenDocument(_ context.Context, record *domain.DocumentRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", domain.ErrInvalidInput)
	}

	if _, err := os.Stat(record.FullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrOpenTargetMissing, record.FullPath)
		}
		return fmt.Errorf("checking %s: %w", record.FullPath, err)
	}

	logger.Debug("Opening %s", record.FullPath)
	if err := s.open(record.FullPath); err != nil {
		return fmt.Errorf("opening %s: %w", record.FullPath, err)
	}
	return nil
}

// CopyPath copies the record's full path to the system clipboard.
func (s *ResultActionService) CopyPath(_ context.Context, record *domain.DocumentRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", domain.ErrInvalidInput)
	}
	if err := s.copy(record.FullPath); err != nil {
		return fmt.Errorf("copying path: %w", err)
	}
	return nil
}

// openPath hands path to the platform's default opener without waiting for
// it to exit.
func openPath(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("open", path)
	case osLinux:
		cmd = exec.Command("xdg-open", path)
	case osWindows:
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck // reap the opener; its exit status is not reported
	return nil
}
