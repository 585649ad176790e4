package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/quickshcc/quicksh/internal/client/cache"
	"github.com/quickshcc/quicksh/internal/client/client"
	"github.com/quickshcc/quicksh/internal/client/models"
	"github.com/quickshcc/quicksh/internal/logging"
)

var (
	// ErrMultipleFiles rejects a multi-file drop; no candidate is selected.
	ErrMultipleFiles = errors.New("select only one file")

	// ErrNoFileSelected is returned when a transfer is submitted without a
	// pending selection.
	ErrNoFileSelected = errors.New("no file selected")

	// ErrSuperseded marks a completion that arrived after a newer request
	// for the same action was issued; no state was changed.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// Session coordinates the transfer lifecycle: it owns the single pending
// file selection and the chosen expiration option, and applies the combined
// cache/presentation effects when network operations complete.
//
// Completions apply under a last-request-wins policy: each upload and each
// download is tagged, and a response belonging to a superseded request has
// no effect.
type Session struct {
	mu        sync.Mutex
	client    client.Client
	cache     *cache.Cache
	presenter Presenter
	log       logging.Logger

	selected *models.SelectedFile
	expire   models.ExpireOption

	saveDir string

	uploadSeq   uint64
	downloadSeq uint64
}

func NewSession(apiClient client.Client, codeCache *cache.Cache, presenter Presenter, saveDir string, log logging.Logger) *Session {
	return &Session{
		client:    apiClient,
		cache:     codeCache,
		presenter: presenter,
		saveDir:   saveDir,
		log:       log,
		expire:    models.Expire1Hour,
	}
}

// SelectFile accepts candidate as the pending upload, replacing any prior
// selection. Candidates over the size ceiling are rejected and the prior
// selection is kept.
func (s *Session) SelectFile(candidate *models.SelectedFile) error {
	if candidate == nil {
		return nil
	}
	if err := candidate.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.selected = candidate
	s.mu.Unlock()
	return nil
}

// SelectDrop handles a drop of zero or more files: more than one candidate
// rejects the drop outright and selects none.
func (s *Session) SelectDrop(candidates []*models.SelectedFile) error {
	if len(candidates) > 1 {
		return ErrMultipleFiles
	}
	if len(candidates) == 0 {
		return nil
	}
	return s.SelectFile(candidates[0])
}

// Selected returns the pending file, or nil when none is selected.
func (s *Session) Selected() *models.SelectedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// SetExpire picks the expiration option used for subsequent uploads.
func (s *Session) SetExpire(opt models.ExpireOption) error {
	if !opt.Valid() {
		return models.ErrInvalidExpireOption
	}
	s.mu.Lock()
	s.expire = opt
	s.mu.Unlock()
	return nil
}

func (s *Session) Expire() models.ExpireOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expire
}

// SubmitTransfer uploads the pending selection. On success the new code is
// cached and presented together, and the selection is cleared for the next
// upload. Without a pending selection it returns ErrNoFileSelected.
func (s *Session) SubmitTransfer(ctx context.Context) (*models.Record, error) {
	s.mu.Lock()
	selected := s.selected
	expire := s.expire
	if selected == nil {
		s.mu.Unlock()
		return nil, ErrNoFileSelected
	}
	s.uploadSeq++
	seq := s.uploadSeq
	s.mu.Unlock()

	f, err := os.Open(selected.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", selected.Name, err)
	}
	defer f.Close()

	record, err := s.client.Upload(ctx, selected.Name, f, expire)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.uploadSeq {
		s.log.Warn(ctx, "ignoring stale upload completion", "code", record.Code)
		return nil, ErrSuperseded
	}

	if err := s.cache.Add(ctx, record.Code); err != nil {
		return nil, err
	}
	s.presenter.ShowUploadResult(*record)
	s.presenter.RenderHistoryRow(*record)
	s.selected = nil

	s.log.Info(ctx, "transfer created", "code", record.Code, "file", record.Filename)
	return record, nil
}

// SubmitReceive downloads the transfer behind code and saves it into the
// session's download directory, returning the saved path. The temporary
// file used for the save is removed on any failure.
func (s *Session) SubmitReceive(ctx context.Context, code models.Code) (string, error) {
	s.mu.Lock()
	s.downloadSeq++
	seq := s.downloadSeq
	s.mu.Unlock()

	dl, err := s.client.Download(ctx, code)
	if err != nil {
		return "", err
	}
	defer dl.Body.Close()

	s.mu.Lock()
	stale := seq != s.downloadSeq
	s.mu.Unlock()
	if stale {
		s.log.Warn(ctx, "ignoring stale download completion", "code", code)
		return "", ErrSuperseded
	}

	path, err := s.saveAs(dl.Filename, dl.Body)
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "transfer received", "code", code, "file", dl.Filename)
	return path, nil
}

// RemoveOwned deletes the transfer on the server; on confirmation the code
// leaves the cache and the displayed history together.
func (s *Session) RemoveOwned(ctx context.Context, code models.Code) error {
	if err := s.client.Delete(ctx, code); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cache.Remove(ctx, code); err != nil {
		return err
	}
	s.presenter.RemoveHistoryRow(code)

	s.log.Info(ctx, "transfer removed", "code", code)
	return nil
}

// saveAs streams content into saveDir under name, going through a temporary
// file so an interrupted download never leaves a partial target behind.
func (s *Session) saveAs(name string, content io.Reader) (string, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		name = client.DefaultFilename
	}

	tmp, err := os.CreateTemp(s.saveDir, ".quicksh-*")
	if err != nil {
		return "", fmt.Errorf("failed to create download file: %w", err)
	}

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save download: %w", err)
	}

	target := filepath.Join(s.saveDir, name)
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to place download: %w", err)
	}
	return target, nil
}
