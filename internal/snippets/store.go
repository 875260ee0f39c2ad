package snippets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"snippet-shell/internal/logger"
)

const component = "SnippetStore"

var errNoSelection = errors.New("no file selected")

// Store reads and writes the snippet document.
type Store struct {
	path       string
	legacyPath string
	prompter   Prompter
	log        logger.Logger
}

// NewStore creates a store for the canonical document at path, falling back
// to legacyPath. A nil prompter behaves like DeclinePrompter.
func NewStore(path, legacyPath string, prompter Prompter, log logger.Logger) *Store {
	if prompter == nil {
		prompter = DeclinePrompter{}
	}
	if log == nil {
		log = logger.Nop{}
	}

	return &Store{
		path:       path,
		legacyPath: legacyPath,
		prompter:   prompter,
		log:        log,
	}
}

// Path returns the canonical document location.
func (s *Store) Path() string {
	return s.path
}

// Fetch returns the document and true, or false when none could be found or
// recovered.
func (s *Store) Fetch(ctx context.Context) (string, bool) {
	data, err := os.ReadFile(s.path)
	if err == nil {
		return string(data), true
	}
	s.log.Debug(component, "canonical read failed", map[string]interface{}{
		"path":  s.path,
		"error": err.Error(),
	})

	data, err = os.ReadFile(s.legacyPath)
	if err == nil {
		s.log.Info(component, "migrating legacy document", map[string]interface{}{
			"from": s.legacyPath,
			"to":   s.path,
		})
		s.write(string(data))
		return string(data), true
	}
	s.log.Debug(component, "legacy read failed", map[string]interface{}{
		"path":  s.legacyPath,
		"error": err.Error(),
	})

	return s.recover(ctx)
}

func (s *Store) recover(ctx context.Context) (string, bool) {
	created, err := s.prompter.ConfirmHasSnippets(ctx)
	if err != nil {
		s.log.Error(component, fmt.Errorf("confirm prompt: %w", err), nil)
		return "", false
	}
	if !created {
		s.log.Info(component, "no existing snippets, starting empty", nil)
		return "", false
	}

	if err := s.prompter.ExplainLocate(ctx); err != nil {
		s.log.Error(component, fmt.Errorf("locate notice: %w", err), nil)
		return "", false
	}

	chosen, err := s.prompter.ChooseFile(ctx)
	if err == nil && chosen == "" {
		err = errNoSelection
	}
	if err != nil {
		s.log.Error(component, fmt.Errorf("choose legacy document: %w", err), nil)
		return "", false
	}

	data, err := os.ReadFile(chosen)
	if err != nil {
		s.log.Error(component, fmt.Errorf("read chosen document: %w", err), map[string]interface{}{
			"path": chosen,
		})
		return "", false
	}

	s.log.Info(component, "migrating chosen document", map[string]interface{}{
		"from": chosen,
		"to":   s.path,
	})
	s.write(string(data))
	return string(data), true
}

// Save replaces the document with content. Write failures are logged but
// never reported; the caller always observes success.
func (s *Store) Save(_ context.Context, content string) {
	s.write(content)
}

// write replaces the canonical document. Failures never reach the caller
// but are logged at warn level so a lost save can be diagnosed.
func (s *Store) write(content string) {
	err := os.MkdirAll(filepath.Dir(s.path), 0o755)
	if err == nil {
		err = os.WriteFile(s.path, []byte(content), 0o644)
	}
	if err != nil {
		s.log.Warning(component, "document write failed", map[string]interface{}{
			"path":  s.path,
			"error": err.Error(),
		})
	}
}
