package identity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/NvMustang/fomo-sub000/pkg/store"
)

const visitorFile = ".visitor"

// Resolve returns the acting user id: the configured identity when present,
// otherwise a stable anonymous visitor id persisted next to the history
// store so repeat sessions keep the same history.
func Resolve(cfg store.Config) (string, error) {
	if cfg == nil {
		var err error
		cfg, err = store.LoadConfig()
		if err != nil {
			return "", err
		}
	}
	if user := strings.TrimSpace(cfg.UserID()); user != "" {
		return user, nil
	}
	return visitor(cfg.BasePath())
}

func visitor(basePath string) (string, error) {
	if basePath == "" {
		return "", errors.New("identity: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return "", fmt.Errorf("identity: ensure base path: %w", err)
	}

	path := filepath.Join(basePath, visitorFile)
	if data, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	}

	id := "visitor-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
	if err := os.WriteFile(path, []byte(id+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("identity: persist visitor id: %w", err)
	}
	return id, nil
}
