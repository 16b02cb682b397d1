package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/gyaneshwarpardhi/automation/internal/metrics"
)

// ErrInvalidCatalog is returned when a catalog file parses but fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Loader reads a YAML catalog file and watches it for changes. The current
// catalog is always one that passed Validate.
type Loader struct {
	path     string
	mu       sync.RWMutex
	current  *Catalog
	onChange []func(*Catalog)
	watcher  *fsnotify.Watcher
}

// NewLoader creates a Loader and performs the initial load and validation.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path}
	c, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = c
	return l, nil
}

// Catalog returns the most recently loaded catalog.
func (l *Loader) Catalog() *Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the catalog reloads.
func (l *Loader) OnChange(fn func(*Catalog)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that hot-reloads the catalog on file changes.
// Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("catalog watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("catalog watcher add %s: %w", l.path, err)
	}
	l.watcher = w

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					if _, err := l.Reload(); err != nil {
						slog.Warn("catalog reload failed, keeping previous catalog", "path", l.path, "err", err)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("catalog watcher error", "err", err)
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

// Reload forces an immediate re-read of the catalog file. On failure the
// previous catalog stays current and no callback runs.
func (l *Loader) Reload() (*Catalog, error) {
	c, err := l.load()
	if err != nil {
		if errors.Is(err, ErrInvalidCatalog) {
			metrics.CatalogReloads.WithLabelValues("invalid").Inc()
		} else {
			metrics.CatalogReloads.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	metrics.CatalogReloads.WithLabelValues("ok").Inc()
	l.mu.Lock()
	l.current = c
	callbacks := make([]func(*Catalog), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(c)
	}
	return c, nil
}

func (l *Loader) load() (*Catalog, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", l.path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", l.path, err)
	}
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidCatalog, l.path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog and applies defaults. It does not validate.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	for name, def := range c.Events {
		if def.DefaultCondition.QueryOperator == "" {
			def.DefaultCondition.QueryOperator = "and"
		}
		c.Events[name] = def
	}
	if c.DefaultAction == "" && len(c.Actions) > 0 {
		c.DefaultAction = c.Actions[0].Key
	}
	if c.HeaderLabels.Conversation == "" {
		c.HeaderLabels.Conversation = "AUTOMATION.CONDITION.CONVERSATION_CUSTOM_ATTR_LABEL"
	}
	if c.HeaderLabels.Contact == "" {
		c.HeaderLabels.Contact = "AUTOMATION.CONDITION.CONTACT_CUSTOM_ATTR_LABEL"
	}
	return &c, nil
}
