package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// NotFoundError indicates that none of the configured skill directories
// exists.
type NotFoundError struct {
	Dirs []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no skill directory found among %v", e.Dirs)
}

// IsNotFound reports whether err (or any error it wraps) is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Registry is an immutable collection of skills keyed by name. Built once
// by Load and never mutated afterwards, so it is safe for concurrent
// reads without coordination.
type Registry struct {
	records map[string]*Skill
}

// Get returns the skill with the given name.
func (r *Registry) Get(name string) (*Skill, bool) {
	s, ok := r.records[name]
	return s, ok
}

// Len returns the number of skills in the registry.
func (r *Registry) Len() int {
	return len(r.records)
}

// Names returns all skill names in lexicographic order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns all skills ordered by name.
func (r *Registry) Records() []*Skill {
	records := make([]*Skill, 0, len(r.records))
	for _, name := range r.Names() {
		records = append(records, r.records[name])
	}
	return records
}

// InCategory returns the skills in the given category, ordered by name.
func (r *Registry) InCategory(category string) []*Skill {
	var records []*Skill
	for _, s := range r.Records() {
		if s.Category == category {
			records = append(records, s)
		}
	}
	return records
}

// LoadOption configures Load
type LoadOption func(*loadConfig)

type loadConfig struct {
	lenient bool
}

// WithLenient makes Load skip documents that fail to parse instead of
// failing the whole load. Intended for interactive discovery where a
// single broken document should not hide the rest.
func WithLenient() LoadOption {
	return func(c *loadConfig) {
		c.lenient = true
	}
}

// Load builds a Registry from one or more skill directories. Each
// immediate subdirectory containing a SKILL.md contributes one skill.
// Earlier directories take precedence when the same name appears twice.
//
// Load fails with a NotFoundError when none of the directories exists,
// and by default with an aggregate of ParseErrors when any document is
// invalid.
func Load(dirs []string, opts ...LoadOption) (*Registry, error) {
	cfg := &loadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(dirs) == 0 {
		return nil, errors.New("at least one skill directory must be specified")
	}

	found := false
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			found = true
			break
		}
	}
	if !found {
		return nil, &NotFoundError{Dirs: dirs}
	}

	records := make(map[string]*Skill)
	var loadErrs *multierror.Error

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			entryPath := filepath.Join(dir, entry.Name())

			// Stat rather than entry.IsDir so symlinked skill
			// directories are followed.
			info, err := os.Stat(entryPath)
			if err != nil || !info.IsDir() {
				continue
			}

			skillPath := filepath.Join(entryPath, SkillFileName)
			if _, err := os.Stat(skillPath); err != nil {
				continue
			}

			skill, err := loadSkillFile(skillPath)
			if err != nil {
				if cfg.lenient {
					continue
				}
				loadErrs = multierror.Append(loadErrs, err)
				continue
			}

			if _, exists := records[skill.Name]; !exists {
				skill.Directory = entryPath
				records[skill.Name] = skill
			}
		}
	}

	if err := loadErrs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &Registry{records: records}, nil
}
