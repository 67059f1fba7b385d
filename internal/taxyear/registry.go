package taxyear

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedYear = errors.New("unsupported tax year")
	ErrMissingTable    = errors.New("missing tax table")
	ErrInvalidTable    = errors.New("invalid tax table")
)

//go:embed tables/*.yaml
var embedded embed.FS

// Registry resolves tax years to validated tables. Lookup order is dir, then
// the remote source, then the embedded tables. Loaded tables are cached for
// the life of the registry.
type Registry struct {
	dir    string
	remote *remoteSource
	log    *zap.Logger
	cache  sync.Map // int -> *Table
}

func NewRegistry(dir string, opts ...Option) *Registry {
	r := &Registry{dir: dir, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the table for year or an error wrapping ErrUnsupportedYear,
// ErrMissingTable or ErrInvalidTable. It never falls back to another year.
func (r *Registry) Get(year int) (*Table, error) {
	if t, ok := r.cache.Load(year); ok {
		return t.(*Table), nil
	}

	data, err := r.read(year)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("tax year %d: %w", year, err)
	}
	if t.Year != year {
		return nil, fmt.Errorf("%w: file for %d declares year %d", ErrInvalidTable, year, t.Year)
	}

	actual, _ := r.cache.LoadOrStore(year, t)
	return actual.(*Table), nil
}

// Years lists every year the registry can serve, ascending.
func (r *Registry) Years() []int {
	seen := map[int]bool{}
	collect := func(names []string) {
		for _, name := range names {
			if y, ok := yearFromName(name); ok {
				seen[y] = true
			}
		}
	}

	if entries, err := fs.ReadDir(embedded, "tables"); err == nil {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		collect(names)
	}
	if r.dir != "" {
		if entries, err := os.ReadDir(r.dir); err == nil {
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				if !e.IsDir() {
					names = append(names, e.Name())
				}
			}
			collect(names)
		}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func (r *Registry) read(year int) ([]byte, error) {
	name := strconv.Itoa(year) + ".yaml"
	if r.dir != "" {
		data, err := os.ReadFile(filepath.Join(r.dir, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read tax table %s: %w", name, err)
		}
	}
	var remoteErr error
	if r.remote != nil {
		data, err := r.remote.fetch(year)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, errRemoteMissing) {
			remoteErr = err
		}
	}
	data, err := embedded.ReadFile("tables/" + name)
	if err != nil {
		if remoteErr != nil {
			return nil, fmt.Errorf("%w: %d: %v", ErrUnsupportedYear, year, remoteErr)
		}
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedYear, year)
	}
	if remoteErr != nil {
		r.log.Warn("remote tax table unavailable, using embedded copy",
			zap.Int("year", year), zap.Error(remoteErr))
	}
	return data, nil
}

// Parse decodes and validates one YAML table.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func yearFromName(name string) (int, bool) {
	base, ok := strings.CutSuffix(name, ".yaml")
	if !ok {
		return 0, false
	}
	y, err := strconv.Atoi(base)
	if err != nil || y <= 0 {
		return 0, false
	}
	return y, true
}
