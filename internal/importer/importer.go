package importer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/icabanken/internal/model"
)

// Parser converts a bank export into a Statement.
type Parser interface {
	Parse(r io.Reader) (*model.Statement, error)
	Identify(r io.Reader) bool
	Format() string
}

// ICAParser parses ICA Banken exports of one Variant.
type ICAParser struct {
	Variant Variant
}

// FormatName returns the registry name of the parser for v.
func FormatName(v Variant) string {
	if v == WithoutPeriod {
		return "icabanken-noperiod"
	}
	return "icabanken"
}

// Format returns the parser name.
func (p *ICAParser) Format() string { return FormatName(p.Variant) }

// Parse reads r fully and parses it. If r has a Name method (like *os.File),
// the base name is recorded on the statement.
func (p *ICAParser) Parse(r io.Reader) (*model.Statement, error) {
	content, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s export: %w", p.Format(), err)
	}
	var name string
	if n, ok := r.(interface{ Name() string }); ok {
		name = filepath.Base(n.Name())
	}
	return parseStatement(content, p.Variant, name)
}

// Identify reports whether r holds a valid export of this parser's variant.
func (p *ICAParser) Identify(r io.Reader) bool {
	content, err := decode(r)
	if err != nil {
		return false
	}
	return Identify(content, p.Variant)
}

// Registry holds named parsers in registration order.
type Registry struct {
	parsers map[string]Parser
	order   []Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
	r.order = append(r.order, p)
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names in registration order.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.order))
	for _, p := range r.order {
		names = append(names, p.Format())
	}
	return names
}

// Detect returns the first parser that identifies data, or nil.
func (r *Registry) Detect(data []byte) Parser {
	for _, p := range r.order {
		if p.Identify(bytes.NewReader(data)) {
			return p
		}
	}
	return nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ICAParser{Variant: WithPeriod})
	r.Register(&ICAParser{Variant: WithoutPeriod})
	return r
}

// processedDir is the subdirectory of the import dir for parsed files.
const processedDir = "processed"

// Scan returns CSV files in <repoRoot>/<dir>/.
func Scan(repoRoot, dir string) ([]FileInfo, error) {
	path := filepath.Join(repoRoot, dir)
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(path, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from <dir>/ to <dir>/processed/.
func MarkProcessed(repoRoot, dir, fileName string) error {
	src := filepath.Join(repoRoot, dir, fileName)
	dstDir := filepath.Join(repoRoot, dir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
