package traceheader

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"

	"github.com/segytools/segyfix/errs"
	"github.com/segytools/segyfix/header"
)

// CsvSource is a lazily-loaded CSV file backing CsvColumn trace edits
// (spec.md §4.7.1). encoding/csv is stdlib-only by necessity: no
// third-party CSV parser appears anywhere in the retrieved corpus, so there
// is no ecosystem convention to follow here.
type CsvSource struct {
	path string

	once    sync.Once
	loadErr error
	columns map[string]int // column name -> index
	rows    [][]string

	keyOnce   sync.Once
	keyColumn string
	byKey     map[string]int // key value -> row index
}

var (
	registryMu sync.Mutex
	registry   = map[string]*CsvSource{}
)

// Open returns the CsvSource for path, reusing the same instance for every
// edit that names the same file within a plan's lifetime ("CSV caches are
// per-plan and immutable after first load", spec.md §5).
func Open(path string) *CsvSource {
	registryMu.Lock()
	defer registryMu.Unlock()
	s, ok := registry[path]
	if !ok {
		s = &CsvSource{path: path}
		registry[path] = s
	}
	return s
}

// ResetRegistry clears the path-keyed cache. Call it between plans/files in
// long-running processes (e.g. the CLI invoking the engine once per file).
func ResetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = map[string]*CsvSource{}
}

func (s *CsvSource) load() error {
	s.once.Do(func() {
		f, err := os.Open(s.path)
		if err != nil {
			s.loadErr = err
			return
		}
		defer f.Close()

		r := csv.NewReader(f)
		records, err := r.ReadAll()
		if err != nil {
			s.loadErr = err
			return
		}
		if len(records) == 0 {
			s.loadErr = fmt.Errorf("traceheader: csv file %s has no header row", s.path)
			return
		}
		s.columns = make(map[string]int, len(records[0]))
		for i, name := range records[0] {
			s.columns[name] = i
		}
		s.rows = records[1:]
	})
	return s.loadErr
}

// buildKeyIndex builds (once) the key-value -> row-index map for keyColumn.
func (s *CsvSource) buildKeyIndex(keyColumn string) error {
	if err := s.load(); err != nil {
		return err
	}
	idx, ok := s.columns[keyColumn]
	if !ok {
		return fmt.Errorf("%w: key column %q not found in %s", errs.ErrCsvKeyMissing, keyColumn, s.path)
	}
	s.keyOnce.Do(func() {
		s.keyColumn = keyColumn
		s.byKey = make(map[string]int, len(s.rows))
		for i, row := range s.rows {
			if idx < len(row) {
				s.byKey[row[idx]] = i
			}
		}
	})
	return nil
}

// rowByIndex returns row N (0-based), matching "row N binds to trace index
// N". It returns ErrCsvUnderflow once the trace index runs past the last
// row.
func (s *CsvSource) rowByIndex(traceIndex int) ([]string, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	if traceIndex >= len(s.rows) {
		return nil, fmt.Errorf("%w: trace %d has no row in %s (%d rows)", errs.ErrCsvUnderflow, traceIndex, s.path, len(s.rows))
	}
	return s.rows[traceIndex], nil
}

// rowByKey returns the row whose keyColumn cell equals key.
func (s *CsvSource) rowByKey(keyColumn, key string) ([]string, error) {
	if err := s.buildKeyIndex(keyColumn); err != nil {
		return nil, err
	}
	i, ok := s.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: key %q not found in column %q of %s", errs.ErrCsvKeyMissing, key, keyColumn, s.path)
	}
	return s.rows[i], nil
}

// Value resolves the CsvColumn edit's value for one trace: row-index
// binding when keyColumn is empty, keyed binding otherwise. The result is
// parsed as an integer; if that fails and destField is one of
// header.CoordinateFieldNames, double-precision parsing is attempted and
// rounded (spec.md §4.7.1).
func (s *CsvSource) Value(column string, traceIndex int, keyColumn, keyValue, destField string) (int64, error) {
	if err := s.load(); err != nil {
		return 0, err
	}
	colIdx, ok := s.columns[column]
	if !ok {
		return 0, fmt.Errorf("traceheader: csv column %q not found in %s", column, s.path)
	}

	var row []string
	var err error
	if keyColumn == "" {
		row, err = s.rowByIndex(traceIndex)
	} else {
		row, err = s.rowByKey(keyColumn, keyValue)
	}
	if err != nil {
		return 0, err
	}
	if colIdx >= len(row) {
		return 0, fmt.Errorf("%w: row is missing column %q", errs.ErrCsvTypeError, column)
	}
	raw := row[colIdx]

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	if isCoordinateField(destField) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return int64(math.Round(f)), nil
		}
	}
	return 0, fmt.Errorf("%w: value %q for column %q is not an integer", errs.ErrCsvTypeError, raw, column)
}

func isCoordinateField(name string) bool {
	for _, c := range header.CoordinateFieldNames {
		if c == name {
			return true
		}
	}
	return false
}
