package ingest

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Options controls ingestion safety limits and parsing behavior.
type Options struct {
	// MaxRows caps loaded data rows; 0 means the default cap (one million).
	MaxRows int
	// MaxFileMB is the hard size ceiling; files above it are rejected.
	MaxFileMB float64
	// WarnFileMB is the large-file threshold; files above it load fine but
	// CheckFile reports VerdictWarn so callers can ask for confirmation.
	WarnFileMB float64
	// Delimiter for CSV. If 0, chosen from the file extension.
	Delimiter rune
}

// DefaultOptions returns the standard safety limits.
func DefaultOptions() Options {
	return Options{
		MaxRows:    1000000,
		MaxFileMB:  500,
		WarnFileMB: 50,
	}
}

// ErrorKind identifies why ingestion refused a file.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindWrongType
	KindTooLarge
	KindEmptyFile
	KindUnsupportedFormat
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindWrongType:
		return "wrong type"
	case KindTooLarge:
		return "too large"
	case KindEmptyFile:
		return "empty file"
	case KindUnsupportedFormat:
		return "unsupported format"
	}
	return "unknown"
}

// Error is returned for any file that cannot be ingested.
type Error struct {
	Kind   ErrorKind
	Path   string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ingest %s: %s: %s", filepath.Base(e.Path), e.Kind, e.Detail)
	}
	return fmt.Sprintf("ingest %s: %s", filepath.Base(e.Path), e.Kind)
}

// Verdict is the three-band size decision for a candidate file.
type Verdict int

const (
	VerdictAccept Verdict = iota
	VerdictWarn
	VerdictReject
)

// ColumnKind is the structural type inferred for a column.
type ColumnKind int

const (
	KindUnresolvedCol ColumnKind = iota
	KindNumeric
	KindText
	KindTemporal
	KindBoolean
)

func (k ColumnKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	case KindTemporal:
		return "temporal"
	case KindBoolean:
		return "boolean"
	}
	return "unresolved"
}

// Stats holds per-column sample statistics. Fields are populated only for
// the kinds they apply to; NullPct is always set.
type Stats struct {
	NonNull int
	Missing int
	Unique  int
	NullPct float64

	// numeric
	Min  float64
	Max  float64
	Mean float64

	// temporal
	MinTime time.Time
	MaxTime time.Time

	// categorical
	TopValue string
	TopCount int

	// boolean
	TrueCount int
}

// Column is one profiled column. Immutable once the dataset is returned.
type Column struct {
	Name  string
	Kind  ColumnKind
	Stats Stats
}

// Dataset is a loaded, profiled tabular file.
type Dataset struct {
	Name      string
	Path      string
	Rows      int
	Truncated bool
	Columns   []Column
}

// CheckFile validates existence, type and size without reading content.
// VerdictWarn means the file is loadable but large enough that interactive
// callers should confirm first; the returned size is in megabytes.
func CheckFile(path string, opt Options) (Verdict, float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return VerdictReject, 0, &Error{Kind: KindNotFound, Path: path}
	}
	if info.IsDir() {
		return VerdictReject, 0, &Error{Kind: KindWrongType, Path: path, Detail: "path is a directory"}
	}
	sizeMB := float64(info.Size()) / (1024 * 1024)
	maxMB := opt.MaxFileMB
	if maxMB <= 0 {
		maxMB = DefaultOptions().MaxFileMB
	}
	warnMB := opt.WarnFileMB
	if warnMB <= 0 {
		warnMB = DefaultOptions().WarnFileMB
	}
	if sizeMB > maxMB {
		return VerdictReject, sizeMB, &Error{
			Kind: KindTooLarge, Path: path,
			Detail: fmt.Sprintf("%.1fMB exceeds %.0fMB limit", sizeMB, maxMB),
		}
	}
	if info.Size() == 0 {
		return VerdictReject, 0, &Error{Kind: KindEmptyFile, Path: path}
	}
	if sizeMB > warnMB {
		return VerdictWarn, sizeMB, nil
	}
	return VerdictAccept, sizeMB, nil
}

// Load validates and loads a dataset file, dispatching on extension.
// Supported: .csv/.tsv, .xlsx, .json. The large-file warning is advisory
// only; Load itself never prompts and never blocks on it.
func Load(path string, opt Options) (*Dataset, error) {
	if _, _, err := CheckFile(path, opt); err != nil {
		return nil, err
	}
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultOptions().MaxRows
	}

	var header []string
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		header, rows, err = readDelimited(path, opt, maxRows)
	case ".xlsx":
		header, rows, err = readXLSX(path, maxRows)
	case ".json":
		header, rows, err = readJSON(path, maxRows)
	default:
		return nil, &Error{Kind: KindUnsupportedFormat, Path: path, Detail: filepath.Ext(path)}
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &Error{Kind: KindEmptyFile, Path: path, Detail: "no data rows"}
	}

	ds := buildDataset(path, header, rows)
	ds.Truncated = len(rows) == maxRows
	return ds, nil
}

// buildDataset profiles every column in a single pass over the rows.
func buildDataset(path string, header []string, rows [][]string) *Dataset {
	ncol := len(header)

	type colAcc struct {
		name     string
		nonNull  int
		missing  int
		distinct map[string]struct{}
		counts   map[string]int

		// numeric stats via Welford
		n    int
		mean float64
		m2   float64
		min  float64
		max  float64

		numCnt  int
		dtCnt   int
		boolCnt int
		txtCnt  int

		trueCnt    int
		minT, maxT time.Time
	}
	cols := make([]*colAcc, ncol)
	for i := range header {
		cols[i] = &colAcc{
			name:     strings.TrimSpace(header[i]),
			distinct: make(map[string]struct{}),
			counts:   make(map[string]int),
			min:      math.Inf(1),
			max:      math.Inf(-1),
		}
	}

	for _, rec := range rows {
		if len(rec) < ncol {
			tmp := make([]string, ncol)
			copy(tmp, rec)
			rec = tmp
		}
		for j := 0; j < ncol; j++ {
			v := strings.TrimSpace(rec[j])
			c := cols[j]
			if v == "" {
				c.missing++
				continue
			}
			c.nonNull++
			c.distinct[v] = struct{}{}
			if b, ok := parseBoolMaybe(v); ok {
				c.boolCnt++
				if b {
					c.trueCnt++
				}
				continue
			}
			if x, ok := parseNumeric(v); ok {
				c.numCnt++
				c.n++
				if x < c.min {
					c.min = x
				}
				if x > c.max {
					c.max = x
				}
				delta := x - c.mean
				c.mean += delta / float64(c.n)
				c.m2 += delta * (x - c.mean)
				continue
			}
			if t, ok := parseTimeMaybe(v); ok {
				c.dtCnt++
				if c.minT.IsZero() || t.Before(c.minT) {
					c.minT = t
				}
				if c.maxT.IsZero() || t.After(c.maxT) {
					c.maxT = t
				}
				continue
			}
			c.txtCnt++
			if len(c.counts) <= 10000 { // guard memory
				if len(v) <= 64 {
					c.counts[v]++
				}
			}
		}
	}

	ds := &Dataset{
		Name:    filepath.Base(path),
		Path:    path,
		Rows:    len(rows),
		Columns: make([]Column, 0, ncol),
	}
	for _, c := range cols {
		s := Stats{
			NonNull: c.nonNull,
			Missing: c.missing,
			Unique:  len(c.distinct),
		}
		total := c.nonNull + c.missing
		if total > 0 {
			s.NullPct = float64(c.missing) * 100.0 / float64(total)
		}
		kind := KindUnresolvedCol
		switch {
		case c.boolCnt > 0 && c.boolCnt >= c.numCnt && c.boolCnt >= c.txtCnt && c.boolCnt >= c.dtCnt:
			kind = KindBoolean
			s.TrueCount = c.trueCnt
		case c.numCnt > 0 && c.numCnt >= c.dtCnt && c.numCnt >= c.txtCnt:
			kind = KindNumeric
			s.Min = c.min
			s.Max = c.max
			s.Mean = c.mean
		case c.dtCnt > 0 && c.dtCnt >= c.txtCnt:
			kind = KindTemporal
			s.MinTime = c.minT
			s.MaxTime = c.maxT
		case c.txtCnt > 0:
			kind = KindText
			s.TopValue, s.TopCount = topValue(c.counts)
		}
		ds.Columns = append(ds.Columns, Column{Name: c.name, Kind: kind, Stats: s})
	}
	return ds
}

// topValue picks the most frequent value with a deterministic tie-break so
// repeated loads of the same file produce identical datasets.
func topValue(counts map[string]int) (string, int) {
	if len(counts) == 0 {
		return "", 0
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best, counts[best]
}

func parseBoolMaybe(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes":
		return true, true
	case "false", "no":
		return false, true
	}
	return false, false
}

func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
		"2006-01-02 15:04", "2006-01-02 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
