package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// decodeLadder is the ordered list of encodings tried for delimited text.
// UTF-8 is checked structurally first; the charmap entries follow the same
// order pandas-era exports are usually seen in. A nil decoder means UTF-8.
var decodeLadder = []struct {
	name string
	dec  *encoding.Decoder
}{
	{"utf-8", nil},
	{"latin-1", charmap.ISO8859_1.NewDecoder()},
	{"windows-1252", charmap.Windows1252.NewDecoder()},
	{"iso-8859-1", charmap.ISO8859_1.NewDecoder()},
	{"cp1252", charmap.Windows1252.NewDecoder()},
}

// decodeText runs the encoding ladder over raw bytes. If every attempt
// produces replacement characters, the first lossy result is kept rather
// than failing: structurally valid files must never abort on encoding.
func decodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	var lossy string
	for _, e := range decodeLadder[1:] {
		out, err := e.dec.Bytes(raw)
		if err != nil {
			continue
		}
		s := string(out)
		if !strings.ContainsRune(s, utf8.RuneError) {
			return s
		}
		if lossy == "" {
			lossy = s
		}
	}
	if lossy != "" {
		return lossy
	}
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
}

// readDelimited loads a CSV/TSV file into header plus at most maxRows rows.
func readDelimited(path string, opt Options, maxRows int) ([]string, [][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &Error{Kind: KindNotFound, Path: path, Detail: err.Error()}
	}
	text := decodeText(raw)

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, &Error{Kind: KindEmptyFile, Path: path}
		}
		return nil, nil, &Error{Kind: KindUnsupportedFormat, Path: path, Detail: err.Error()}
	}

	var rows [][]string
	for len(rows) < maxRows {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, &Error{Kind: KindUnsupportedFormat, Path: path, Detail: err.Error()}
		}
		cp := make([]string, len(rec))
		copy(cp, rec)
		rows = append(rows, cp)
	}
	return header, rows, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// parseNumeric accepts plain, percent-suffixed, and comma-grouped numbers.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	// Comma as thousands separator only when a decimal point is present or
	// the groups look like grouping; a lone comma is treated as decimal.
	if strings.Contains(raw, ",") {
		if strings.Contains(raw, ".") {
			raw = strings.ReplaceAll(raw, ",", "")
		} else if looksGrouped(raw) {
			raw = strings.ReplaceAll(raw, ",", "")
		} else {
			raw = strings.Replace(raw, ",", ".", 1)
		}
	}
	raw = strings.ReplaceAll(raw, " ", "")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// looksGrouped reports whether commas split the digits into thousands
// groups, e.g. "1,234,567".
func looksGrouped(s string) bool {
	parts := strings.Split(strings.TrimLeft(s, "+-"), ",")
	if len(parts) < 2 || len(parts[0]) == 0 || len(parts[0]) > 3 {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}
	return true
}
