package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// readJSON loads a JSON array of flat objects as a table. Column order
// follows first appearance across records; nested values are stringified.
func readJSON(path string, maxRows int) ([]string, [][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &Error{Kind: KindNotFound, Path: path, Detail: err.Error()}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		return nil, nil, &Error{Kind: KindUnsupportedFormat, Path: path, Detail: fmt.Sprintf("json: %v", err)}
	}
	if len(records) == 0 {
		return nil, nil, &Error{Kind: KindEmptyFile, Path: path}
	}
	if len(records) > maxRows {
		records = records[:maxRows]
	}

	var header []string
	seen := map[string]int{}
	for _, rec := range records {
		// json object keys are unordered in Go; keep deterministic order by
		// sorting keys of each record before first-seen registration.
		for _, k := range sortedKeys(rec) {
			if _, ok := seen[k]; !ok {
				seen[k] = len(header)
				header = append(header, k)
			}
		}
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(header))
		for k, v := range rec {
			row[seen[k]] = stringifyJSON(v)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stringifyJSON(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
