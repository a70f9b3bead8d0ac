// Package question turns raw generator output into question blocks with an
// exact item count and clean, contiguous numbering. It is the single point
// that enforces the output contract: a report shows exactly the requested
// number of questions, never more.
package question

import (
	"fmt"
	"regexp"
	"strings"
)

// Source records which path produced a block's text.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceOffline   Source = "offline-fallback"
)

// Item is one extracted question. Position is 1-based and contiguous
// within its block; Text carries no numbering prefix.
type Item struct {
	Position int
	Text     string
}

// Block is a finalized set of questions for one dataset or comparison.
type Block struct {
	Header    string
	Items     []Item
	Requested int
	Source    Source
}

// Short reports whether extraction produced fewer items than requested.
// A short block is reportable but not an error; the Normalizer never
// invents items to pad the difference.
func (b Block) Short() bool {
	return len(b.Items) < b.Requested
}

// itemPrefix opens a new item: optional leading whitespace, an integer,
// then "." or ")" and at least one space.
var itemPrefix = regexp.MustCompile(`^\s*(\d+)[.)]\s+`)

// Parser states for the line scan.
type parseState int

const (
	stateSeeking parseState = iota // before the first numbered line
	stateInItem                    // accumulating the current item
	stateBetween                   // blank line closed the previous item
)

// Normalize extracts numbered items from free text and reconciles them to
// requested. Extra items are discarded; a shortfall is returned as-is with
// Short() true. Item positions are renumbered from 1 regardless of the
// original numbering, and multi-line bodies are joined into one text.
func Normalize(header, text string, requested int, src Source) Block {
	if requested < 1 {
		requested = 1
	}
	b := Block{Header: header, Requested: requested, Source: src}

	var items []string
	var current []string
	state := stateSeeking

	flush := func() {
		if len(current) > 0 {
			items = append(items, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if m := itemPrefix.FindString(line); m != "" {
			flush()
			current = []string{strings.TrimSpace(line[len(m):])}
			state = stateInItem
			continue
		}
		switch state {
		case stateSeeking, stateBetween:
			// Header or preamble text before/between items is ignored.
		case stateInItem:
			if strings.TrimSpace(line) == "" {
				flush()
				state = stateBetween
			} else {
				current = append(current, strings.TrimSpace(line))
			}
		}
	}
	flush()

	if len(items) > requested {
		items = items[:requested]
	}
	b.Items = make([]Item, len(items))
	for i, text := range items {
		b.Items[i] = Item{Position: i + 1, Text: text}
	}
	return b
}

// Render writes a block back out as numbered text under its header.
func Render(b Block) string {
	var sb strings.Builder
	if b.Header != "" {
		sb.WriteString(b.Header)
		sb.WriteString("\n\n")
	}
	for i, it := range b.Items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d. %s", it.Position, it.Text)
	}
	return sb.String()
}
