package tftsim

import (
	"fmt"
	"regexp"
)

// EntryBlock is the body of the entry routine
type EntryBlock struct {
	Routine string
	// Body is the text strictly between the opening and matching closing brace
	Body string
	// Offset is the byte offset of Body within the source
	Offset int
	// StartLine is the 1-based source line on which Body starts
	StartLine int
	// Unterminated is true when the closing brace was never found and Body
	// runs to the end of the source
	Unterminated bool
}

// entryPattern builds the signature matcher for `void <routine>() {`
func entryPattern(routine string) *regexp.Regexp {
	return regexp.MustCompile(`\bvoid\s+` + regexp.QuoteMeta(routine) + `\s*\(\s*(?:void\s*)?\)\s*\{`)
}

// ExtractEntryBlock locates `void routine() {` and returns the text up to
// its matching closing brace. Nested braces are matched by depth counting;
// braces inside string and character literals do not count.
func ExtractEntryBlock(source, routine string) (*EntryBlock, error) {
	loc := entryPattern(routine).FindStringIndex(source)
	if loc == nil {
		return nil, fmt.Errorf("%w: %s()", ErrEntryNotFound, routine)
	}

	openIdx := loc[1] - 1
	block := &EntryBlock{
		Routine:   routine,
		Offset:    loc[1],
		StartLine: lineAt(source, loc[1]),
	}

	closeIdx := findClosing(source, openIdx, '{', '}')
	if closeIdx < 0 {
		block.Body = source[loc[1]:]
		block.Unterminated = true
		return block, nil
	}
	block.Body = source[loc[1]:closeIdx]
	return block, nil
}
