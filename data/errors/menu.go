package errors

import "fmt"

// ParseError reports a malformed .menu document or an invalid tag structure.
type ParseError struct {
	File   string
	Line   int
	Column int
	Msg    string
	Err    error
}

func Parse(file string, line, column int, format string, args ...any) *ParseError {
	return &ParseError{
		File:   file,
		Line:   line,
		Column: column,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (pe *ParseError) Error() string {
	text := fmt.Sprintf("%s:%d:%d: %s", pe.File, pe.Line, pe.Column, pe.Msg)
	if pe.Err != nil {
		text = fmt.Sprintf("%s: %v", text, pe.Err)
	}

	return "menufs: " + text
}

func (pe *ParseError) Unwrap() error {
	return pe.Err
}

func (pe *ParseError) Is(target error) bool {
	return target == ErrParse
}

// MergeError wraps a failure encountered while resolving a merge directive.
// Nested merges produce a chain of MergeErrors, outermost first.
type MergeError struct {
	Path string
	Err  error
}

func Merge(err error, path string) *MergeError {
	return &MergeError{Path: path, Err: err}
}

func (me *MergeError) Error() string {
	return fmt.Sprintf("menufs: merging '%s': %v", me.Path, me.Err)
}

func (me *MergeError) Unwrap() error {
	return me.Err
}

func (me *MergeError) Is(target error) bool {
	return target == ErrMerge
}
