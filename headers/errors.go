package headers

import "fmt"

// DuplicateHeaderError reports two input directories contributing a header
// with the same bare filename.
type DuplicateHeaderError struct {
	Name       string
	FirstPath  string
	SecondPath string
}

func (e *DuplicateHeaderError) Error() string {
	return fmt.Sprintf("duplicate header file %q: %s and %s", e.Name, e.FirstPath, e.SecondPath)
}

// InvalidIncludeLineError reports an #include directive that does not match
// the strict include grammar.
type InvalidIncludeLineError struct {
	File string
	Line string
}

func (e *InvalidIncludeLineError) Error() string {
	return fmt.Sprintf("invalid #include line in %s: %q", e.File, e.Line)
}

// UnknownHeaderError reports a quoted include naming a header that was not
// found in any of the input directories.
type UnknownHeaderError struct {
	Name string
	File string
	Line string
}

func (e *UnknownHeaderError) Error() string {
	return fmt.Sprintf("unknown header %q included in %s: %q", e.Name, e.File, e.Line)
}
