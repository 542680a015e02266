package services

import (
	"fmt"
	"strings"

	"pqapi/config"
)

// Content-type categories accepted for uploads
var allowedContentCategories = []string{"text", "application"}

// SubmissionFile is an uploaded file already read into memory
type SubmissionFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ValidationError reports why a submission was rejected. Line is the 1-based
// line of the first output mismatch, or 0 for file-level failures. The
// expected output is never included.
type ValidationError struct {
	Line    int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateUpload checks an uploaded file against the size bound and the
// accepted content-type categories. Runs before any output comparison.
func ValidateUpload(f *SubmissionFile) error {
	if f == nil || len(f.Data) == 0 {
		return &ValidationError{Message: "No file provided."}
	}
	category := strings.SplitN(f.ContentType, "/", 2)[0]
	supported := false
	for _, c := range allowedContentCategories {
		if category == c {
			supported = true
			break
		}
	}
	if !supported {
		return &ValidationError{Message: "File type is not supported!"}
	}
	if len(f.Data) > config.MaxUploadSize {
		return &ValidationError{Message: fmt.Sprintf("Filesize exceeds %d bytes.", config.MaxUploadSize)}
	}
	return nil
}

// CompareOutput compares submitted output against the expected output line
// by line. Lines are trimmed independently and the two sequences are zipped
// to the longer length, with missing lines treated as empty. The first
// mismatch yields a ValidationError naming the 1-based line.
func CompareOutput(submitted, expected string) error {
	a := splitLines(submitted)
	b := splitLines(expected)

	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var left, right string
		if i < len(a) {
			left = strings.TrimSpace(a[i])
		}
		if i < len(b) {
			right = strings.TrimSpace(b[i])
		}
		if left != right {
			return &ValidationError{
				Line:    i + 1,
				Message: fmt.Sprintf("Your output failed on line %d!", i+1),
			}
		}
	}
	return nil
}

// splitLines splits on newlines without manufacturing a trailing empty line
// for newline-terminated text
func splitLines(s string) []string {
	s = strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
