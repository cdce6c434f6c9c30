package compile

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

var errNoPages = errors.New("pdf has no pages")

// countPages parses data as a PDF and returns its page count. The parser
// panics on some malformed input, which is reported as an error.
func countPages(data []byte) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("parse pdf: %w", err)
	}
	pages = r.NumPage()
	if pages == 0 {
		return 0, errNoPages
	}
	return pages, nil
}
