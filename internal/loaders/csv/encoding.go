package csv

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
)

// fallbackEncodings are tried in order when the source is not valid
// UTF-8. ISO-8859-1 maps every byte, so it acts as the catch-all.
var fallbackEncodings = []struct {
	name string
	cm   *charmap.Charmap
}{
	{"windows-1252", charmap.Windows1252},
	{"iso-8859-1", charmap.ISO8859_1},
}

// decode negotiates the source encoding and returns the decoded text
// together with the encoding name that was actually used.
func decode(data []byte) (string, string, error) {
	// Strip a UTF-8 BOM if present; spreadsheet exports often carry one.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}

	for _, enc := range fallbackEncodings {
		out, err := enc.cm.NewDecoder().Bytes(data)
		if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
			// Undefined code points; try the next encoding.
			continue
		}
		return string(out), enc.name, nil
	}
	return "", "", domain.ErrUnreadableSource
}
