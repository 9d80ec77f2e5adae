// Package encoding converts text input to UTF-8.
package encoding

import (
	"fmt"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ToUTF8 decodes data to UTF-8. A leading UTF-8 or UTF-16 byte order mark
// wins over charset and is stripped. Without a BOM the data is decoded from
// charset, a WHATWG label such as "euc-kr" or "windows-1252"; an empty
// charset means UTF-8.
func ToUTF8(data []byte, charset string) ([]byte, error) {
	fallback := unicode.UTF8.NewDecoder()
	if charset != "" {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, fmt.Errorf("charset %q: %w", charset, err)
		}
		fallback = enc.NewDecoder()
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(fallback), data)
	if err != nil {
		return nil, err
	}
	return out, nil
}
