package encoding

import "testing"

func TestToUTF8(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		charset string
		want    string
	}{
		{"plain utf-8", []byte(`{"a":1}`), "", `{"a":1}`},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, `{"a":1}`...), "", `{"a":1}`},
		{"utf-16le bom", []byte{0xFF, 0xFE, '{', 0, '}', 0}, "", `{}`},
		{"utf-16be bom", []byte{0xFE, 0xFF, 0, '[', 0, ']'}, "", `[]`},
		{"latin1", []byte{'c', 'a', 'f', 0xE9}, "windows-1252", "café"},
		{"euc-kr", []byte{0xC7, 0xD1}, "euc-kr", "한"},
		{"bom beats charset", append([]byte{0xEF, 0xBB, 0xBF}, "é"...), "euc-kr", "é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUTF8(tt.data, tt.charset)
			if err != nil {
				t.Fatalf("ToUTF8: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToUTF8UnknownCharset(t *testing.T) {
	if _, err := ToUTF8([]byte("x"), "klingon"); err == nil {
		t.Error("expected error for unknown charset")
	}
}
