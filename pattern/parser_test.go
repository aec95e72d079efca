package pattern

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moffa90/go-i2ceeprom/protocol"
)

func TestParseReader(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOffset uint16
		want       []byte
		wantErr    bool
		errMsg     string
	}{
		{
			name:       "single record",
			input:      ":01000D669900FFA55AF00F33AAF00FFF1B\n",
			wantOffset: 0x0100,
			want:       Default().Bytes(),
		},
		{
			name: "two contiguous records",
			input: ":010008669900FFA55AF00FFB\n" +
				":01080533AAF00FFF17\n",
			wantOffset: 0x0100,
			want:       Default().Bytes(),
		},
		{
			name: "comments and blank lines",
			input: "# default test pattern\n" +
				"\n" +
				"  :001001AB44  \n",
			wantOffset: 0x0010,
			want:       []byte{0xAB},
		},
		{
			name:       "last byte of memory",
			input:      ":FFFF010100\n",
			wantOffset: 0xFFFF,
			want:       []byte{0x01},
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
			errMsg:  "no records found",
		},
		{
			name:    "missing marker",
			input:   "01000D669900FFA55AF00F33AAF00FFF1B\n",
			wantErr: true,
			errMsg:  "must start with ':'",
		},
		{
			name:    "invalid hex",
			input:   ":0100XX\n",
			wantErr: true,
			errMsg:  "invalid hex data",
		},
		{
			name:    "too short",
			input:   ":010000\n",
			wantErr: true,
			errMsg:  "record too short",
		},
		{
			name:    "length mismatch",
			input:   ":010002AB44\n",
			wantErr: true,
			errMsg:  "data length mismatch",
		},
		{
			name:    "bad checksum",
			input:   ":001001AB45\n",
			wantErr: true,
			errMsg:  "checksum mismatch",
		},
		{
			name: "gap between records",
			input: ":010008669900FFA55AF00FFB\n" +
				":001001AB44\n",
			wantErr: true,
			errMsg:  "line 2: record at 0x0010 is not contiguous",
		},
		{
			name:    "past end of memory",
			input:   ":FFFF020102FD\n",
			wantErr: true,
			errMsg:  "offset overflow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ParseReader(strings.NewReader(tt.input))

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error = %v, want substring %q", err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.Offset != tt.wantOffset {
				t.Errorf("Offset = 0x%04X, want 0x%04X", img.Offset, tt.wantOffset)
			}
			if !img.Pattern.Equal(tt.want) {
				t.Errorf("Pattern = %v, want % X", img.Pattern, tt.want)
			}
		})
	}
}

func TestParseReaderOverflowIsTyped(t *testing.T) {
	_, err := ParseReader(strings.NewReader(":FFFF020102FD\n"))
	if !errors.Is(err, protocol.ErrOffsetOverflow) {
		t.Errorf("error = %v, want protocol.ErrOffsetOverflow", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pattern.hex")
	content := ":010008669900FFA55AF00FFB\n:01080533AAF00FFF17\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	img, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if img.Offset != protocol.DefaultOffset || !img.Pattern.Equal(Default().Bytes()) {
		t.Errorf("Parse() = 0x%04X %v, want default image", img.Offset, img.Pattern)
	}

	if _, err := Parse(filepath.Join(t.TempDir(), "missing.hex")); err == nil {
		t.Error("Parse() of a missing file should fail")
	}
}

func TestFormatImage(t *testing.T) {
	img := &Image{Offset: 0x0100, Pattern: Default()}

	var buf bytes.Buffer
	if err := FormatImage(&buf, img, 8); err != nil {
		t.Fatalf("FormatImage() unexpected error: %v", err)
	}

	want := ":010008669900FFA55AF00FFB\n:01080533AAF00FFF17\n"
	if buf.String() != want {
		t.Errorf("FormatImage() =\n%s\nwant\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := FormatImage(&buf, img, 0); err != nil {
		t.Fatalf("FormatImage() unexpected error: %v", err)
	}
	if buf.String() != ":01000D669900FFA55AF00F33AAF00FFF1B\n" {
		t.Errorf("FormatImage() with default record size = %q", buf.String())
	}

	if err := FormatImage(&buf, &Image{}, 8); !errors.Is(err, ErrEmpty) {
		t.Errorf("FormatImage() of empty image = %v, want ErrEmpty", err)
	}
}
