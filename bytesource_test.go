package ffdecode

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestByteSourceCopiesInput(t *testing.T) {
	in := []byte("hello")
	s := NewByteSource(in)
	in[0] = 'J'

	buf := make([]byte, 5)
	if _, err := s.Read(buf); err != nil {
		t.Fatal(err)
	}
	if string(buf) != "hello" {
		t.Errorf("Read = %q, source should hold a private copy", buf)
	}
}

func TestByteSourceRead(t *testing.T) {
	s := NewByteSource([]byte("0123456789"))

	buf := make([]byte, 4)
	n, err := s.Read(buf)
	if err != nil || n != 4 || string(buf) != "0123" {
		t.Fatalf("Read = %d, %v, %q", n, err, buf)
	}
	if s.Position() != 4 || s.Len() != 6 {
		t.Errorf("Position = %d, Len = %d", s.Position(), s.Len())
	}

	big := make([]byte, 100)
	n, err = s.Read(big)
	if err != nil || n != 6 || string(big[:n]) != "456789" {
		t.Fatalf("short Read = %d, %v", n, err)
	}

	n, err = s.Read(big)
	if n != 0 || err != io.EOF {
		t.Errorf("exhausted Read = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestByteSourceSeek(t *testing.T) {
	tests := []struct {
		name    string
		start   int64 // position before the seek
		offset  int64
		whence  int
		want    int64
		wantErr error
	}{
		{"start", 0, 3, io.SeekStart, 3, nil},
		{"start zero", 5, 0, io.SeekStart, 0, nil},
		{"start last byte", 0, 9, io.SeekStart, 9, nil},
		{"start at size", 0, 10, io.SeekStart, -1, ErrSeekOutOfRange},
		{"start negative", 0, -1, io.SeekStart, -1, ErrSeekOutOfRange},
		{"current forward", 2, 3, io.SeekCurrent, 5, nil},
		{"current backward", 6, -2, io.SeekCurrent, 4, nil},
		{"current to end", 2, 8, io.SeekCurrent, 10, nil},
		{"current past end", 2, 9, io.SeekCurrent, -1, ErrSeekOutOfRange},
		{"current back to start", 4, -4, io.SeekCurrent, -1, ErrSeekOutOfRange},
		{"end", 0, -4, io.SeekEnd, 6, nil},
		{"end exact", 0, 0, io.SeekEnd, 10, nil},
		{"end whole blob", 0, -10, io.SeekEnd, -1, ErrSeekOutOfRange},
		{"end beyond", 0, 1, io.SeekEnd, -1, ErrSeekOutOfRange},
		{"size", 3, 0, SeekSize, 10, nil},
		{"bad whence", 0, 0, 7, -1, ErrInvalidWhence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewByteSource([]byte("0123456789"))
			if tt.start > 0 {
				if _, err := s.Seek(tt.start, io.SeekStart); err != nil {
					t.Fatal(err)
				}
			}

			got, err := s.Seek(tt.offset, tt.whence)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Seek err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Seek = %d, want %d", got, tt.want)
			}
			if err != nil && s.Position() != tt.start {
				t.Errorf("failed seek moved cursor to %d", s.Position())
			}
			if tt.whence == SeekSize && s.Position() != tt.start {
				t.Error("SeekSize must not move the cursor")
			}
		})
	}
}

func TestByteSourceReadAfterSeek(t *testing.T) {
	s := NewByteSource([]byte("abcdefgh"))
	if _, err := s.Seek(-3, io.SeekEnd); err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(s)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("fgh")) {
		t.Errorf("ReadAll = %q, want fgh", got)
	}
}

func TestByteSourceEmpty(t *testing.T) {
	s := NewByteSource(nil)
	if s.Size() != 0 {
		t.Errorf("Size = %d", s.Size())
	}
	if _, err := s.Read(make([]byte, 1)); err != io.EOF {
		t.Errorf("Read on empty = %v", err)
	}
	if _, err := s.Seek(0, io.SeekStart); !errors.Is(err, ErrSeekOutOfRange) {
		t.Errorf("Seek on empty = %v", err)
	}
}
