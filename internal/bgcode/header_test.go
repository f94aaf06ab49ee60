package bgcode

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func rawHeader(magic, version uint32, checksumType uint16) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, magic)
	binary.Write(&buf, binary.LittleEndian, version)
	binary.Write(&buf, binary.LittleEndian, checksumType)
	return buf.Bytes()
}

func TestParseFileHeaderValid(t *testing.T) {
	h, err := parseFileHeader(bytes.NewReader(rawHeader(fileMagic, 1, 1)))
	if err != nil {
		t.Fatalf("parseFileHeader: %v", err)
	}
	if h.ChecksumType != ChecksumCRC32 {
		t.Errorf("ChecksumType = %v, want ChecksumCRC32", h.ChecksumType)
	}
}

func TestParseFileHeaderBadVersion(t *testing.T) {
	_, err := parseFileHeader(bytes.NewReader(rawHeader(fileMagic, 2, 0)))
	berr, ok := err.(*Error)
	if !ok || berr.Code != BadVersion {
		t.Errorf("err = %v, want BadVersion", err)
	}
}

func TestParseFileHeaderBadChecksumType(t *testing.T) {
	_, err := parseFileHeader(bytes.NewReader(rawHeader(fileMagic, 1, 2)))
	berr, ok := err.(*Error)
	if !ok || berr.Code != BadChecksumType {
		t.Errorf("err = %v, want BadChecksumType", err)
	}
}

func TestParseFileHeaderShortInput(t *testing.T) {
	_, err := parseFileHeader(bytes.NewReader([]byte{1, 2, 3}))
	berr, ok := err.(*Error)
	if !ok || berr.Code != ShortInput {
		t.Errorf("err = %v, want ShortInput", err)
	}
}
