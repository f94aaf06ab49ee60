package bgcode

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func rawBlockHeaderBasic(typ BlockType, comp Compression, uncompressedSize uint32) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint16(typ))
	binary.Write(&buf, binary.LittleEndian, uint16(comp))
	binary.Write(&buf, binary.LittleEndian, uncompressedSize)
	return buf.Bytes()
}

func TestParseBlockHeaderUncompressed(t *testing.T) {
	h, err := parseBlockHeader(bytes.NewReader(rawBlockHeaderBasic(BlockGCode, CompressionNone, 42)), BlockGCode)
	if err != nil {
		t.Fatalf("parseBlockHeader: %v", err)
	}
	if h.sizeInBytes() != 8 {
		t.Errorf("sizeInBytes() = %d, want 8", h.sizeInBytes())
	}
	if h.payloadSize() != 42 {
		t.Errorf("payloadSize() = %d, want 42", h.payloadSize())
	}
}

func TestParseBlockHeaderCompressedHasExtraSizeField(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(rawBlockHeaderBasic(BlockGCode, CompressionDeflate, 100))
	binary.Write(&buf, binary.LittleEndian, uint32(60))

	h, err := parseBlockHeader(&buf, BlockGCode)
	if err != nil {
		t.Fatalf("parseBlockHeader: %v", err)
	}
	if h.sizeInBytes() != 12 {
		t.Errorf("sizeInBytes() = %d, want 12", h.sizeInBytes())
	}
	if h.payloadSize() != 60 {
		t.Errorf("payloadSize() = %d, want 60 (compressed size, not uncompressed)", h.payloadSize())
	}
}

func TestParseBlockHeaderWrongTypeIsBadBlockType(t *testing.T) {
	_, err := parseBlockHeader(bytes.NewReader(rawBlockHeaderBasic(BlockGCode, CompressionNone, 0)), BlockPrinterMetadata)
	berr, ok := err.(*Error)
	if !ok || berr.Code != BadBlockType {
		t.Errorf("err = %v, want BadBlockType", err)
	}
}

func TestParseBlockHeaderBadCompression(t *testing.T) {
	_, err := parseBlockHeader(bytes.NewReader(rawBlockHeaderBasic(BlockGCode, Compression(99), 0)), BlockGCode)
	berr, ok := err.(*Error)
	if !ok || berr.Code != BadCompression {
		t.Errorf("err = %v, want BadCompression", err)
	}
}
