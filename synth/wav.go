package synth

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// HeaderSize is the length of the canonical header written by EncodeWAV.
const HeaderSize = 44

var ErrUnsupportedFormat = errors.New("unsupported wav format")

// EncodeWAV returns b as a canonical 44-byte-header PCM WAVE file.
func EncodeWAV(b *Buffer) []byte {
	blockAlign := Channels * BitDepth / 8
	dataSize := len(b.Frames) * blockAlign
	out := make([]byte, HeaderSize+dataSize)
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 1)
	binary.LittleEndian.PutUint16(out[22:], Channels)
	binary.LittleEndian.PutUint32(out[24:], SampleRate)
	binary.LittleEndian.PutUint32(out[28:], uint32(SampleRate*blockAlign))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], BitDepth)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	off := HeaderSize
	for _, f := range b.Frames {
		for _, s := range f {
			binary.LittleEndian.PutUint16(out[off:], uint16(s))
			off += 2
		}
	}
	return out
}

func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(EncodeWAV(b))
	return int64(n), err
}

type fmtChunk struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// ReadHeader consumes r up to the first sample and returns the number of
// frames in the data chunk. Chunks other than "fmt " and "data" are skipped.
func ReadHeader(r io.Reader) (int, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return 0, errors.Wrap(err, "reading riff header")
	}
	if !bytes.Equal(riff[0:4], []byte("RIFF")) || !bytes.Equal(riff[8:12], []byte("WAVE")) {
		return 0, errors.Wrap(ErrUnsupportedFormat, "not a RIFF/WAVE file")
	}

	var format *fmtChunk
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return 0, errors.Wrap(err, "reading chunk header")
		}
		id := string(hdr[0:4])
		size := binary.LittleEndian.Uint32(hdr[4:8])
		switch id {
		case "fmt ":
			var fc fmtChunk
			if err := binary.Read(io.LimitReader(r, int64(size)), binary.LittleEndian, &fc); err != nil {
				return 0, errors.Wrap(err, "reading fmt chunk")
			}
			if rest := int64(size) - 16; rest > 0 {
				if _, err := io.CopyN(io.Discard, r, rest); err != nil {
					return 0, errors.Wrap(err, "skipping fmt extension")
				}
			}
			if fc.AudioFormat != 1 || fc.Channels != Channels || fc.SampleRate != SampleRate || fc.BitsPerSample != BitDepth {
				return 0, errors.Wrapf(ErrUnsupportedFormat, "format=%d channels=%d rate=%d bits=%d",
					fc.AudioFormat, fc.Channels, fc.SampleRate, fc.BitsPerSample)
			}
			format = &fc
		case "data":
			if format == nil {
				return 0, errors.Wrap(ErrUnsupportedFormat, "data chunk before fmt chunk")
			}
			return int(size) / (Channels * BitDepth / 8), nil
		default:
			skip := int64(size) + int64(size%2)
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return 0, errors.Wrapf(err, "skipping %q chunk", id)
			}
		}
	}
}

// DecodeWAV reads a PCM WAVE file in the library format.
func DecodeWAV(r io.Reader) (*Buffer, error) {
	n, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	frames := make([]Frame, n)
	if err := binary.Read(r, binary.LittleEndian, frames); err != nil {
		return nil, errors.Wrap(err, "reading samples")
	}
	return &Buffer{Frames: frames}, nil
}
