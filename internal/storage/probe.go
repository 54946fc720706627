package storage

import (
	"encoding/binary"
	"io"
)

// ProbeMP4Duration reads the mvhd box of an mp4 stream and returns the
// presentation duration in seconds. Returns 0 when the file has no
// parsable moov/mvhd, so callers can store uploads whose duration
// cannot be determined.
func ProbeMP4Duration(r io.ReaderAt, size int64) float64 {
	moovOffset, moovSize, ok := findBox(r, 0, size, "moov")
	if !ok {
		return 0
	}

	mvhdOffset, mvhdSize, ok := findBox(r, moovOffset, moovOffset+moovSize, "mvhd")
	if !ok {
		return 0
	}

	// version + flags
	header := make([]byte, 4)
	if _, err := r.ReadAt(header, mvhdOffset); err != nil {
		return 0
	}
	version := header[0]

	switch version {
	case 0:
		// 4 (version+flags) + 4 (ctime) + 4 (mtime)
		buf := make([]byte, 8)
		if mvhdSize < 20 {
			return 0
		}
		if _, err := r.ReadAt(buf, mvhdOffset+12); err != nil {
			return 0
		}
		timescale := binary.BigEndian.Uint32(buf[0:4])
		duration := binary.BigEndian.Uint32(buf[4:8])
		if timescale == 0 {
			return 0
		}
		return float64(duration) / float64(timescale)
	case 1:
		// 4 (version+flags) + 8 (ctime) + 8 (mtime)
		buf := make([]byte, 12)
		if mvhdSize < 32 {
			return 0
		}
		if _, err := r.ReadAt(buf, mvhdOffset+20); err != nil {
			return 0
		}
		timescale := binary.BigEndian.Uint32(buf[0:4])
		duration := binary.BigEndian.Uint64(buf[4:12])
		if timescale == 0 {
			return 0
		}
		return float64(duration) / float64(timescale)
	}

	return 0
}

// findBox scans sibling boxes in [start, end) for the named box and
// returns the offset and size of its payload.
func findBox(r io.ReaderAt, start, end int64, name string) (int64, int64, bool) {
	offset := start
	header := make([]byte, 16)

	for offset+8 <= end {
		if _, err := r.ReadAt(header[:8], offset); err != nil {
			return 0, 0, false
		}

		boxSize := int64(binary.BigEndian.Uint32(header[0:4]))
		boxType := string(header[4:8])
		headerLen := int64(8)

		switch boxSize {
		case 0:
			// box extends to end of file
			boxSize = end - offset
		case 1:
			if _, err := r.ReadAt(header[8:16], offset+8); err != nil {
				return 0, 0, false
			}
			boxSize = int64(binary.BigEndian.Uint64(header[8:16]))
			headerLen = 16
		}

		if boxSize < headerLen || offset+boxSize > end {
			return 0, 0, false
		}

		if boxType == name {
			return offset + headerLen, boxSize - headerLen, true
		}

		offset += boxSize
	}

	return 0, 0, false
}
