package storage

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func box(name string, payload []byte) []byte {
	buf := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint32(buf[0:4], uint32(8+len(payload)))
	copy(buf[4:8], name)
	copy(buf[8:], payload)
	return buf
}

func mvhdV0(timescale, duration uint32) []byte {
	payload := make([]byte, 24)
	// version 0, flags 0, ctime, mtime
	binary.BigEndian.PutUint32(payload[12:16], timescale)
	binary.BigEndian.PutUint32(payload[16:20], duration)
	return box("mvhd", payload)
}

func mvhdV1(timescale uint32, duration uint64) []byte {
	payload := make([]byte, 32)
	payload[0] = 1
	binary.BigEndian.PutUint32(payload[20:24], timescale)
	binary.BigEndian.PutUint64(payload[24:32], duration)
	return box("mvhd", payload)
}

func TestProbeMP4DurationVersion0(t *testing.T) {
	file := append(box("ftyp", make([]byte, 8)), box("moov", mvhdV0(1000, 95500))...)

	duration := ProbeMP4Duration(bytes.NewReader(file), int64(len(file)))

	assert.InDelta(t, 95.5, duration, 0.001)
}

func TestProbeMP4DurationVersion1(t *testing.T) {
	file := append(box("ftyp", make([]byte, 8)), box("moov", mvhdV1(600, 36000))...)

	duration := ProbeMP4Duration(bytes.NewReader(file), int64(len(file)))

	assert.InDelta(t, 60.0, duration, 0.001)
}

func TestProbeMP4DurationMoovAfterMdat(t *testing.T) {
	file := box("ftyp", make([]byte, 8))
	file = append(file, box("mdat", make([]byte, 100))...)
	file = append(file, box("moov", mvhdV0(30, 900))...)

	duration := ProbeMP4Duration(bytes.NewReader(file), int64(len(file)))

	assert.InDelta(t, 30.0, duration, 0.001)
}

func TestProbeMP4DurationGarbage(t *testing.T) {
	garbage := []byte("definitely not an mp4 file at all")
	assert.Equal(t, 0.0, ProbeMP4Duration(bytes.NewReader(garbage), int64(len(garbage))))
}

func TestProbeMP4DurationEmpty(t *testing.T) {
	assert.Equal(t, 0.0, ProbeMP4Duration(bytes.NewReader(nil), 0))
}

func TestProbeMP4DurationZeroTimescale(t *testing.T) {
	file := box("moov", mvhdV0(0, 900))
	assert.Equal(t, 0.0, ProbeMP4Duration(bytes.NewReader(file), int64(len(file))))
}
