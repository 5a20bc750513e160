package google

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"strings"
)

// sampleRate reads the rate parameter of a mime type like "audio/L16;codec=pcm;rate=24000".
func sampleRate(mimeType string) int {
	for _, param := range strings.Split(mimeType, ";") {
		key, val, ok := strings.Cut(strings.TrimSpace(param), "=")

		if !ok || !strings.EqualFold(key, "rate") {
			continue
		}

		if rate, err := strconv.Atoi(val); err == nil && rate > 0 {
			return rate
		}
	}

	return 24000
}

func encodeWAV(pcm []byte, rate, channels, bits int) []byte {
	var buf bytes.Buffer

	blockAlign := channels * bits / 8
	byteRate := rate * blockAlign

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(rate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bits))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}
