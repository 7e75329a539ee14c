package engine

import (
	"io"
	"os"

	xxhash "github.com/cespare/xxhash/v2"
)

// contentFingerprint hashes the primary content of path. Named streams and
// extended attributes are not part of what a plain read returns, so the
// value only moves when the visible bytes do.
func contentFingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hexSum(h.Sum64()), nil
}

func hexSum(sum uint64) string {
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
