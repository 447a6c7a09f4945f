package roster

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

// Digest is a fixed-size fingerprint of file bytes.
type Digest [16]byte

// String returns the hex form of the digest, used only for logging.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Digester computes a Digest over file content.
type Digester func(content []byte) Digest

const (
	DigestXXH3 = "xxh3"
	DigestMD5  = "md5"
)

// XXH3Digest is the default digester (xxh3-128).
func XXH3Digest(content []byte) Digest {
	return Digest(xxh3.Hash128(content).Bytes())
}

// MD5Digest is kept for rosters whose tooling already records md5 checksums.
func MD5Digest(content []byte) Digest {
	return Digest(md5.Sum(content))
}

// DigesterByName resolves a configured algorithm name.
func DigesterByName(name string) (Digester, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DigestXXH3:
		return XXH3Digest, nil
	case DigestMD5:
		return MD5Digest, nil
	default:
		return nil, fmt.Errorf("unsupported digest algorithm '%s'", name)
	}
}
