// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minhduc.le.dev@gmail.com

package sec

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the hex-encoded SHA-256 digest of a token string.
//
// Refresh tokens are stored at rest only as digests: the database never holds
// a value that could be replayed if it leaked. Digest equality is sufficient
// for the rotation protocol's stored-token check.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
