package service

import (
	"crypto/md5"
	"encoding/hex"
)

// PasswordCodec derives storable password digests. The salt is a single
// process-wide secret provisioned through configuration; rotating it
// invalidates every digest already stored, so treat it as versioned and
// non-rotatable. Digests are deterministic: two accounts with the same
// raw password produce the same digest. Known limitation of the stored
// data model, kept for compatibility with existing rows.
type PasswordCodec struct {
	salt string
}

func NewPasswordCodec(salt string) *PasswordCodec {
	return &PasswordCodec{salt: salt}
}

// Encrypt returns the hex digest of salt+raw. Login compares digests by
// exact string equality.
func (c *PasswordCodec) Encrypt(raw string) string {
	sum := md5.Sum([]byte(c.salt + raw))
	return hex.EncodeToString(sum[:])
}
