package utils

import "golang.org/x/crypto/bcrypt"

// VerifyPassword reports whether plain matches the stored bcrypt hash.  The
// admin hash is provisioned out of band via ADMIN_PASSWORD_HASH, so only
// verification happens at runtime.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
