package auth

import "golang.org/x/crypto/bcrypt"

// passwordCost is bcrypt's work factor of 10. The hash embeds the cost, so
// raising it later only affects newly written hashes.
const passwordCost = bcrypt.DefaultCost

// HashPassword produces a salted one-way digest; bcrypt picks a fresh salt
// per call, so equal inputs hash differently.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash. Mismatch
// and malformed hash both come back false.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
