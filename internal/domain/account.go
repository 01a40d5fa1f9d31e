package domain

// Account is a registered user. PasswordHash is a bcrypt hash, never the
// plaintext password.
type Account struct {
	Username     string
	PasswordHash string
}
