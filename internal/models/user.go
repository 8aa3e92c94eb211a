package models

// User is an account that can sign in. Only superusers may manage content.
type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	IsSuperuser  bool   `db:"is_superuser"`
}
