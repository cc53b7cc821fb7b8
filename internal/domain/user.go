package domain

type User struct {
	UserID   int64
	Name     string
	Username string
	Email    string
}
