package domain

type Customer struct {
	ID       int64
	Name     string
	Email    string
	Password string
}
