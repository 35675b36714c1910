package main

//ctorgen:generate
type User struct {
	Name string
}

func NewUser() User { return User{} }

func main() {}
