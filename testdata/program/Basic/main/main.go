package main

import "fmt"

type Role string

//ctorgen:generate
type User struct {
	Name  string
	Role  Role
	Tags  []string //ctor:default
	Score int      //ctor:value="len(defaultTags)"
}

var defaultTags = []string{"a", "b"}

func main() {
	u := NewUser("alice", "admin")
	fmt.Println(u.Name, u.Role, u.Tags == nil, u.Score)

	var r Role = "guest"
	u = NewUser("bob", r)
	fmt.Println(u.Name, u.Role)
}
