package main

import "fmt"

//ctorgen:generate
type Box[T any] struct {
	Value T
	Label string
	Spare T //ctor:default
}

func main() {
	b := NewBox(42, "answer")
	fmt.Println(b.Value, b.Label, b.Spare)
}
