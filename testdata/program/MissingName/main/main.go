package main

type Label string

//ctorgen:generate
type Test struct {
	Label
}

func main() {}
