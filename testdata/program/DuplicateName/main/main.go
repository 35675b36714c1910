package main

//ctorgen:generate
type Test struct {
	A int //ctor:name="x"
	B int //ctor:name="x"
}

func main() {}
