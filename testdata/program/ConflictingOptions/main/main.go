package main

//ctorgen:generate
type Test struct {
	A int //ctor:default,name="a"
	B int
}

func main() {}
