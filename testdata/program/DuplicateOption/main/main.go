package main

//ctorgen:generate
type Test struct {
	A int //ctor:name="a",name="b"
}

func main() {}
