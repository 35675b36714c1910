package main

import "fmt"

type Label string

type Count int

//ctorgen:generate
type Pair struct {
	Label //ctor:name="x"
	Count //ctor:name="y"
}

func main() {
	fmt.Println(NewPair("k", 3))
}
