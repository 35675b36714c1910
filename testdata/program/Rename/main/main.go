package main

import "fmt"

//ctorgen:generate MakePoint
type Point struct {
	X int //ctor:name="x0"
	Y int
}

func main() {
	p := MakePoint(1, 2)
	fmt.Println(p.X, p.Y)
}
