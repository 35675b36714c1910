package main

import (
	"fmt"
	"time"
)

//ctorgen:generate
type Timer struct {
	Name    string
	Timeout time.Duration //ctor:value="3 * time.Second"
}

func main() {
	t := NewTimer("t")
	fmt.Println(t.Name, t.Timeout)
}
