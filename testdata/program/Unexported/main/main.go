package main

import "fmt"

//ctorgen:generate
type config struct {
	HTTPAddr string
	retries  int
}

func main() {
	c := newConfig(":8080", 3)
	fmt.Println(c.HTTPAddr, c.retries)
}
