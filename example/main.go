package main

//go:generate go tool ctorgen

import (
	"fmt"
	"net/url"
	"time"
)

type Role string

//ctorgen:generate
type Account struct {
	Email   string
	Role    Role
	Home    *url.URL
	Created time.Time         //ctor:value="time.Now().UTC()"
	Labels  map[string]string //ctor:default
}

type (
	Host string
	Port uint16
)

// Endpoint has only embedded fields, so its constructor builds an unkeyed
// composite literal.
//
//ctorgen:generate
type Endpoint struct {
	Host //ctor:name="host"
	Port //ctor:name="port"
}

func main() {
	home, err := url.Parse("https://example.com/~alice")
	if err != nil {
		panic(err)
	}

	acc := NewAccount("alice@example.com", "admin", home)
	fmt.Println(acc.Email, acc.Role, acc.Home, acc.Labels == nil)

	ep := NewEndpoint("localhost", 8080)
	fmt.Printf("%s:%d\n", ep.Host, ep.Port)
}
