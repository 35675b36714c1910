package main

import "fmt"

type Age uint8

//ctorgen:generate
type Test struct {
	Name  string
	Age   uint8
	Ratio float32
	Admin bool
}

//ctorgen:generate
type Person struct {
	Name string
	Age  Age
}

func main() {
	t := NewTest("Awiteb", 20, 0.5, true)
	fmt.Println(t.Name, t.Age, t.Ratio, t.Admin)

	t = NewTest([]byte("Bob"), int(30), 2, false)
	fmt.Println(t.Name, t.Age, t.Ratio, t.Admin)

	const age = 40
	p := NewPerson([]rune("Carol"), age)
	fmt.Println(p.Name, p.Age)

	p = NewPerson("Dave", Age(50))
	fmt.Println(p.Name, p.Age)
}
