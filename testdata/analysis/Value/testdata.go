package value

import "time"

var fallback = "none"

//ctorgen:generate
type Mismatch struct {
	X int //ctor:value="fallback" // want "cannot use value \"fallback\" \\(string\\) as int"
}

//ctorgen:generate
type Undefined struct {
	X int //ctor:value="missing()" // want "cannot use value \"missing\\(\\)\": undefined: missing"
}

//ctorgen:generate
type Syntax struct {
	X int //ctor:value="1 +" // want "value \"1 \\+\" is not a valid expression"
}

//ctorgen:generate
type NotValue struct {
	X time.Duration //ctor:value="time.Duration" // want "cannot use value \"time.Duration\" as time.Duration; not a value"
}

//ctorgen:generate
type Empty struct {
	X int //ctor:value="" // want "value cannot be empty"
}

//ctorgen:generate
type Overflow struct {
	X uint8 //ctor:value="300" // want "cannot use value \"300\" as uint8; constant 300 is not representable by uint8"
}

type Level int8

//ctorgen:generate
type NamedOverflow struct {
	X Level //ctor:value="-129" // want "cannot use value \"-129\" as Level; constant -129 is not representable by int8"
}

//ctorgen:generate
type Truncated struct {
	X int //ctor:value="2.5" // want "cannot use value \"2.5\" as int; constant 2.5 is not representable by int"
}

//ctorgen:generate
type Boundary struct {
	X Level //ctor:value="-128"
	Y uint8 //ctor:value="255"
	Z int   //ctor:value="2.0"
}
