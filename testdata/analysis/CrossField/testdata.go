package crossfield

import "time"

//ctorgen:generate
type DupArg struct {
	A int //ctor:name="x"
	B int //ctor:name="x" // want "duplicate argument name .x."
}

//ctorgen:generate
type DupNatural struct {
	count int
	N     int //ctor:name="count" // want "duplicate argument name .count."
}

//ctorgen:generate
type KeepFieldNames struct {
	ID int
	id int
}

//ctorgen:generate
type ShadowImport struct {
	At time.Time //ctor:name="time" // want "argument name .time. shadows .time. used by the constructor"
}

//ctorgen:generate
type ShadowType struct {
	X int //ctor:name="ShadowType" // want "argument name .ShadowType. shadows .ShadowType. used by the constructor"
}
