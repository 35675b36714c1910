package valid

import "time"

type Label string

//ctorgen:generate
type User struct {
	Name    string
	Label   Label //ctor:name="label"
	Tags    []string //ctor:default
	Created time.Time //ctor:value="time.Now()"
}

//ctorgen:generate MakePair
type Pair struct {
	Label //ctor:name="x"
	int   //ctor:name="y"
}

//ctorgen:generate
type Box[T any] struct {
	Value T
	Spare T //ctor:default
}
