package exactnames

type Label string

// Arguments keep the field names, so Label shadows its own type.
//
//ctorgen:generate
type Tagged struct {
	Label Label // want "argument name .Label. shadows .Label. used by the constructor"
	Count int
}

//ctorgen:generate
type Plain struct {
	Name string
	ID   int
}
