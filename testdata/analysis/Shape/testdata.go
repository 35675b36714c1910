package shape

//ctorgen:generate
type Empty struct{} // want "struct without fields is not supported"

//ctorgen:generate
type NotStruct int // want "only struct types are supported"

type Base struct{ X int }

//ctorgen:generate
type Alias = Base // want "only struct types are supported"
