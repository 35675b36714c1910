package options

type Label string

//ctorgen:generate
type Unnamed struct {
	Label // want "unnamed members must specify .name."
}

//ctorgen:generate
type Unsupported struct {
	X int //ctor:nmae="x" // want "unsupported option .nmae."
}

//ctorgen:generate
type BareName struct {
	X int //ctor:name // want "unsupported option .name."
}

//ctorgen:generate
type NotString struct {
	X int //ctor:name=x // want "option .name. must be a string literal"
}

//ctorgen:generate
type DefaultValue struct {
	X int //ctor:default=true // want "option .default. does not take a value"
}

//ctorgen:generate
type Duplicate struct {
	X int //ctor:default,default // want "duplicate option .default."
}

//ctorgen:generate
type Conflict struct {
	X int //ctor:default,name="x" // want ".default. cannot be combined with .name."
}

//ctorgen:generate
type BadName struct {
	X int //ctor:name="1x" // want "name value \"1x\" is not a valid identifier"
}

//ctorgen:generate
type Blank struct {
	X int
	_ int //ctor:default // want "blank fields cannot take options"
}

type Count int

//ctorgen:generate
type PartlyNamed struct {
	Label //ctor:name="x"
	Count // want "unnamed members must specify .name."
}
