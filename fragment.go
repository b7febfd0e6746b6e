package inputschema

// Kind classifies what shape of value a Fragment describes.
type Kind int

const (
	KindObject Kind = iota
	KindString
	KindNumber
	KindInteger
	KindReference   // carries Ref; only seen before resolution
	KindConditional // an object fragment carrying an if/then pair
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindReference:
		return "reference"
	case KindConditional:
		return "conditional"
	default:
		return "unknown"
	}
}

// Refinement narrows a numeric kind beyond its base type check.
type Refinement int

const (
	RefineNone        Refinement = iota
	RefineNonNegative            // integer kind, value >= 0
	RefinePositive               // number kind, value > 0
)

// Fragment is one node of a compiled schema tree. Fragments are built once by
// Compile and never mutated afterwards, so a compiled schema may be shared
// across concurrent validations without locking.
type Fragment struct {
	Kind       Kind
	Properties map[string]*Fragment // object/conditional kinds
	Required   []string             // sorted at compile time
	Enum       []any                // allowed scalar values; a single entry doubles as const
	Refine     Refinement
	Ref        string         // pointer target; set iff Kind == KindReference
	Cond       *Conditional   // set iff Kind == KindConditional
	Groups     []ExclusiveGroup
}

// Conditional selects extra constraints when the instance's discriminator
// field holds the expected value. A matching branch is merged into the base
// fragment, never substituted for it: base required plus branch required,
// base properties overridden per key by branch properties.
type Conditional struct {
	Field  string // discriminator field name, "module" in the shipped schema
	Value  string // expected scalar
	Branch *Fragment
}

// ExclusiveGroup demands that exactly one of its alternative field-presence
// sets is satisfied. Message, when authored in the schema, is emitted verbatim
// on violation; alternatives must not overlap in field names (checked at
// compile time).
type ExclusiveGroup struct {
	Alternatives [][]string
	Message      string
}
