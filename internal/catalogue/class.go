// Package catalogue holds the closed, statically-tabulated set of
// primitives and impl-primitives the runtime knows how to run. Nothing in
// here is dynamic: every variant and every piece of its metadata is fixed
// at compile time.
package catalogue

// Class is the closed set of primitive categories.
type Class int

const (
	ClassStack Class = iota
	ClassConstant
	ClassMonadicPervasive
	ClassDyadicPervasive
	ClassMonadicArray
	ClassDyadicArray
	ClassIteratingModifier
	ClassAggregatingModifier
	ClassInversionModifier
	ClassOtherModifier
	ClassPlanet
	ClassMap
	ClassLocal
	ClassMisc
	ClassSys
)

func (c Class) String() string {
	switch c {
	case ClassStack:
		return "Stack"
	case ClassConstant:
		return "Constant"
	case ClassMonadicPervasive:
		return "MonadicPervasive"
	case ClassDyadicPervasive:
		return "DyadicPervasive"
	case ClassMonadicArray:
		return "MonadicArray"
	case ClassDyadicArray:
		return "DyadicArray"
	case ClassIteratingModifier:
		return "IteratingModifier"
	case ClassAggregatingModifier:
		return "AggregatingModifier"
	case ClassInversionModifier:
		return "InversionModifier"
	case ClassOtherModifier:
		return "OtherModifier"
	case ClassPlanet:
		return "Planet"
	case ClassMap:
		return "Map"
	case ClassLocal:
		return "Local"
	case ClassMisc:
		return "Misc"
	case ClassSys:
		return "Sys"
	default:
		return "Unknown"
	}
}

// IsPervasive reports whether values of this class are lifted element-wise.
func (c Class) IsPervasive() bool {
	return c == ClassMonadicPervasive || c == ClassDyadicPervasive
}
