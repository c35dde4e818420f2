package domain

import "fmt"

// Operation is one of the fixed field mutations an artwork update can carry.
type Operation int

const (
	OpSet Operation = iota + 1
	OpPush
	OpPop
	OpClear
)

var operationNames = map[Operation]string{
	OpSet:   "set",
	OpPush:  "push",
	OpPop:   "pop",
	OpClear: "clear",
}

func ParseOperation(s string) (Operation, error) {
	for op, name := range operationNames {
		if name == s {
			return op, nil
		}
	}
	return 0, Invalid(fmt.Sprintf("Unknown update type %q.", s))
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// FieldKind describes what a stored artwork attribute can hold.
type FieldKind int

const (
	KindImmutable FieldKind = iota
	KindScalar
	KindSequence
	KindSet
)

func (k FieldKind) isContainer() bool {
	return k == KindSequence || k == KindSet
}

var artworkFields = map[string]FieldKind{
	"id":      KindImmutable,
	"title":   KindScalar,
	"creator": KindScalar,
	"tags":    KindSet,
	"links":   KindSequence,
}

type operationRule struct {
	needsValue bool
	kinds      map[FieldKind]bool
}

var operationRules = map[Operation]operationRule{
	OpSet:   {needsValue: true, kinds: map[FieldKind]bool{KindScalar: true, KindSequence: true, KindSet: true}},
	OpPush:  {needsValue: true, kinds: map[FieldKind]bool{KindSequence: true, KindSet: true}},
	OpPop:   {needsValue: false, kinds: map[FieldKind]bool{KindSequence: true, KindSet: true}},
	OpClear: {needsValue: false, kinds: map[FieldKind]bool{KindScalar: true, KindSequence: true, KindSet: true}},
}

// Update is a validated mutation of a single artwork field.
type Update struct {
	Key   string
	Op    Operation
	Kind  FieldKind
	Value string
}

// NewArtworkUpdate checks a caller supplied (key, type, value) triple against
// the artwork schema. A nil value means the parameter was absent.
func NewArtworkUpdate(key, opType string, value *string) (Update, error) {
	if key == "" || opType == "" {
		return Update{}, Invalid("Both key and type are required.")
	}
	op, err := ParseOperation(opType)
	if err != nil {
		return Update{}, err
	}
	kind, ok := artworkFields[key]
	if !ok {
		return Update{}, Invalid(fmt.Sprintf("Unknown artwork field %q.", key))
	}
	if kind == KindImmutable {
		return Update{}, Invalid(fmt.Sprintf("Field %q cannot be modified.", key))
	}
	rule := operationRules[op]
	if !rule.kinds[kind] {
		return Update{}, Invalid(fmt.Sprintf("Operation %s cannot be applied to field %q.", op, key))
	}
	u := Update{Key: key, Op: op, Kind: kind}
	if rule.needsValue {
		if value == nil {
			return Update{}, Invalid(fmt.Sprintf("Operation %s requires a value.", op))
		}
		u.Value = *value
		if op == OpPush && u.Value == "" {
			return Update{}, Invalid("Cannot push an empty value.")
		}
	}
	return u, nil
}

// Values is the sequence written by a set on a container field.
func (u Update) Values() []string {
	values := SplitList(u.Value)
	if u.Kind == KindSet {
		values = Dedupe(values)
	}
	return values
}

// ClearsToEmpty reports whether clear keeps the field as an empty sequence
// instead of removing it. Tags and links must always be present.
func (u Update) ClearsToEmpty() bool {
	return u.Op == OpClear && u.Kind.isContainer()
}

var applyFuncs = map[Operation]func(a *Artwork, u Update){
	OpSet: func(a *Artwork, u Update) {
		switch u.Key {
		case "title":
			a.Title = u.Value
		case "creator":
			a.Creator = u.Value
		case "tags":
			a.Tags = u.Values()
		case "links":
			a.Links = u.Values()
		}
	},
	OpPush: func(a *Artwork, u Update) {
		switch u.Key {
		case "tags":
			if !a.HasTag(u.Value) {
				a.Tags = append(a.Tags, u.Value)
			}
		case "links":
			a.Links = append(a.Links, u.Value)
		}
	},
	OpPop: func(a *Artwork, u Update) {
		switch u.Key {
		case "tags":
			if len(a.Tags) > 0 {
				a.Tags = a.Tags[:len(a.Tags)-1]
			}
		case "links":
			if len(a.Links) > 0 {
				a.Links = a.Links[:len(a.Links)-1]
			}
		}
	},
	OpClear: func(a *Artwork, u Update) {
		switch u.Key {
		case "title":
			a.Title = ""
		case "creator":
			a.Creator = ""
		case "tags":
			a.Tags = make([]string, 0)
		case "links":
			a.Links = make([]string, 0)
		}
	},
}

// Apply mutates a in place. Stores that cannot express the update natively
// use it to stay consistent with the document store semantics.
func (u Update) Apply(a *Artwork) {
	if fn, ok := applyFuncs[u.Op]; ok {
		fn(a, u)
	}
}
