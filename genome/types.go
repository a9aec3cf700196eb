package genome

import "errors"

// Sentinel errors returned by encoding validation.
var (
	// ErrNegativeNode indicates a node gene whose table index is negative.
	ErrNegativeNode = errors.New("genome: node gene has negative index")

	// ErrUnknownKind indicates a gene whose Kind is outside the declared enum.
	ErrUnknownKind = errors.New("genome: unknown gene kind")
)

// Kind tags a gene with the role of the node it references, or marks it as a
// route separator. Roles are resolved once at parse time (see the instance
// package) and carried on every gene so downstream components never inspect
// identifier strings.
type Kind uint8

const (
	// KindDepot marks a depot node: routes begin and end here, and departing
	// one resets the battery to full capacity.
	KindDepot Kind = iota

	// KindCustomer marks a customer node with a demand to serve. Customers
	// never trigger charging logic.
	KindCustomer

	// KindStation marks a charging-station node that can replenish the
	// vehicle battery.
	KindStation

	// KindSeparator marks the boundary between two consecutive routes.
	// A separator gene references no node.
	KindSeparator
)

// String returns a single-letter tag, matching the conventional D/C/S naming
// of EVRP instances; separators render as "|".
func (k Kind) String() string {
	switch k {
	case KindDepot:
		return "D"
	case KindCustomer:
		return "C"
	case KindStation:
		return "S"
	case KindSeparator:
		return "|"
	default:
		return "?"
	}
}

// IsStop reports whether the kind denotes a node at which the battery can be
// replenished (depot or station). Both the fitness lookahead and the repair
// walk stop scanning at the first such node.
func (k Kind) IsStop() bool {
	return k == KindDepot || k == KindStation
}
