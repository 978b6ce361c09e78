package taxlots

import "fmt"

// Method defines the lot selection method used to allocate a disposal
// against open lots.
type Method int

const (
	// FIFO consumes lots in ascending acquisition date order.
	FIFO Method = iota
	// LIFO consumes lots in descending acquisition date order.
	LIFO
	// HIFO consumes the highest cost-per-unit lots first, minimizing the
	// realized gain (or maximizing the loss).
	HIFO
	// LOFO consumes the lowest cost-per-unit lots first.
	LOFO
	// Specific consumes lots in a caller-supplied order, as given, with no
	// re-sort.
	Specific
)

func (m Method) String() string {
	switch m {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case HIFO:
		return "hifo"
	case LOFO:
		return "lofo"
	case Specific:
		return "specific"
	default:
		return "unknown"
	}
}

// ParseMethod parses a string into a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	case "hifo":
		return HIFO, nil
	case "lofo":
		return LOFO, nil
	case "specific":
		return Specific, nil
	default:
		return 0, fmt.Errorf("unknown lot selection method: %q", s)
	}
}
