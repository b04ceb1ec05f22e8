package dom

import "fmt"

// DOMError describes a DOM failure by exception name and message. The
// Arena's mutation primitives do not return it: they report a cycle, a
// non-container parent, or a foreign reference child as plain fmt errors.
type DOMError struct {
	Name    string
	Message string
}

func (e *DOMError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}
