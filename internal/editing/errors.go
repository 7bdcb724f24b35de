package editing

import "fmt"

// IndexError reports an out-of-range position in one of a resume's collections.
type IndexError struct {
	Collection string
	Index      int
	Len        int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range (length %d)", e.Collection, e.Index, e.Len)
}

// FieldError reports an unknown field name for an editable section.
type FieldError struct {
	Section string
	Field   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("unknown %s field %q", e.Section, e.Field)
}

func checkIndex(collection string, index, length int) error {
	if index < 0 || index >= length {
		return &IndexError{Collection: collection, Index: index, Len: length}
	}
	return nil
}
