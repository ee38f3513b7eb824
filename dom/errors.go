package dom

import "fmt"

// DOMError represents a tree-level error with a name and message.
type DOMError struct {
	Name    string
	Message string
}

func (e *DOMError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// ErrNotFound creates a NotFoundError, reported when a handle is stale,
// removed, or was issued by a different document.
func ErrNotFound(message string) *DOMError {
	return &DOMError{Name: "NotFoundError", Message: message}
}

// ErrHierarchyRequest creates a HierarchyRequestError, reported when an
// operation would violate the tree structure: detaching the root,
// inserting a sibling of the root, or treating a non-element as an
// element.
func ErrHierarchyRequest(message string) *DOMError {
	return &DOMError{Name: "HierarchyRequestError", Message: message}
}

// ErrWrongDocument creates a WrongDocumentError.
func ErrWrongDocument(message string) *DOMError {
	return &DOMError{Name: "WrongDocumentError", Message: message}
}

// ErrSyntax creates a SyntaxError.
func ErrSyntax(message string) *DOMError {
	return &DOMError{Name: "SyntaxError", Message: message}
}
