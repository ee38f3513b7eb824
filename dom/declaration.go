package dom

import "strings"

// Declaration holds the fields of an XML declaration. Empty fields are
// unset and omitted from serialization. The serializer emits the fields
// that are present in the order version, encoding, standalone.
type Declaration struct {
	Version    string
	Encoding   string
	Standalone string
}

// String renders the declaration, e.g. `<?xml version="1.0" encoding="utf-8" ?>`.
func (decl *Declaration) String() string {
	var sb strings.Builder
	sb.WriteString("<?xml")
	if decl.Version != "" {
		sb.WriteString(` version="`)
		sb.WriteString(decl.Version)
		sb.WriteString(`"`)
	}
	if decl.Encoding != "" {
		sb.WriteString(` encoding="`)
		sb.WriteString(decl.Encoding)
		sb.WriteString(`"`)
	}
	if decl.Standalone != "" {
		sb.WriteString(` standalone="`)
		sb.WriteString(decl.Standalone)
		sb.WriteString(`"`)
	}
	sb.WriteString(" ?>")
	return sb.String()
}
