// Enums live in a separate package so both the configuration and the command
// surface can use them without creating an import cycle.
package common

// Specification of requested run tree dump format.
// ENUM(text, xml)
type DumpFmt int

func (d DumpFmt) Ext() string {
	switch d {
	case DumpFmtText:
		return ".txt"
	case DumpFmtXml:
		return ".xml"
	default:
		// this should never happen
		panic("unsupported dump format requested")
	}
}
