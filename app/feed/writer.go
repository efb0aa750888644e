package feed

import (
	"bytes"
	"encoding/xml"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// writeElement writes an indented XML element, escaping the content at
// write time. Used for generated values (links, dates, identifiers)
// and channel metadata. Empty content suppresses the element.
func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

// writeRawElement writes an indented XML element verbatim. Used for
// item text the Adapter escaped already; escaping here again would
// corrupt entities. Empty content suppresses the element.
func writeRawElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	buf.WriteString(content)
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
