package ofxparser

import (
	"strings"

	"avasile/fintrack/internal/importerror"
)

// normalizeToXML turns an OFX document into well-formed XML. OFX 2.x files
// already are XML and pass through mostly unchanged; OFX 1.x files are SGML
// with declaration headers before the root element and leaf tags that are
// never closed. The normalizer strips the headers, closes every leaf tag
// and balances aggregate tags, so a single XPath-based extraction path can
// serve both generations of the format.
func normalizeToXML(src string) (string, error) {
	start := strings.Index(strings.ToUpper(src), "<OFX")
	if start < 0 {
		return "", &importerror.MalformedDocumentError{Reason: "no OFX element found"}
	}
	s := src[start:]

	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?>`)
	var stack []string

	i := 0
	for i < len(s) {
		lt := strings.IndexByte(s[i:], '<')
		if lt < 0 {
			break
		}
		i += lt
		gt := strings.IndexByte(s[i:], '>')
		if gt < 0 {
			return "", &importerror.MalformedDocumentError{Reason: "unterminated tag"}
		}
		rawTag := strings.TrimSpace(s[i+1 : i+gt])
		i += gt + 1

		if rawTag == "" || rawTag[0] == '?' || rawTag[0] == '!' {
			continue
		}

		if rawTag[0] == '/' {
			name := strings.ToUpper(strings.TrimSpace(rawTag[1:]))
			if !onStack(stack, name) {
				// close tag for an already-closed leaf, ignore
				continue
			}
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				b.WriteString("</" + top + ">")
				if top == name {
					break
				}
			}
			continue
		}

		// attributes are not part of OFX data; keep the element name only
		name := strings.ToUpper(strings.Fields(rawTag)[0])

		text := ""
		if next := strings.IndexByte(s[i:], '<'); next < 0 {
			text = s[i:]
			i = len(s)
		} else {
			text = s[i : i+next]
			i += next
		}
		text = strings.TrimSpace(text)

		if text != "" {
			// leaf element; emit the close tag the SGML form omits
			b.WriteString("<" + name + ">" + escapeText(text) + "</" + name + ">")
			if closing := "</" + name + ">"; strings.HasPrefix(strings.ToUpper(s[i:]), closing) {
				i += len(closing)
			}
			continue
		}

		stack = append(stack, name)
		b.WriteString("<" + name + ">")
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b.WriteString("</" + top + ">")
	}

	return b.String(), nil
}

func onStack(stack []string, name string) bool {
	for _, s := range stack {
		if s == name {
			return true
		}
	}
	return false
}

var (
	unescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
	escaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// escapeText re-escapes element text so that both raw SGML values and
// already-escaped XML values come out escaped exactly once.
func escapeText(s string) string {
	return escaper.Replace(unescaper.Replace(s))
}
