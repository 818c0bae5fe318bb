package givxml

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
)

// Element names.
const (
	elemFrame      = "frame"
	elemPanelGroup = "panel-group"
	elemTrack      = "track"
	elemGroup      = "group"
	elemGlyph      = "glyph"
)

// DTD documents the accepted structure. Extent is checked separately so a
// missing extent reports MISSING_EXTENT rather than a schema violation.
const DTD = `<!ELEMENT frame (panel-group*)>
<!ATTLIST frame
  extent   CDATA #IMPLIED
  scale    CDATA #IMPLIED
  panelGap CDATA #IMPLIED>
<!ELEMENT panel-group (track*)>
<!ATTLIST panel-group
  label    CDATA #IMPLIED
  trackGap CDATA #IMPLIED>
<!ELEMENT track (glyph | group)*>
<!ATTLIST track
  label    CDATA #IMPLIED
  buoyancy CDATA #IMPLIED
  hgap     CDATA #IMPLIED
  vgap     CDATA #IMPLIED>
<!ELEMENT group (glyph | group)*>
<!ATTLIST group
  label    CDATA #IMPLIED
  buoyancy CDATA #IMPLIED
  color    CDATA #IMPLIED
  hgap     CDATA #IMPLIED
  vgap     CDATA #IMPLIED>
<!ELEMENT glyph EMPTY>
<!ATTLIST glyph
  label         CDATA #IMPLIED
  start         CDATA #REQUIRED
  stop          CDATA #REQUIRED
  barHeight     CDATA #IMPLIED
  barBorder     CDATA #IMPLIED
  barColor      CDATA #IMPLIED
  labelPosition CDATA #IMPLIED
  labelSize     CDATA #IMPLIED
  labelColor    CDATA #IMPLIED>
`

type rule struct {
	attrs    []string
	required []string
	children []string
}

var schema = map[string]rule{
	elemFrame: {
		attrs:    []string{"extent", "scale", "panelGap"},
		children: []string{elemPanelGroup},
	},
	elemPanelGroup: {
		attrs:    []string{"label", "trackGap"},
		children: []string{elemTrack},
	},
	elemTrack: {
		attrs:    []string{"label", "buoyancy", "hgap", "vgap"},
		children: []string{elemGlyph, elemGroup},
	},
	elemGroup: {
		attrs:    []string{"label", "buoyancy", "color", "hgap", "vgap"},
		children: []string{elemGlyph, elemGroup},
	},
	elemGlyph: {
		attrs: []string{"label", "start", "stop", "barHeight", "barBorder", "barColor",
			"labelPosition", "labelSize", "labelColor"},
		required: []string{"start", "stop"},
	},
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// rootElement validates the whole document and returns its frame element.
func rootElement(doc *xmlquery.Node) (*xmlquery.Node, error) {
	var root *xmlquery.Node
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		switch n.Type {
		case xmlquery.ElementNode:
			if root != nil {
				return nil, violation("", "document has more than one root element")
			}
			root = n
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(n.Data) != "" {
				return nil, violation("", "text outside the root element")
			}
		}
	}
	if root == nil {
		return nil, violation("", "document has no root element")
	}
	if root.Data != elemFrame {
		return nil, violation(root.Data, "root element must be <%s>", elemFrame)
	}
	return root, checkElement(root, elemFrame)
}

func checkElement(n *xmlquery.Node, path string) error {
	r := schema[n.Data]

	for _, a := range n.Attr {
		// Namespace declarations and prefixed attributes are not ours to check.
		if a.Name.Space != "" || a.Name.Local == "xmlns" {
			continue
		}
		if !contains(r.attrs, a.Name.Local) {
			return violation(path, "attribute %q is not allowed on <%s>", a.Name.Local, n.Data)
		}
	}
	for _, req := range r.required {
		if _, ok := attr(n, req); !ok {
			return violation(path, "<%s> requires attribute %q", n.Data, req)
		}
	}

	counts := map[string]int{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			if !contains(r.children, c.Data) {
				if _, known := schema[c.Data]; !known {
					return violation(path, "unknown element <%s>", c.Data)
				}
				return violation(path, "<%s> is not allowed inside <%s>", c.Data, n.Data)
			}
			counts[c.Data]++
			if err := checkElement(c, childPath(path, c.Data, counts[c.Data])); err != nil {
				return err
			}
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(c.Data) != "" {
				return violation(path, "<%s> cannot contain text", n.Data)
			}
		}
	}
	return nil
}

func childPath(parent, name string, index int) string {
	return fmt.Sprintf("%s/%s[%d]", parent, name, index)
}

func violation(path, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if path != "" {
		msg = path + ": " + msg
	}
	return errors.New(errors.ErrCodeSchemaViolation, "%s", msg)
}

// attr returns the value of the named attribute and whether it is present.
func attr(n *xmlquery.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
