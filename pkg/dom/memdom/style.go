package memdom

import "strings"

type prop struct {
	name  string
	value string
}

// Style is an element's inline style. Every change is reflected into the
// owner's style attribute, as in a browser.
type Style struct {
	owner *Element
	props []prop
}

// SetProperty implements dom.Style. An empty value removes the property.
func (s *Style) SetProperty(name, value string) {
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" {
		return
	}
	s.set(name, value)
	s.sync()
}

func (s *Style) set(name, value string) {
	for i := range s.props {
		if s.props[i].name == name {
			if value == "" {
				s.props = append(s.props[:i], s.props[i+1:]...)
			} else {
				s.props[i].value = value
			}
			return
		}
	}
	if value != "" {
		s.props = append(s.props, prop{name: name, value: value})
	}
}

// GetPropertyValue implements dom.Style.
func (s *Style) GetPropertyValue(name string) string {
	for _, p := range s.props {
		if p.name == name {
			return p.value
		}
	}
	return ""
}

// Len returns the number of declared properties.
func (s *Style) Len() int { return len(s.props) }

// CSSText returns the serialized declaration block.
func (s *Style) CSSText() string {
	var b strings.Builder
	for i, p := range s.props {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.name)
		b.WriteString(": ")
		b.WriteString(p.value)
		b.WriteByte(';')
	}
	return b.String()
}

// parse replaces the declarations with those in text.
func (s *Style) parse(text string) {
	s.props = nil
	for _, decl := range strings.Split(text, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s.set(name, strings.TrimSpace(value))
	}
	s.sync()
}

func (s *Style) sync() {
	if s.owner == nil {
		return
	}
	if len(s.props) == 0 {
		for i, a := range s.owner.attrs {
			if a.name == "style" {
				s.owner.attrs = append(s.owner.attrs[:i], s.owner.attrs[i+1:]...)
				break
			}
		}
		return
	}
	s.owner.setRawAttr("style", s.CSSText())
}
