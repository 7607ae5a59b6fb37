package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// Content sectioning elements

func Header(attrs Attrs, children ...any) *Element  { return H("header", attrs, children...) }
func Footer(attrs Attrs, children ...any) *Element  { return H("footer", attrs, children...) }
func Main(attrs Attrs, children ...any) *Element    { return H("main", attrs, children...) }
func Nav(attrs Attrs, children ...any) *Element     { return H("nav", attrs, children...) }
func Section(attrs Attrs, children ...any) *Element { return H("section", attrs, children...) }
func Article(attrs Attrs, children ...any) *Element { return H("article", attrs, children...) }
func Aside(attrs Attrs, children ...any) *Element   { return H("aside", attrs, children...) }
func H1(attrs Attrs, children ...any) *Element      { return H("h1", attrs, children...) }
func H2(attrs Attrs, children ...any) *Element      { return H("h2", attrs, children...) }
func H3(attrs Attrs, children ...any) *Element      { return H("h3", attrs, children...) }
func H4(attrs Attrs, children ...any) *Element      { return H("h4", attrs, children...) }
func H5(attrs Attrs, children ...any) *Element      { return H("h5", attrs, children...) }
func H6(attrs Attrs, children ...any) *Element      { return H("h6", attrs, children...) }

// Text content elements

func Div(attrs Attrs, children ...any) *Element        { return H("div", attrs, children...) }
func P(attrs Attrs, children ...any) *Element          { return H("p", attrs, children...) }
func Span(attrs Attrs, children ...any) *Element       { return H("span", attrs, children...) }
func Pre(attrs Attrs, children ...any) *Element        { return H("pre", attrs, children...) }
func Blockquote(attrs Attrs, children ...any) *Element { return H("blockquote", attrs, children...) }
func Ul(attrs Attrs, children ...any) *Element         { return H("ul", attrs, children...) }
func Ol(attrs Attrs, children ...any) *Element         { return H("ol", attrs, children...) }
func Li(attrs Attrs, children ...any) *Element         { return H("li", attrs, children...) }
func Hr(attrs Attrs) *Element                          { return H("hr", attrs) }

// Inline text semantics

func A(attrs Attrs, children ...any) *Element      { return H("a", attrs, children...) }
func Strong(attrs Attrs, children ...any) *Element { return H("strong", attrs, children...) }
func Em(attrs Attrs, children ...any) *Element     { return H("em", attrs, children...) }
func Small(attrs Attrs, children ...any) *Element  { return H("small", attrs, children...) }
func Code(attrs Attrs, children ...any) *Element   { return H("code", attrs, children...) }
func Br(attrs Attrs) *Element                      { return H("br", attrs) }

// Form elements

func Form(attrs Attrs, children ...any) *Element     { return H("form", attrs, children...) }
func Input(attrs Attrs) *Element                     { return H("input", attrs) }
func Textarea(attrs Attrs, children ...any) *Element { return H("textarea", attrs, children...) }
func Select(attrs Attrs, children ...any) *Element   { return H("select", attrs, children...) }
func Option(attrs Attrs, children ...any) *Element   { return H("option", attrs, children...) }
func Button(attrs Attrs, children ...any) *Element   { return H("button", attrs, children...) }
func Label(attrs Attrs, children ...any) *Element    { return H("label", attrs, children...) }
func Fieldset(attrs Attrs, children ...any) *Element { return H("fieldset", attrs, children...) }

// Table elements

func Table(attrs Attrs, children ...any) *Element { return H("table", attrs, children...) }
func Thead(attrs Attrs, children ...any) *Element { return H("thead", attrs, children...) }
func Tbody(attrs Attrs, children ...any) *Element { return H("tbody", attrs, children...) }
func Tr(attrs Attrs, children ...any) *Element    { return H("tr", attrs, children...) }
func Th(attrs Attrs, children ...any) *Element    { return H("th", attrs, children...) }
func Td(attrs Attrs, children ...any) *Element    { return H("td", attrs, children...) }

// Media elements

func Img(attrs Attrs) *Element { return H("img", attrs) }
