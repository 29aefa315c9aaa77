package discuz

import (
	"maps"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"dzr/css"
)

// Heading levels carry fixed decreasing size presets; code content gets a
// small preset. Sizes follow the legacy size ladder in css.ParseSize.
var headingSizes = map[string]css.Size{
	"h1": 32,
	"h2": 24,
	"h3": 18,
	"h4": 16,
}

const codeFontSize css.Size = 13

// Definition lists whose id carries this prefix are forum rate logs - noise
// blocks that are dropped wholesale.
const rateLogPrefix = "ratelog"

type handlerFunc func(st *MunchState, el *html.Node, decls css.Declarations) *Run

// Muncher converts a parsed forum HTML fragment into a run tree. It walks the
// DOM depth-first carrying a MunchState, resolves per-tag semantics through a
// closed dispatch table and degrades gracefully on anything it does not
// understand - a conversion always completes and returns a tree.
//
// A Muncher is single-threaded and non-reentrant: one Munch call owns its
// state for the whole walk. Hosts converting several fragments concurrently
// must use one Muncher per conversion.
type Muncher struct {
	log *zap.Logger
	css *css.Parser

	imageURL      ImageURLFunc
	imageRun      ImageRunFunc
	activate      ActivateFunc
	blockBuilders map[string]BlockBuilderFunc

	handlers map[string]handlerFunc
	// blocks is the per-conversion snapshot of registered class builders;
	// re-registration only affects the next top-level conversion.
	blocks map[string]BlockBuilderFunc
}

// NewMuncher creates a converter with default extension points.
func NewMuncher(log *zap.Logger) *Muncher {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Muncher{
		log:           log.Named("muncher"),
		css:           css.NewParser(log),
		imageURL:      defaultImageURL,
		imageRun:      defaultImageRun,
		blockBuilders: make(map[string]BlockBuilderFunc),
	}
	m.handlers = map[string]handlerFunc{
		"img":        m.munchImage,
		"br":         m.munchLineBreak,
		"font":       m.munchFont,
		"b":          m.munchBold,
		"u":          m.munchUnderline,
		"s":          m.munchStrike,
		"strike":     m.munchStrike,
		"del":        m.munchStrike,
		"p":          m.munchParagraph,
		"span":       m.munchSpan,
		"blockquote": m.munchQuote,
		"div":        m.munchDiv,
		"a":          m.munchAnchor,
		"tr":         m.munchTableRow,
		"td":         m.munchTableCell,
		"th":         m.munchTableCell,
		"h1":         m.munchHeading,
		"h2":         m.munchHeading,
		"h3":         m.munchHeading,
		"h4":         m.munchHeading,
		"li":         m.munchListItem,
		"code":       m.munchCode,
		"dl":         m.munchDefinitionList,
		"strong":     m.munchStrong,
		// Transparent tags: their own semantics are ignored, children are
		// processed in place.
		"table":        m.munchTransparent,
		"tbody":        m.munchTransparent,
		"ul":           m.munchTransparent,
		"dd":           m.munchTransparent,
		"ignore_js_op": m.munchTransparent,
		"pre":          m.munchTransparent,
	}
	return m
}

// Munch converts the fragment rooted at root into a run tree. The DOM is read
// only; the returned tree is immutable. A nil root yields an empty run.
func (m *Muncher) Munch(root *html.Node) *Run {
	if root == nil {
		return emptyRun()
	}
	m.blocks = make(map[string]BlockBuilderFunc, len(m.blockBuilders))
	maps.Copy(m.blocks, m.blockBuilders)

	st := newMunchState()
	return m.munchChildren(st, root)
}

// munchChildren walks the element's ordered children, discards children that
// produced no visible content and combines the rest.
func (m *Muncher) munchChildren(st *MunchState, el *html.Node) *Run {
	var runs []Run
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if r := m.munchNode(st, c); r != nil {
			runs = append(runs, *r)
		}
	}
	return combine(runs)
}

// munchNode converts a single node. A nil result means the node contributes
// nothing to its parent.
func (m *Muncher) munchNode(st *MunchState, n *html.Node) *Run {
	switch n.Type {
	case html.TextNode:
		return m.munchText(st, n.Data)
	case html.ElementNode:
		decls := m.css.Inline(attrValue(n, "style"))
		if decls.DisplayNone() {
			m.log.Debug("Dropping hidden element", zap.String("tag", n.Data))
			return nil
		}
		handler, ok := m.handlers[n.Data]
		if !ok {
			// Unknown markup renders as nothing rather than as garbled text.
			m.log.Debug("Dropping unknown tag", zap.String("tag", n.Data))
			return nil
		}
		return handler(st, n, decls)
	default:
		// comments, doctype and friends
		return nil
	}
}

func (m *Muncher) munchText(st *MunchState, raw string) *Run {
	var text string
	if st.trimAll {
		text = strings.TrimSpace(raw)
	} else {
		text = strings.TrimLeftFunc(raw, unicode.IsSpace)
	}

	if text == "" {
		// Whitespace-only nodes collapse into at most one forced break.
		if st.trimAll || st.inRepeatWrapLine {
			return nil
		}
		st.inRepeatWrapLine = true
		return &Run{Kind: RunBreak}
	}

	st.inRepeatWrapLine = false
	if st.inDiv {
		// Block content always starts its own line.
		text += "\n"
	}
	return &Run{Kind: RunText, Text: text, Style: st.style()}
}

func (m *Muncher) munchImage(_ *MunchState, el *html.Node, _ css.Declarations) *Run {
	url := m.imageURL(el)
	if url == "" {
		m.log.Debug("Image without resolvable URL, dropping")
		return nil
	}
	return m.imageRun(url)
}

func (m *Muncher) munchLineBreak(_ *MunchState, _ *html.Node, _ css.Declarations) *Run {
	return &Run{Kind: RunBreak}
}

// munchFont suspends the block context so font spans never force block breaks
// of their own, then applies any declared color/size for the subtree.
func (m *Muncher) munchFont(st *MunchState, el *html.Node, decls css.Declarations) *Run {
	prevDiv := st.inDiv
	st.inDiv = false
	defer func() { st.inDiv = prevDiv }()

	if c, ok := css.ResolveColor(attrValue(el, "color"), decls.Get("color")); ok {
		st.PushColor(c)
		defer st.PopColor()
	}
	if s, ok := css.ResolveFontSize(attrValue(el, "size"), decls.Get("font-size")); ok {
		st.PushFontSize(s)
		defer st.PopFontSize()
	}

	return withTrailingBreak(m.munchChildren(st, el))
}

func (m *Muncher) munchBold(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	prev := st.bold
	st.bold = true
	defer func() { st.bold = prev }()
	return m.munchChildren(st, el)
}

func (m *Muncher) munchUnderline(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	prev := st.underline
	st.underline = true
	defer func() { st.underline = prev }()
	return m.munchChildren(st, el)
}

func (m *Muncher) munchStrike(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	prev := st.lineThrough
	st.lineThrough = true
	defer func() { st.lineThrough = prev }()
	return m.munchChildren(st, el)
}

func (m *Muncher) munchParagraph(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	prevDiv := st.inDiv
	st.inDiv = false
	defer func() { st.inDiv = prevDiv }()

	algn := ParseAlign(attrValue(el, "align"))
	if algn == "" {
		return m.munchChildren(st, el)
	}

	st.align = algn
	r := m.munchChildren(st, el)
	st.align = ""
	return &Run{Kind: RunAlign, Align: algn, Children: []Run{*r}}
}

func (m *Muncher) munchSpan(st *MunchState, el *html.Node, decls css.Declarations) *Run {
	if c, ok := css.ResolveColor("", decls.Get("color")); ok {
		st.PushColor(c)
		defer st.PopColor()
	}
	if s, ok := css.ResolveFontSize("", decls.Get("font-size")); ok {
		st.PushFontSize(s)
		defer st.PopFontSize()
	}
	return withTrailingBreak(m.munchChildren(st, el))
}

// munchQuote isolates the quoted subtree behind a checkpoint: formatting
// mutated inside the quote (typically by unbalanced legacy markup) must not
// leak into the siblings that follow it, and vice versa.
func (m *Muncher) munchQuote(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	st.Save()
	r := m.munchChildren(st, el)
	st.Restore()
	return withTrailingBreak(&Run{Kind: RunQuote, Children: []Run{*r}})
}

func (m *Muncher) munchDiv(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	handler := func() *Run { return m.munchChildren(st, el) }
	for _, class := range classList(el) {
		if builder, ok := m.blocks[class]; ok {
			handler = func() *Run { return builder(el) }
			break
		}
	}

	if !st.inDiv {
		st.inDiv = true
		defer func() { st.inDiv = false }()
	}
	return handler()
}

// munchAnchor restores tapURL to its prior value rather than clearing it;
// anchors do not nest in this grammar but the discipline must hold anyway.
func (m *Muncher) munchAnchor(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	href, ok := attrLookup(el, "href")
	if !ok {
		return m.munchChildren(st, el)
	}

	prev := st.tapURL
	st.tapURL = href
	defer func() { st.tapURL = prev }()
	return m.munchChildren(st, el)
}

func (m *Muncher) munchTableRow(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	prev := st.trimAll
	st.trimAll = true
	defer func() { st.trimAll = prev }()
	return withTrailingBreak(m.munchChildren(st, el))
}

// munchTableCell renders cells inline, separated by spaces - rows flatten to
// space-joined text lines, not a true grid.
func (m *Muncher) munchTableCell(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	prev := st.trimAll
	st.trimAll = true
	defer func() { st.trimAll = prev }()
	r := m.munchChildren(st, el)
	return &Run{Kind: RunComposite, Children: []Run{*r, {Kind: RunSpace}}}
}

func (m *Muncher) munchHeading(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	st.PushFontSize(headingSizes[el.Data])
	defer st.PopFontSize()
	r := m.munchChildren(st, el)
	return &Run{Kind: RunComposite, Children: []Run{{Kind: RunBreak}, *r, {Kind: RunBreak}}}
}

func (m *Muncher) munchListItem(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	r := m.munchChildren(st, el)
	return &Run{Kind: RunComposite, Children: []Run{{Kind: RunBullet}, {Kind: RunSpace}, *r}}
}

func (m *Muncher) munchCode(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	st.PushFontSize(codeFontSize)
	defer st.PopFontSize()
	return &Run{Kind: RunCard, Children: []Run{*m.munchChildren(st, el)}}
}

func (m *Muncher) munchDefinitionList(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	if strings.HasPrefix(attrValue(el, "id"), rateLogPrefix) {
		m.log.Debug("Dropping rate log block", zap.String("id", attrValue(el, "id")))
		return nil
	}
	return m.munchChildren(st, el)
}

func (m *Muncher) munchStrong(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	return withTrailingBreak(m.munchChildren(st, el))
}

func (m *Muncher) munchTransparent(st *MunchState, el *html.Node, _ css.Declarations) *Run {
	return m.munchChildren(st, el)
}

func attrLookup(el *html.Node, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func attrValue(el *html.Node, name string) string {
	v, _ := attrLookup(el, name)
	return v
}

func classList(el *html.Node) []string {
	return strings.Fields(attrValue(el, "class"))
}
