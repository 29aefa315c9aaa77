package discuz

import (
	"golang.org/x/net/html"
)

// Host extension points. All are optional and may be re-registered at any
// time before the next top-level conversion; the muncher holds at most one
// callback per point, last registration wins. The four block classes below
// are the only open extensibility in an otherwise closed dispatch.

// Block container classes the host may claim with a custom builder.
const (
	ClassBlockCode = "blockcode"
	ClassSpoiler   = "spoiler"
	ClassLocked    = "locked"
	ClassReview    = "review"
)

// ImageURLFunc extracts an image source from an element, empty means "no
// image here".
type ImageURLFunc func(el *html.Node) string

// ImageRunFunc builds the embedded run for a resolved image URL.
type ImageRunFunc func(url string) *Run

// ActivateFunc handles hyperlink activation. It is invoked fire-and-forget
// from the host's tap handling; the muncher neither awaits nor serializes it.
type ActivateFunc func(url string)

// BlockBuilderFunc builds the run for a block container bearing a claimed
// class. Returning nil drops the block.
type BlockBuilderFunc func(el *html.Node) *Run

// RegisterImageURL replaces the image source extractor. The default reads the
// src attribute, falling back to the legacy file attribute.
func (m *Muncher) RegisterImageURL(fn ImageURLFunc) {
	m.imageURL = fn
}

// RegisterImageRun replaces the embedded image run builder. The default emits
// a plain network-image reference run.
func (m *Muncher) RegisterImageRun(fn ImageRunFunc) {
	m.imageRun = fn
}

// RegisterActivate replaces the hyperlink activation callback. The default
// does nothing.
func (m *Muncher) RegisterActivate(fn ActivateFunc) {
	m.activate = fn
}

// RegisterBlockClass claims one of the four block container classes. A nil
// builder releases the class back to generic block handling.
func (m *Muncher) RegisterBlockClass(class string, fn BlockBuilderFunc) {
	if fn == nil {
		delete(m.blockBuilders, class)
		return
	}
	m.blockBuilders[class] = fn
}

// Activate fires the registered hyperlink activation callback for a run
// carrying a link target. Hosts call this from their tap handling; any
// asynchronous work the callback starts is the host's to coordinate.
func (m *Muncher) Activate(url string) {
	if m.activate == nil || url == "" {
		return
	}
	m.activate(url)
}

func defaultImageURL(el *html.Node) string {
	if src := attrValue(el, "src"); src != "" {
		return src
	}
	return attrValue(el, "file")
}

func defaultImageRun(url string) *Run {
	return &Run{Kind: RunImage, URL: url}
}
