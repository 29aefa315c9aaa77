package discuz

import (
	"strings"
	"testing"

	"dzr/css"
)

func TestEncodeXMLShape(t *testing.T) {
	color := css.Color(0xffff0000)
	size := css.Size(24)
	tree := &Run{Kind: RunComposite, Children: []Run{
		{Kind: RunText, Text: "hello", Style: Style{Bold: true, Color: &color, Size: &size}},
		{Kind: RunBreak},
		{Kind: RunImage, URL: "https://example.com/a.png"},
	}}

	doc := EncodeXML(tree, Theme{BaseFontSize: 16, BaseColor: 0xff000000})
	out, err := doc.WriteToString()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	for _, want := range []string{
		`<runtree base-size="16" base-color="#ff000000">`,
		`bold="true"`,
		`color="#ffff0000"`,
		`size="24"`,
		`>hello</text>`,
		`<break/>`,
		`src="https://example.com/a.png"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEncodeXMLUnderlineVariants(t *testing.T) {
	solid := &Run{Kind: RunText, Text: "u", Style: Style{Underline: true}}
	dashed := &Run{Kind: RunText, Text: "a", Style: Style{Underline: true, DashedUnderline: true, LinkURL: "https://example.com"}}

	out, err := EncodeXML(solid, Theme{}).WriteToString()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(out, `underline="solid"`) {
		t.Fatalf("solid underline not encoded:\n%s", out)
	}

	out, err = EncodeXML(dashed, Theme{}).WriteToString()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(out, `underline="dashed"`) || !strings.Contains(out, `href="https://example.com"`) {
		t.Fatalf("dashed link not encoded:\n%s", out)
	}
}

func TestEncodeXMLNilTree(t *testing.T) {
	out, err := EncodeXML(nil, Theme{BaseFontSize: 16}).WriteToString()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if !strings.Contains(out, "<runtree") {
		t.Fatalf("nil tree should still produce a document root:\n%s", out)
	}
}

func TestRunDump(t *testing.T) {
	color := css.Color(0xff00ff00)
	tree := &Run{Kind: RunComposite, Children: []Run{
		{Kind: RunText, Text: "x", Style: Style{Strike: true, Color: &color}},
		{Kind: RunQuote, Children: []Run{{Kind: RunText, Text: "q"}}},
	}}

	dump := tree.String()
	for _, want := range []string{"Text[strike color=#ff00ff00]", `"x"`, "quote[1 children]", `"q"`} {
		if !strings.Contains(dump, want) {
			t.Fatalf("dump missing %q:\n%s", want, dump)
		}
	}
	if (*Run)(nil).String() != "<nil Run>" {
		t.Fatal("nil dump")
	}
}
