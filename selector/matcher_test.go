package selector

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"xmltree/dom"
)

func mustParse(t *testing.T, src string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return doc
}

// tagNames resolves handles to their tag names for readable comparisons.
func tagNames(t *testing.T, doc *dom.Document, handles []dom.NodeHandle) []string {
	t.Helper()
	names := make([]string, 0, len(handles))
	for _, h := range handles {
		name, err := doc.Name(h)
		if err != nil {
			t.Fatalf("Name error = %v", err)
		}
		names = append(names, name)
	}
	return names
}

func TestQueryAllDocumentOrder(t *testing.T) {
	doc := mustParse(t, `<library>
		<shelf><book id="a" /><book id="b" /></shelf>
		<shelf><book id="c" /></shelf>
	</library>`)

	matches := QueryAll(doc, doc.Root(), MustCompile("book"))
	var ids []string
	for _, h := range matches {
		id, _ := doc.Attribute(h, "id")
		ids = append(ids, id)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Errorf("QueryAll order mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryAllChildrenInOrder(t *testing.T) {
	doc := dom.New("parent")
	doc.AppendChild(doc.Root(), dom.Element("one"))
	doc.AppendChild(doc.Root(), dom.Element("two"))
	doc.AppendChild(doc.Root(), dom.Element("three"))

	matches := QueryAll(doc, doc.Root(), MustCompile("parent > *"))
	got := tagNames(t, doc, matches)
	if diff := cmp.Diff([]string{"one", "two", "three"}, got); diff != "" {
		t.Errorf("child order mismatch (-want +got):\n%s", diff)
	}
}

func TestChildVsDescendant(t *testing.T) {
	doc := mustParse(t, `<root><potato><wow easy="true" /></potato></root>`)

	if _, ok := QueryFirst(doc, doc.Root(), MustCompile("root > potato")); !ok {
		t.Error(`"root > potato" should match the direct child`)
	}
	if _, ok := QueryFirst(doc, doc.Root(), MustCompile("root > wow")); ok {
		t.Error(`"root > wow" should not match a grandchild`)
	}
	if _, ok := QueryFirst(doc, doc.Root(), MustCompile("root wow")); !ok {
		t.Error(`"root wow" should match a grandchild`)
	}
}

func TestUnionNoDuplicates(t *testing.T) {
	doc := mustParse(t, "<root><a /><a /></root>")

	matches := QueryAll(doc, doc.Root(), MustCompile("a, a"))
	if len(matches) != 2 {
		t.Errorf(`QueryAll("a, a") returned %d matches, want 2`, len(matches))
	}
	seen := make(map[dom.NodeHandle]bool)
	for _, h := range matches {
		if seen[h] {
			t.Error("duplicate handle in union result")
		}
		seen[h] = true
	}
}

func TestClassIdAttributeTests(t *testing.T) {
	doc := mustParse(t, `<root>
		<item class="red big" id="first" type="fruit" />
		<item class="red" type="veg" />
		<item class="redish" />
	</root>`)

	tests := []struct {
		selector string
		want     int
	}{
		{".red", 2},
		{".red.big", 1},
		{"#first", 1},
		{"item.red", 2},
		{"[type]", 2},
		{"[type=fruit]", 1},
		{`[type="veg"]`, 1},
		{".redish", 1},
		{"*", 4},
		{"item[type=fruit].big#first", 1},
		{"missing", 0},
	}
	for _, tt := range tests {
		got := len(QueryAll(doc, doc.Root(), MustCompile(tt.selector)))
		if got != tt.want {
			t.Errorf("QueryAll(%q) = %d matches, want %d", tt.selector, got, tt.want)
		}
	}
}

func TestClassMatchesWholeWordsOnly(t *testing.T) {
	doc := mustParse(t, `<root><a class="redish" /></root>`)
	if _, ok := QueryFirst(doc, doc.Root(), MustCompile(".red")); ok {
		t.Error(`".red" must not match class "redish"`)
	}
}

func TestQueryScope(t *testing.T) {
	doc := mustParse(t, "<root><left><leaf /></left><right><leaf /></right></root>")
	children, _ := doc.Children(doc.Root())
	left := children[0]

	matches := QueryAll(doc, left, MustCompile("leaf"))
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match under left subtree, got %d", len(matches))
	}
	// The scope element itself is a candidate.
	if _, ok := QueryFirst(doc, left, MustCompile("left")); !ok {
		t.Error("scope element should match at or below itself")
	}
	// Ancestor context above the scope still satisfies combinators.
	if _, ok := QueryFirst(doc, left, MustCompile("root leaf")); !ok {
		t.Error("ancestors above the scope should satisfy descendant combinators")
	}
}

func TestDetachRemovesSubtreeFromQueries(t *testing.T) {
	doc := mustParse(t, "<root><branch><twig /></branch><other /></root>")
	branch, ok := QueryFirst(doc, doc.Root(), MustCompile("branch"))
	if !ok {
		t.Fatal("branch not found")
	}
	if err := doc.Detach(branch); err != nil {
		t.Fatalf("Detach error = %v", err)
	}

	if matches := QueryAll(doc, doc.Root(), MustCompile("branch, twig")); len(matches) != 0 {
		t.Errorf("detached subtree still matches: %d results", len(matches))
	}
	got := tagNames(t, doc, QueryAll(doc, doc.Root(), MustCompile("*")))
	if diff := cmp.Diff([]string{"root", "other"}, got); diff != "" {
		t.Errorf("remaining elements mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryFirstReturnsFirstInDocumentOrder(t *testing.T) {
	doc := mustParse(t, `<root><a n="1" /><b><a n="2" /></b></root>`)
	h, ok := QueryFirst(doc, doc.Root(), MustCompile("a"))
	if !ok {
		t.Fatal("expected a match")
	}
	if n, _ := doc.Attribute(h, "n"); n != "1" {
		t.Errorf("QueryFirst returned a with n=%q, want 1", n)
	}
}

func TestTextAndCommentsNeverMatch(t *testing.T) {
	doc := mustParse(t, "<root>text<!-- comment --><el /></root>")
	got := tagNames(t, doc, QueryAll(doc, doc.Root(), MustCompile("*")))
	if diff := cmp.Diff([]string{"root", "el"}, got); diff != "" {
		t.Errorf("element matches mismatch (-want +got):\n%s", diff)
	}

	// Character data between elements does not break the child combinator.
	if _, ok := QueryFirst(doc, doc.Root(), MustCompile("root > el")); !ok {
		t.Error("text siblings must not affect the child combinator")
	}
}

func TestMatchesNonElementHandle(t *testing.T) {
	doc := dom.New("root")
	text, _ := doc.AppendChild(doc.Root(), dom.Text("hi"))
	if MustCompile("*").Matches(doc, text) {
		t.Error("a text node must never match")
	}
	var zero dom.NodeHandle
	if MustCompile("*").Matches(doc, zero) {
		t.Error("the zero handle must never match")
	}
}

func TestCanonicalScenario(t *testing.T) {
	doc := mustParse(t, "<root><potato /></root>")

	potato, ok := QueryFirst(doc, doc.Root(), MustCompile("potato"))
	if !ok {
		t.Fatal(`query_first("potato") failed`)
	}
	if _, err := doc.AppendChild(potato, dom.Element("wow",
		dom.Attr{Name: "easy", Value: "true"},
		dom.Attr{Name: "x", Value: "200"},
	)); err != nil {
		t.Fatalf("AppendChild error = %v", err)
	}
	doc.SetDeclaration(&dom.Declaration{Version: "1.1", Encoding: "utf-8"})

	want := `<?xml version="1.1" encoding="utf-8" ?>
<root>
  <potato>
    <wow easy="true" x="200" />
  </potato>
</root>`
	if got := doc.StringPretty(); got != want {
		t.Errorf("StringPretty() =\n%s\nwant:\n%s", got, want)
	}
}
