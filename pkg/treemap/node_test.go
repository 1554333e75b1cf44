package treemap

import (
	"testing"

	"github.com/duviz/duviz/pkg/errors"
)

func TestInsertRelative(t *testing.T) {
	root := NewNode("root", "root", 0)
	root.InsertRelative("a/b/file.txt", 100)
	root.InsertRelative("a/b/other.txt", 50)
	root.InsertRelative("a/c.txt", 25)

	if len(root.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(root.Children))
	}

	a := root.Children[0]
	if a.Name != "a" || a.Path != "root/a" {
		t.Errorf("child = %q at %q, want a at root/a", a.Name, a.Path)
	}
	if len(a.Children) != 2 {
		t.Fatalf("a children = %d, want 2", len(a.Children))
	}

	b := a.Children[0]
	if b.Name != "b" || len(b.Children) != 2 {
		t.Fatalf("b = %q with %d children, want b with 2", b.Name, len(b.Children))
	}
	if b.Children[0].Size != 100 || b.Children[1].Size != 50 {
		t.Errorf("leaf sizes = %d, %d, want 100, 50", b.Children[0].Size, b.Children[1].Size)
	}

	c := a.Children[1]
	if c.Name != "c.txt" || c.Size != 25 {
		t.Errorf("c = %q size %d, want c.txt size 25", c.Name, c.Size)
	}
}

func TestInsertRelativeSkipsDotSegments(t *testing.T) {
	root := NewNode("root", "root", 0)
	root.InsertRelative("./a//file.txt", 10)

	if len(root.Children) != 1 || root.Children[0].Name != "a" {
		t.Fatal("expected dot and empty segments to be skipped")
	}
	leaf := root.Children[0].Children[0]
	if leaf.Name != "file.txt" || leaf.Size != 10 {
		t.Errorf("leaf = %q size %d, want file.txt size 10", leaf.Name, leaf.Size)
	}
}

func TestInsertRelativeUpdatesExisting(t *testing.T) {
	root := NewNode("root", "root", 0)
	root.InsertRelative("a.txt", 10)
	root.InsertRelative("a.txt", 20)

	if len(root.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(root.Children))
	}
	if root.Children[0].Size != 20 {
		t.Errorf("size = %d, want 20", root.Children[0].Size)
	}
}

func TestAggregate(t *testing.T) {
	root := NewNode("root", "root", 0)
	root.InsertRelative("a/x.bin", 100)
	root.InsertRelative("a/y.bin", 50)
	root.InsertRelative("b.bin", 25)

	total, err := root.Aggregate()
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if total != 175 {
		t.Errorf("total = %d, want 175", total)
	}
	if root.Size != 175 {
		t.Errorf("root.Size = %d, want 175", root.Size)
	}

	a := root.Children[0]
	if a.Size != 150 {
		t.Errorf("a.Size = %d, want 150", a.Size)
	}
}

func TestAggregateOverridesInternalSize(t *testing.T) {
	// Internal node sizes are defined by their children, not trusted
	// from input.
	root := NewNode("root", "root", 999)
	a := NewNode("a", "root/a", 123)
	a.Children = append(a.Children, NewNode("x", "root/a/x", 7))
	root.Children = append(root.Children, a)

	total, err := root.Aggregate()
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if total != 7 || root.Size != 7 || a.Size != 7 {
		t.Errorf("sizes = %d/%d/%d, want all 7", total, root.Size, a.Size)
	}
}

func TestAggregateNegativeSize(t *testing.T) {
	root := NewNode("root", "root", 0)
	root.Children = append(root.Children, NewNode("bad", "root/bad", -1))

	_, err := root.Aggregate()
	if err == nil {
		t.Fatal("Aggregate() = nil, want error for negative size")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestAggregateZeroTree(t *testing.T) {
	root := NewNode("root", "root", 0)
	root.Children = append(root.Children, NewNode("empty", "root/empty", 0))

	total, err := root.Aggregate()
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
}

func TestSortBySize(t *testing.T) {
	root := NewNode("root", "root", 0)
	root.Children = []*Node{
		NewNode("small", "root/small", 10),
		NewNode("big", "root/big", 100),
		NewNode("first-tie", "root/first-tie", 50),
		NewNode("second-tie", "root/second-tie", 50),
	}

	root.SortBySize()

	got := make([]string, len(root.Children))
	for i, c := range root.Children {
		got[i] = c.Name
	}
	want := []string{"big", "first-tie", "second-tie", "small"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v (stable on ties)", got, want)
		}
	}
}

func TestFind(t *testing.T) {
	root := NewNode("root", "root", 0)
	root.InsertRelative("a/b/file.txt", 10)

	tests := []struct {
		name string
		path string
		want string // expected node name, "" for nil
	}{
		{name: "root itself", path: "root", want: "root"},
		{name: "intermediate", path: "root/a/b", want: "b"},
		{name: "leaf", path: "root/a/b/file.txt", want: "file.txt"},
		{name: "missing", path: "root/a/zzz", want: ""},
		{name: "prefix but not a node", path: "root/a/b/fi", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := root.Find(tt.path)
			if tt.want == "" {
				if n != nil {
					t.Errorf("Find(%q) = %q, want nil", tt.path, n.Name)
				}
				return
			}
			if n == nil || n.Name != tt.want {
				t.Errorf("Find(%q) = %v, want %q", tt.path, n, tt.want)
			}
		})
	}
}
