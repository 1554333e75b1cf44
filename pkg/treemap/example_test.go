package treemap_test

import (
	"fmt"

	"github.com/duviz/duviz/pkg/treemap"
)

func ExampleLayout() {
	root := treemap.NewNode("root", "root", 0)
	root.InsertRelative("photos/a.jpg", 6)
	root.InsertRelative("photos/b.jpg", 6)
	root.InsertRelative("music.mp3", 4)
	root.InsertRelative("docs/report.pdf", 3)
	root.InsertRelative("notes.txt", 2)
	if _, err := root.Aggregate(); err != nil {
		panic(err)
	}

	ix, err := treemap.Layout(root, treemap.NewRect(0, 0, 600, 400))
	if err != nil {
		panic(err)
	}

	for _, c := range ix.At(100, 100) {
		fmt.Printf("%s (%d)\n", c.Name, c.Size)
	}
	// Output:
	// root (21)
	// photos (12)
	// a.jpg (6)
}
