package render

import (
	"strconv"

	"github.com/pterm/pterm"

	"github.com/xlr-lang/xlr/tree"
)

// Debug prints h as a pterm tree diagram to the terminal, grounded in
// gorgo's terex/terexlang/trepl indentedListFrom/leveledElem helpers: a
// flat leveled list built by a depth-first walk, handed to
// pterm.NewTreeFromLeveledList. Used by cmd/xlrepl's "tree" command.
func Debug(g *tree.GC, h tree.Handle) {
	root := pterm.NewTreeFromLeveledList(leveledNode(g, h, pterm.LeveledList{}, 0))
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledNode(g *tree.GC, h tree.Handle, ll pterm.LeveledList, level int) pterm.LeveledList {
	n := g.Node(h)
	if n == nil {
		return append(ll, pterm.LeveledListItem{Level: level, Text: "nil"})
	}
	switch n.Kind {
	case tree.Integer:
		return append(ll, pterm.LeveledListItem{Level: level, Text: strconv.FormatInt(n.IntVal, 10)})
	case tree.Real:
		return append(ll, pterm.LeveledListItem{Level: level, Text: strconv.FormatFloat(n.RealVal, 'g', -1, 64)})
	case tree.Text:
		return append(ll, pterm.LeveledListItem{Level: level, Text: n.Opening + n.TextVal + n.Closing})
	case tree.Name:
		return append(ll, pterm.LeveledListItem{Level: level, Text: n.NameVal})
	case tree.Block:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: n.Opening + n.Closing})
		return leveledNode(g, n.Child, ll, level+1)
	case tree.Infix:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: "infix " + n.NameVal})
		ll = leveledNode(g, n.Left, ll, level+1)
		return leveledNode(g, n.Right, ll, level+1)
	case tree.Prefix:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: "prefix"})
		ll = leveledNode(g, n.Left, ll, level+1)
		return leveledNode(g, n.Right, ll, level+1)
	case tree.Postfix:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: "postfix"})
		ll = leveledNode(g, n.Left, ll, level+1)
		return leveledNode(g, n.Right, ll, level+1)
	}
	return ll
}
