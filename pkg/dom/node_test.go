package dom

import "testing"

func TestNodeTree(t *testing.T) {
	root, form, btn := tree()

	if btn.Parent() != form || form.Parent() != root {
		t.Fatal("Append should set parents")
	}
	if got := root.Find("btn"); got != btn {
		t.Errorf("Find(btn) = %v", got)
	}
	if root.Find("missing") != nil {
		t.Error("Find(missing) should be nil")
	}

	path := btn.path()
	if len(path) != 2 || path[0] != root || path[1] != form {
		t.Errorf("path = %v, want [root form]", path)
	}

	other := NewNode("other")
	other.Append(btn)
	if btn.Parent() != other || len(form.Children()) != 0 {
		t.Error("Append should move the child from its previous parent")
	}

	other.Remove()
	if other.Parent() != nil {
		t.Error("Remove on a root is a no-op")
	}
}
