package menu

import (
	"testing"

	"github.com/mwantia/menufs/data"
)

// ruleTree parses rule inside a single Include and returns the Include node.
func ruleTree(t *testing.T, rule string) (*Tree, NodeID) {
	t.Helper()

	tree, err := Parse("rule.menu", []byte("<Menu><Name>Test</Name><Include>"+rule+"</Include></Menu>"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	includes := tree.Rules(tree.Root(), TagInclude)
	if len(includes) != 1 {
		t.Fatalf("Expected 1 Include, got %d", len(includes))
	}

	return tree, includes[0]
}

func TestSatisfy_Category(t *testing.T) {
	tree, include := ruleTree(t, "<Category>Utility</Category>")

	delta := &Delta{}
	if !tree.Satisfy(include, data.CategorySet{"Game"}, delta) {
		t.Fatal("Satisfy failed")
	}
	if !delta.Add.Equal(data.CategorySet{"Utility"}) || len(delta.Del) != 0 {
		t.Errorf("Unexpected delta %+v", delta)
	}

	delta = &Delta{}
	if !tree.Satisfy(include, data.CategorySet{"Utility"}, delta) || !delta.Empty() {
		t.Errorf("Expected already satisfied rule to leave delta empty, got %+v", delta)
	}
}

func TestSatisfy_ConflictLeavesDeltaUnchanged(t *testing.T) {
	tree, include := ruleTree(t, "<Not><Category>X</Category></Not>")

	delta := &Delta{Add: data.CategorySet{"X"}}
	if tree.Satisfy(include, data.CategorySet{}, delta) {
		t.Fatal("Expected Satisfy to fail")
	}
	if !delta.Add.Equal(data.CategorySet{"X"}) || len(delta.Del) != 0 {
		t.Errorf("Expected delta to be unchanged, got %+v", delta)
	}
}

func TestSatisfy_AndNot(t *testing.T) {
	tree, include := ruleTree(t, "<And><Category>Utility</Category><Not><Category>System</Category></Not></And>")

	current := data.CategorySet{"System", "Settings"}
	delta := &Delta{}
	if !tree.Satisfy(include, current, delta) {
		t.Fatal("Satisfy failed")
	}
	if !delta.Add.Equal(data.CategorySet{"Utility"}) || !delta.Del.Equal(data.CategorySet{"System"}) {
		t.Errorf("Unexpected delta %+v", delta)
	}
	if got := delta.Apply(current); !got.Equal(data.CategorySet{"Settings", "Utility"}) {
		t.Errorf("Unexpected result %v", got)
	}
}

func TestSatisfy_Unsatisfiable(t *testing.T) {
	tree, include := ruleTree(t, "<And><Category>A</Category><Not><Category>A</Category></Not></And>")

	delta := &Delta{}
	if tree.Satisfy(include, data.CategorySet{}, delta) {
		t.Fatal("Expected Satisfy to fail")
	}
	if !delta.Empty() {
		t.Errorf("Expected rollback to empty delta, got %+v", delta)
	}
}

func TestSatisfy_OrRollsBackFailedBranch(t *testing.T) {
	tree, include := ruleTree(t, `<Or>
  <And><Category>A</Category><Filename>a.desktop</Filename></And>
  <Category>B</Category>
</Or>`)

	delta := &Delta{}
	if !tree.Satisfy(include, data.CategorySet{}, delta) {
		t.Fatal("Satisfy failed")
	}
	if !delta.Add.Equal(data.CategorySet{"B"}) {
		t.Errorf("Expected only B to be added, got %+v", delta)
	}
}

func TestUnsatisfy_Or(t *testing.T) {
	tree, include := ruleTree(t, "<Category>A</Category><Category>B</Category>")

	delta := &Delta{}
	if !tree.Unsatisfy(include, data.CategorySet{"A", "B", "C"}, delta) {
		t.Fatal("Unsatisfy failed")
	}
	if !delta.Del.Equal(data.CategorySet{"A", "B"}) || len(delta.Add) != 0 {
		t.Errorf("Unexpected delta %+v", delta)
	}
}

func TestUnsatisfy_ConflictWithAdd(t *testing.T) {
	tree, include := ruleTree(t, "<Category>A</Category><Category>B</Category>")

	delta := &Delta{Add: data.CategorySet{"B"}}
	if tree.Unsatisfy(include, data.CategorySet{"A"}, delta) {
		t.Fatal("Expected Unsatisfy to fail")
	}
	if !delta.Add.Equal(data.CategorySet{"B"}) || len(delta.Del) != 0 {
		t.Errorf("Expected delta to be unchanged, got %+v", delta)
	}
}

func TestFilename(t *testing.T) {
	tree, include := ruleTree(t, "<Filename>org.example.App.desktop</Filename>")

	delta := &Delta{}
	if tree.Satisfy(include, data.CategorySet{}, delta) {
		t.Error("Expected Satisfy of Filename to fail")
	}
	if !tree.Unsatisfy(include, data.CategorySet{}, delta) || !delta.Empty() {
		t.Errorf("Expected Unsatisfy of Filename to succeed without change, got %+v", delta)
	}

	if !tree.Matches(include, "org.example.App.desktop", nil) {
		t.Error("Expected Matches by id")
	}
	if tree.IsSatisfying(include, data.CategorySet{"org.example.App.desktop"}) {
		t.Error("Expected IsSatisfying to ignore Filename")
	}
}

func TestSolver_RoundTrip(t *testing.T) {
	rules := []string{
		"<Category>A</Category>",
		"<Not><Category>A</Category></Not>",
		"<And><Category>A</Category><Category>B</Category></And>",
		"<Or><Category>A</Category><Not><Category>C</Category></Not></Or>",
		"<And><Or><Category>A</Category><Category>B</Category></Or><Not><And><Category>C</Category><Category>D</Category></And></Not></And>",
		"<Not><Or><Category>A</Category><Not><Category>B</Category></Not></Or></Not>",
	}
	currents := []data.CategorySet{
		{},
		{"A"},
		{"B", "C"},
		{"A", "B", "C", "D"},
	}

	for _, rule := range rules {
		tree, include := ruleTree(t, rule)
		for _, current := range currents {
			delta := &Delta{}
			if tree.Satisfy(include, current, delta) && !tree.IsSatisfying(include, delta.Apply(current)) {
				t.Errorf("Satisfy(%s, %v) produced %+v which does not satisfy", rule, current, delta)
			}

			delta = &Delta{}
			if tree.Unsatisfy(include, current, delta) && tree.IsSatisfying(include, delta.Apply(current)) {
				t.Errorf("Unsatisfy(%s, %v) produced %+v which still satisfies", rule, current, delta)
			}
		}
	}
}
