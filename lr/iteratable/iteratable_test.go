package iteratable

import "testing"

func TestSetBasics(t *testing.T) {
	S := NewSet(0)
	S.Add("a").Add("b").Add("a")
	if S.Size() != 2 {
		t.Errorf("expected set of size 2, got %d", S.Size())
	}
	if !S.Contains("a") || S.Contains("c") {
		t.Errorf("set membership broken")
	}
	vals := S.Values()
	if len(vals) != 2 || vals[0] != "a" || vals[1] != "b" {
		t.Errorf("expected insertion order [a b], got %v", vals)
	}
	vals[0] = "mutated" // must not write through to the set
	if !S.Contains("a") {
		t.Errorf("Values() should hand out a copy")
	}
}

func TestSetOperations(t *testing.T) {
	S := NewSet(0).Add(1).Add(2).Add(3)
	R := NewSet(0).Add(3).Add(4)
	D := S.Difference(R)
	if D.Size() != 2 || !D.Contains(1) || !D.Contains(2) {
		t.Errorf("difference = %v", D.Values())
	}
	if S.Size() != 3 || R.Size() != 2 {
		t.Errorf("Difference must not modify its inputs")
	}
	S.Union(R)
	if S.Size() != 4 {
		t.Errorf("expected union of size 4, got %d", S.Size())
	}
	E := NewSet(0).Add(4).Add(3).Add(2).Add(1)
	if !S.Equals(E) {
		t.Errorf("sets with equal members should be equal")
	}
	if S.Equals(R) {
		t.Errorf("sets of different size should not be equal")
	}
}

func TestSetIterationWithGrowth(t *testing.T) {
	S := NewSet(0).Add(1).Add(2)
	var visited []int
	S.IterateOnce()
	for S.Next() {
		n := S.Item().(int)
		visited = append(visited, n)
		if n < 4 {
			S.Add(n + 2) // growing the set mid-iteration is allowed
		}
	}
	if len(visited) != 5 {
		t.Fatalf("expected 5 visited items, got %v", visited)
	}
	for i, n := range []int{1, 2, 3, 4, 5} {
		if visited[i] != n {
			t.Errorf("expected to visit %v, got %v", []int{1, 2, 3, 4, 5}, visited)
			break
		}
	}
}
