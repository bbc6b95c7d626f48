package pq

import "testing"

func TestPriorityQueueOrder(t *testing.T) {
	q := Empty(func(a, b int) bool { return a < b })
	for _, x := range []int{5, 3, 9, 1, 3, 7} {
		q.Add(x)
	}

	if q.Len() != 5 {
		t.Errorf("Expected duplicates to be dropped, found %d elements", q.Len())
	}

	expected := []int{1, 3, 5, 7, 9}
	for _, e := range expected {
		if q.IsEmpty() {
			t.Fatalf("Queue emptied early, expected %d", e)
		}
		if x := q.GetNext(); x != e {
			t.Errorf("Popped %d, expected %d", x, e)
		}
	}

	if !q.IsEmpty() {
		t.Errorf("Expected the queue to be empty")
	}
}

func TestPriorityQueueReAdd(t *testing.T) {
	q := Empty(func(a, b string) bool { return a < b })
	q.Add("b")
	q.Add("a")

	if x := q.GetNext(); x != "a" {
		t.Fatalf("Popped %s, expected a", x)
	}
	if q.Contains("a") {
		t.Errorf("a should no longer be queued")
	}

	q.Add("a")
	if !q.Contains("a") || q.Len() != 2 {
		t.Errorf("Expected a to be queued again")
	}
}
