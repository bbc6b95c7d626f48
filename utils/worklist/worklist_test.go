package worklist

import "testing"

func TestWorklistVisitsOnce(t *testing.T) {
	succ := map[int][]int{
		0: {1, 2},
		1: {2, 0},
		2: {3},
		3: {1},
	}

	visits := map[int]int{}
	order := []int{}
	StartV([]int{0}, func(next int, add func(int)) {
		visits[next]++
		order = append(order, next)
		for _, s := range succ[next] {
			add(s)
		}
	})

	for n, c := range visits {
		if c != 1 {
			t.Errorf("Node %d visited %d times", n, c)
		}
	}

	expected := []int{0, 1, 2, 3}
	if len(order) != len(expected) {
		t.Fatalf("Visited %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("Visited %v, expected %v", order, expected)
			break
		}
	}
}
