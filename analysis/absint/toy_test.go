package absint

import "errors"

// maxDomain orders integers in [0, 100] by ≤.
type maxDomain struct{}

func (maxDomain) Bot() int          { return 0 }
func (maxDomain) Top() int          { return 100 }
func (maxDomain) Leq(x, y int) bool { return x <= y }
func (maxDomain) Join(x, y int) int {
	if x < y {
		return y
	}
	return x
}

func (maxDomain) Transformer(action string) UnaryOperation[int] {
	switch action {
	case "inc":
		return Unary("inc", func(x int) int {
			if x == 0 || x == 100 {
				return x
			}
			return x + 1
		})
	case "reset":
		return Unary("reset", func(x int) int {
			if x == 0 {
				return x
			}
			return 1
		})
	}
	return Id[int]()
}

// namedMax adds a name, a meet, and a widening to maxDomain.
type namedMax struct{ maxDomain }

func (namedMax) String() string { return "Max" }
func (namedMax) Meet(x, y int) int {
	if x < y {
		return x
	}
	return y
}
func (namedMax) Widen(x, y int) int {
	if y > x {
		return 100
	}
	return x
}

// recovered runs f and returns the error it panicked with.
func recovered(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = errors.New("non-error panic")
			}
		}
	}()
	f()
	return
}
