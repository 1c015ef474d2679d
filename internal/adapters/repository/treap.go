package repository

import (
	"math"
	"math/rand/v2"
)

// Treap ordered by AAV desc, then player id asc, so an in-order walk yields
// the board from best to worst. Subtree sizes give O(log n) rank lookups.

// cents is an AAV in whole cents. Ordering on integers keeps equal offers
// equal regardless of how their float sums were rounded.
type cents int64

func toCents(aav float64) cents {
	switch {
	case math.IsNaN(aav):
		return 0
	case aav*100 >= math.MaxInt64:
		return math.MaxInt64
	case aav*100 <= math.MinInt64:
		return math.MinInt64
	}
	return cents(math.Round(aav * 100))
}

type node struct {
	id    string
	aav   cents
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less reports whether (a, aID) ranks ahead of (b, bID).
func less(a cents, aID string, b cents, bID string) bool {
	if a != b {
		return a > b
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, id string, aav cents) *node {
	if n == nil {
		return &node{id: id, aav: aav, prio: rand.Uint64(), size: 1} //nolint:gosec // balancing, not security
	}
	if less(aav, id, n.aav, n.id) {
		n.left = insert(n.left, id, aav)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, aav)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func remove(n *node, id string, aav cents) *node {
	if n == nil {
		return nil
	}
	switch {
	case n.aav == aav && n.id == id:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = remove(n.right, id, aav)
		} else {
			n = rotateLeft(n)
			n.left = remove(n.left, id, aav)
		}
	case less(aav, id, n.aav, n.id):
		n.left = remove(n.left, id, aav)
	default:
		n.right = remove(n.right, id, aav)
	}
	fix(n)
	return n
}

// position returns the 1-based in-order position of (id, aav), or 0.
func position(n *node, id string, aav cents) int {
	before := 0
	for n != nil {
		switch {
		case n.aav == aav && n.id == id:
			return before + nsize(n.left) + 1
		case less(aav, id, n.aav, n.id):
			n = n.left
		default:
			before += nsize(n.left) + 1
			n = n.right
		}
	}
	return 0
}

// collect appends up to limit ids in board order.
func collect(n *node, limit int, out *[]string) {
	if n == nil || len(*out) >= limit {
		return
	}
	collect(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, n.id)
	}
	collect(n.right, limit, out)
}
