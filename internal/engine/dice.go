package engine

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

var diceRe = regexp.MustCompile(`(?i)^\s*(\d+)?\s*d\s*(\d+)(\s*([+\-x*/])\s*(\d+))?\s*$`)

// Roller is the random source for game rules. It is safe for concurrent use.
type Roller struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRoller seeds from the clock when seed is 0.
func NewRoller(seed int64) *Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Roller{r: rand.New(rand.NewSource(seed))}
}

// Between returns a uniform integer in [lo, hi].
func (d *Roller) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return lo + d.r.Intn(hi-lo+1)
}

// Intn returns a uniform integer in [0, n).
func (d *Roller) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.Intn(n)
}

// Percent reports whether a d100 roll lands under chance.
func (d *Roller) Percent(chance int) bool {
	return d.Intn(100) < chance
}

// Roll evaluates a dice expression: N, NdM, NdM+K, NdM-K, NdM xK (or *K), NdM/K.
// Unparseable expressions roll 0; results never go below 0.
func (d *Roller) Roll(expr string) int {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0
	}
	if n, err := strconv.Atoi(expr); err == nil {
		return n
	}
	m := diceRe.FindStringSubmatch(expr)
	if m == nil {
		return 0
	}
	count := 1
	if m[1] != "" {
		count, _ = strconv.Atoi(m[1])
	}
	sides, _ := strconv.Atoi(m[2])
	if sides <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < count; i++ {
		total += d.Between(1, sides)
	}
	if m[3] != "" {
		k, _ := strconv.Atoi(m[5])
		switch m[4] {
		case "+":
			total += k
		case "-":
			total -= k
		case "x", "X", "*":
			total *= k
		case "/":
			if k > 0 {
				total /= k
			}
		}
	}
	if total < 0 {
		total = 0
	}
	return total
}
