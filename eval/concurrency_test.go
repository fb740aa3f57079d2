package eval

import (
	"context"
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"
	"golang.org/x/sync/errgroup"

	"github.com/ellex-lang/ellex/ioadapter"
	"github.com/ellex-lang/ellex/safety"
	"github.com/ellex-lang/ellex/syntax"
	"github.com/ellex-lang/ellex/turtle"
)

// TestConcurrentSessionsDoNotShareState runs many independent sessions
// concurrently, each binding a variable and function distinct to its own
// index and moving its own turtle, then checks that no session observes
// another's bindings or functions (spec.md §5 Concurrency:
// "sessions never share evaluator or turtle state"), grounded on
// cmd/ellex/main.go's runFiles errgroup pattern.
func TestConcurrentSessionsDoNotShareState(t *testing.T) {
	c := qt.New(t)
	const n = 32

	g, ctx := errgroup.WithContext(context.Background())
	sessions := make([]*Session, n)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			src := fmt.Sprintf(`
make mark%d do
  tell "marked"
end
mark%d
ask "n?" = only%d as number
repeat %d times do
  forward
end
`, i, i, i, i%5+1)
			prog, err := syntax.NewParser().Parse(src, fmt.Sprintf("session-%d", i))
			if err != nil {
				return fmt.Errorf("session %d: parse: %w", i, err)
			}
			a := ioadapter.NewTestAdapter(fmt.Sprint(i))
			sess := NewSession(turtle.New(600, 600))
			ev := New(a)
			mon := safety.New(safety.DefaultLimits(), nil)
			if err := ev.Execute(ctx, sess, mon, prog.Stmts); err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			sessions[i] = sess
			return nil
		})
	}
	c.Assert(g.Wait(), qt.IsNil)

	for i := 0; i < n; i++ {
		sess := sessions[i]
		v, ok := sess.Lookup(fmt.Sprintf("only%d", i))
		c.Assert(ok, qt.IsTrue)
		c.Assert(v.Num(), qt.Equals, float64(i))
		_, ok = sess.Funcs[fmt.Sprintf("mark%d", i)]
		c.Assert(ok, qt.IsTrue)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			_, ok := sess.Lookup(fmt.Sprintf("only%d", j))
			c.Assert(ok, qt.IsFalse)
			_, ok = sess.Funcs[fmt.Sprintf("mark%d", j)]
			c.Assert(ok, qt.IsFalse)
		}
	}
}
