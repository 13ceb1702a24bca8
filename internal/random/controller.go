package random

import (
	"github.com/go-bms/bmscore/internal/diag"
	"github.com/go-bms/bmscore/internal/lex"
)

// MaxNestingDepth bounds #RANDOM/#SWITCH nesting so a pathological input
// cannot grow the frame stack without limit (spec.md §5 recommends a
// depth cap of at least 64; the controller is iterative, not recursive,
// so this is a sanity guard rather than a stack-overflow defense).
const MaxNestingDepth = 64

// Controller is the stateful filter between the lexer and the processor
// pipeline: it walks the #RANDOM/#IF/#SWITCH/#CASE grammar and marks
// every other token live or dead.
type Controller struct {
	stack []*Block
}

// Filter runs every lexed token through the controller, returning only
// the tokens live under the random/switch nesting, plus any warnings and
// errors raised while interpreting the control grammar.
func Filter(tokens []lex.TokenWithRange, rng Rng) (live []lex.TokenWithRange, warnings []diag.Warning, errs []diag.Error) {
	c := &Controller{}
	for _, twr := range tokens {
		t := twr.Token
		if !t.Kind.IsControl() {
			if c.allPass() {
				live = append(live, twr)
			}
			continue
		}
		w, e := c.step(t, twr.Range, rng)
		warnings = append(warnings, w...)
		if e != nil {
			errs = append(errs, *e)
		}
	}
	if len(c.stack) > 0 {
		warnings = append(warnings, diag.New(diag.UnclosedRandom, 0, 0, diag.Range{},
			"%d #RANDOM/#SWITCH block(s) left open at end of input", len(c.stack)))
		c.stack = nil
	}
	return live, warnings, errs
}

func (c *Controller) allPass() bool {
	for _, b := range c.stack {
		if !b.Pass() {
			return false
		}
	}
	return true
}

func (c *Controller) top() *Block {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

func (c *Controller) step(t lex.Token, tokRange lex.Range, rng Rng) (warnings []diag.Warning, err *diag.Error) {
	switch t.Kind {
	case lex.TokenRandom, lex.TokenSwitch:
		if len(c.stack) >= MaxNestingDepth {
			e := diag.NewError(diag.InvariantViolation, tokRange, "random/switch nesting exceeds depth %d", MaxNestingDepth)
			return nil, &e
		}
		var value *uint32
		if c.allPass() {
			v := rng.Gen(1, t.Value)
			value = &v
		}
		c.stack = append(c.stack, NewBlock(value, t.Kind == lex.TokenSwitch))
		return nil, nil

	case lex.TokenIf:
		b := c.top()
		if b == nil {
			return nil, nil
		}
		if wasOpen := b.OpenIf(t.Value); wasOpen {
			e := diag.NewError(diag.InvariantViolation, tokRange, "#IF %d opened without a matching #ENDIF for the previous #IF", t.Value)
			return nil, &e
		}
		return nil, nil

	case lex.TokenElseIf:
		b := c.top()
		if b == nil {
			return nil, nil
		}
		if !b.OpenElseIf(t.Value) {
			warnings = append(warnings, diag.New(diag.DuplicateIfValue, 0, 0, tokRange, "#ELSEIF %d duplicates a value already seen at this level", t.Value))
		}
		return warnings, nil

	case lex.TokenElse:
		b := c.top()
		if b == nil {
			return nil, nil
		}
		if !b.OpenElse() {
			warnings = append(warnings, diag.New(diag.DuplicateElse, 0, 0, tokRange, "a second #ELSE was opened in the same block"))
		}
		return warnings, nil

	case lex.TokenEndIf:
		if b := c.top(); b != nil {
			b.ResetIf()
		}
		return nil, nil

	case lex.TokenEndRandom:
		if len(c.stack) > 0 {
			c.stack = c.stack[:len(c.stack)-1]
		}
		return nil, nil

	case lex.TokenCase:
		if b := c.top(); b != nil {
			b.OpenCase(t.Value)
		}
		return nil, nil

	case lex.TokenDef:
		if b := c.top(); b != nil {
			b.OpenCase(defaultCaseSentinel(b))
		}
		return nil, nil

	case lex.TokenSkip:
		if b := c.top(); b != nil {
			b.Skip()
		}
		return nil, nil
	}
	return nil, nil
}

// defaultCaseSentinel forces OpenCase to always match: #DEF behaves as
// the unconditional default branch of a #SWITCH, so it is handed the
// frame's own random draw as the "matching" value (or 0 when the frame
// is dead, which is inert either way since OpenCase is a no-op on a dead
// frame's downstream pass()).
func defaultCaseSentinel(b *Block) uint32 {
	if b.RandomValue != nil {
		return *b.RandomValue
	}
	return 0
}
