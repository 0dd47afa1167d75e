package classfile

import (
	"errors"
	"fmt"
)

// MaxPoolSlots is the largest number of usable slots: constant_pool_count is
// a u2 and index 0 is never valid.
const MaxPoolSlots = 0xFFFF - 1

var ErrPoolFull = errors.New("constant pool is full")

// Pool is a constant pool indexed from 1. A Long or Double occupies its own
// index and the following one, which holds a Placeholder.
//
// A Pool is not safe for concurrent mutation.
type Pool struct {
	entries []Constant
	byHash  map[uint64][]uint16
}

func NewPool() *Pool {
	return &Pool{byHash: make(map[uint64][]uint16)}
}

// Len is the number of slots in use, including placeholders. The class file
// constant_pool_count is Len()+1.
func (p *Pool) Len() int { return len(p.entries) }

// Get returns the constant at index i.
func (p *Pool) Get(i uint16) (Constant, bool) {
	if i == 0 || int(i) > len(p.entries) {
		return nil, false
	}
	return p.entries[i-1], true
}

// Entries returns the slots in index order; Entries()[0] is index 1.
func (p *Pool) Entries() []Constant {
	return append([]Constant(nil), p.entries...)
}

// Lookup returns the lowest index holding a constant equal to c.
func (p *Pool) Lookup(c Constant) (uint16, bool) {
	for _, i := range p.byHash[c.Hash()] {
		if p.entries[i-1].Equal(c) {
			return i, true
		}
	}
	return 0, false
}

// Add returns the index of c, appending it if no equal constant is present.
// Wide constants are followed by a Placeholder.
func (p *Pool) Add(c Constant) (uint16, error) {
	if _, ok := c.(Placeholder); ok {
		return 0, errors.New("placeholders are inserted by the pool")
	}
	if i, ok := p.Lookup(c); ok {
		return i, nil
	}
	return p.push(c)
}

func (p *Pool) push(c Constant) (uint16, error) {
	if len(p.entries)+c.Slots() > MaxPoolSlots {
		return 0, fmt.Errorf("add %s: %w", c, ErrPoolFull)
	}
	p.entries = append(p.entries, c)
	i := uint16(len(p.entries))
	if _, ok := c.(Placeholder); !ok {
		h := c.Hash()
		p.byHash[h] = append(p.byHash[h], i)
	}
	if IsWide(c) {
		p.entries = append(p.entries, Placeholder{})
	}
	return i, nil
}

// Validate checks that every Long and Double is followed by a Placeholder
// and that placeholders appear nowhere else.
func (p *Pool) Validate() error {
	for i := 0; i < len(p.entries); i++ {
		c := p.entries[i]
		if _, ok := c.(Placeholder); ok {
			return fmt.Errorf("index %d: placeholder without preceding wide constant", i+1)
		}
		if !IsWide(c) {
			continue
		}
		if i+1 >= len(p.entries) {
			return fmt.Errorf("index %d: %s is missing its second slot", i+1, c)
		}
		if _, ok := p.entries[i+1].(Placeholder); !ok {
			return fmt.Errorf("index %d: %s must be followed by a placeholder, found %s", i+1, c, p.entries[i+1])
		}
		i++
	}
	return nil
}

// Utf8 returns the text of the CONSTANT_Utf8 entry at i.
func (p *Pool) Utf8(i uint16) (string, error) {
	c, err := p.expect(i, ConstantUtf8)
	if err != nil {
		return "", err
	}
	return string(c.(StringConstant)), nil
}

// ClassName returns the name of the CONSTANT_Class entry at i.
func (p *Pool) ClassName(i uint16) (string, error) {
	c, err := p.expect(i, ConstantClass)
	if err != nil {
		return "", err
	}
	return string(c.(ClassRef)), nil
}

func (p *Pool) expect(i uint16, tag ConstantTag) (Constant, error) {
	c, ok := p.Get(i)
	if !ok {
		return nil, malformed("constant pool", "index %d out of range 1..%d", i, len(p.entries))
	}
	if c.Tag() != tag {
		return nil, malformed("constant pool", "index %d: expected tag %d, found %s", i, tag, c)
	}
	return c, nil
}
