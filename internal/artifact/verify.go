package artifact

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// verify checks every offset the accessors will follow, so lookups never
// touch memory outside buf.
func verify(buf []byte) error {
	v := verifier{buf: buf}

	if len(buf) < 8 {
		return fmt.Errorf("%w: buffer too short (%d bytes)", ErrCorrupt, len(buf))
	}
	if string(buf[4:8]) != FileIdentifier {
		return fmt.Errorf("%w: missing %q file identifier", ErrCorrupt, FileIdentifier)
	}

	root, ok := v.u32(0)
	if !ok {
		return fmt.Errorf("%w: bad root offset", ErrCorrupt)
	}
	tab, err := v.table(root)
	if err != nil {
		return fmt.Errorf("%w: root table: %v", ErrCorrupt, err)
	}

	if err := v.verifyStyles(tab); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := v.verifyGenerators(tab); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return nil
}

type verifier struct {
	buf []byte
}

// tableRef locates a table and its vtable.
type tableRef struct {
	pos   int
	vt    int
	vtLen int
}

func (v verifier) inBounds(pos, size int) bool {
	return pos >= 0 && size >= 0 && pos <= len(v.buf) && size <= len(v.buf)-pos
}

func (v verifier) u32(pos int) (int, bool) {
	if !v.inBounds(pos, 4) {
		return 0, false
	}
	return int(binary.LittleEndian.Uint32(v.buf[pos:])), true
}

func (v verifier) u16(pos int) (int, bool) {
	if !v.inBounds(pos, 2) {
		return 0, false
	}
	return int(binary.LittleEndian.Uint16(v.buf[pos:])), true
}

func (v verifier) table(pos int) (tableRef, error) {
	raw, ok := v.u32(pos)
	if !ok {
		return tableRef{}, fmt.Errorf("table at %d out of bounds", pos)
	}
	vt := pos - int(int32(uint32(raw)))
	vtLen, ok := v.u16(vt)
	if !ok || vtLen < 4 || vtLen%2 != 0 || !v.inBounds(vt, vtLen) {
		return tableRef{}, fmt.Errorf("vtable for table at %d is invalid", pos)
	}
	tabLen, _ := v.u16(vt + 2)
	if !v.inBounds(pos, tabLen) {
		return tableRef{}, fmt.Errorf("table at %d overruns buffer", pos)
	}
	return tableRef{pos: pos, vt: vt, vtLen: vtLen}, nil
}

// field returns the absolute position of the field stored in slot, or 0 when
// the field is absent.
func (v verifier) field(t tableRef, slot, size int) (int, error) {
	if slot+2 > t.vtLen {
		return 0, nil
	}
	off, _ := v.u16(t.vt + slot)
	if off == 0 {
		return 0, nil
	}
	abs := t.pos + off
	if !v.inBounds(abs, size) {
		return 0, fmt.Errorf("field %d of table at %d out of bounds", slot, t.pos)
	}
	return abs, nil
}

func (v verifier) indirect(pos int) (int, error) {
	off, ok := v.u32(pos)
	if !ok {
		return 0, fmt.Errorf("offset at %d out of bounds", pos)
	}
	target := pos + off
	if !v.inBounds(target, 4) {
		return 0, fmt.Errorf("offset at %d points outside buffer", pos)
	}
	return target, nil
}

// str validates a required string field and returns its bytes.
func (v verifier) str(t tableRef, slot int, what string) ([]byte, error) {
	pos, err := v.field(t, slot, 4)
	if err != nil {
		return nil, err
	}
	if pos == 0 {
		return nil, fmt.Errorf("%s is missing", what)
	}
	target, err := v.indirect(pos)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", what, err)
	}
	n, _ := v.u32(target)
	// Strings carry a trailing NUL.
	if !v.inBounds(target+4, n+1) {
		return nil, fmt.Errorf("%s overruns buffer", what)
	}
	return v.buf[target+4 : target+4+n], nil
}

// vector validates an optional vector of table offsets and returns the
// position of its first element and its length.
func (v verifier) vector(t tableRef, slot int) (int, int, error) {
	pos, err := v.field(t, slot, 4)
	if err != nil || pos == 0 {
		return 0, 0, err
	}
	target, err := v.indirect(pos)
	if err != nil {
		return 0, 0, err
	}
	n, _ := v.u32(target)
	start := target + 4
	if n > (len(v.buf)-start)/4 {
		return 0, 0, fmt.Errorf("vector at %d overruns buffer", target)
	}
	return start, n, nil
}

func (v verifier) element(start, i int) (tableRef, error) {
	pos, err := v.indirect(start + 4*i)
	if err != nil {
		return tableRef{}, err
	}
	return v.table(pos)
}

func (v verifier) verifyStyles(root tableRef) error {
	start, n, err := v.vector(root, slotStylesVector)
	if err != nil {
		return fmt.Errorf("styles: %v", err)
	}

	var prev []byte
	for i := 0; i < n; i++ {
		t, err := v.element(start, i)
		if err != nil {
			return fmt.Errorf("style %d: %v", i, err)
		}
		name, err := v.str(t, slotStyleName, "name")
		if err != nil {
			return fmt.Errorf("style %d: %v", i, err)
		}
		if len(name) == 0 {
			return fmt.Errorf("style %d: empty name", i)
		}
		if _, err := v.str(t, slotStyleCSS, "css"); err != nil {
			return fmt.Errorf("style %q: %v", name, err)
		}
		if i > 0 && bytes.Compare(prev, name) >= 0 {
			return fmt.Errorf("styles not sorted at %q", name)
		}
		prev = name
	}
	return nil
}

func (v verifier) verifyGenerators(root tableRef) error {
	start, n, err := v.vector(root, slotGeneratorsVector)
	if err != nil {
		return fmt.Errorf("generators: %v", err)
	}

	for i := 0; i < n; i++ {
		t, err := v.element(start, i)
		if err != nil {
			return fmt.Errorf("generator %d: %v", i, err)
		}
		prefix, err := v.str(t, slotGeneratorPrefix, "prefix")
		if err != nil {
			return fmt.Errorf("generator %d: %v", i, err)
		}
		if len(prefix) == 0 {
			return fmt.Errorf("generator %d: empty prefix", i)
		}
		if _, err := v.str(t, slotGeneratorProperty, "property"); err != nil {
			return fmt.Errorf("generator %q: %v", prefix, err)
		}
		if _, err := v.str(t, slotGeneratorUnit, "unit"); err != nil {
			return fmt.Errorf("generator %q: %v", prefix, err)
		}
		if _, err := v.field(t, slotGeneratorMultiplier, 4); err != nil {
			return fmt.Errorf("generator %q: %v", prefix, err)
		}
	}
	return nil
}
