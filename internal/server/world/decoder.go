package world

import (
	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
)

// decoder latches the first read error so version-gated field lists read as
// straight-line code. Every accessor returns the zero value once err is set.
type decoder struct {
	r       *tnet.Reader
	version int32
	err     error
}

func (d *decoder) u8() uint8 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadU8()
	d.err = err
	return v
}

func (d *decoder) flag() bool { return d.u8() != 0 }

func (d *decoder) i16() int16 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadI16()
	d.err = err
	return v
}

func (d *decoder) u16() uint16 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadU16()
	d.err = err
	return v
}

func (d *decoder) i32() int32 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadI32()
	d.err = err
	return v
}

func (d *decoder) u32() uint32 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadU32()
	d.err = err
	return v
}

func (d *decoder) u64() uint64 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadU64()
	d.err = err
	return v
}

func (d *decoder) f32() float32 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadF32()
	d.err = err
	return v
}

func (d *decoder) f64() float64 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadF64()
	d.err = err
	return v
}

func (d *decoder) str() string {
	if d.err != nil {
		return ""
	}
	v, err := d.r.ReadString()
	d.err = err
	return v
}

func (d *decoder) vec() tnet.Vector2 {
	if d.err != nil {
		return tnet.Vector2{}
	}
	v, err := d.r.ReadVector2()
	d.err = err
	return v
}

func (d *decoder) raw(n int) []byte {
	if d.err != nil {
		return nil
	}
	v, err := d.r.ReadBytes(n)
	d.err = err
	return v
}

func (d *decoder) skip(n int) {
	if d.err != nil {
		return
	}
	d.err = d.r.Skip(n)
}

// Version-gated reads: the field is only present from version v onwards.

func (d *decoder) flagSince(v int32) bool {
	return d.version >= v && d.flag()
}

func (d *decoder) i32Since(v, def int32) int32 {
	if d.version < v {
		return def
	}
	return d.i32()
}

func (d *decoder) f32Since(v int32) float32 {
	if d.version < v {
		return 0
	}
	return d.f32()
}

// count reads an element count and bounds it by the bytes left, so a corrupt
// count cannot force a huge allocation.
func (d *decoder) count(n int32) int {
	if n <= 0 || d.err != nil {
		return 0
	}
	if rest := d.r.Len(); int(n) > rest {
		return rest
	}
	return int(n)
}

func (d *decoder) i32s(n int32) []int32 {
	out := make([]int32, 0, d.count(n))
	for i := int32(0); i < n && d.err == nil; i++ {
		out = append(out, d.i32())
	}
	return out
}
