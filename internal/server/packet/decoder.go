package packet

import (
	tnet "github.com/OCharnyshevich/terraria-server/internal/server/net"
)

// decoder wraps a Reader and latches the first error, so long field lists can
// be read without checking every call.
type decoder struct {
	r   *tnet.Reader
	err error
}

func (d *decoder) u8() uint8 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadU8()
	d.err = err
	return v
}

func (d *decoder) i8() int8 { return int8(d.u8()) }

func (d *decoder) flag() bool { return d.u8() != 0 }

func (d *decoder) u16() uint16 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadU16()
	d.err = err
	return v
}

func (d *decoder) i16() int16 { return int16(d.u16()) }

func (d *decoder) u32() uint32 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadU32()
	d.err = err
	return v
}

func (d *decoder) i32() int32 { return int32(d.u32()) }

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

func (d *decoder) str() string {
	if d.err != nil {
		return ""
	}
	v, err := d.r.ReadString()
	d.err = err
	return v
}

func (d *decoder) rgb() tnet.RGB {
	if d.err != nil {
		return tnet.RGB{}
	}
	v, err := d.r.ReadRGB()
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

func (d *decoder) text() tnet.Text {
	if d.err != nil {
		return tnet.Text{}
	}
	v, err := d.r.ReadText()
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

// finish returns m unless a read failed.
func finish[M any](d *decoder, m M) (M, error) {
	if d.err != nil {
		var zero M
		return zero, d.err
	}
	return m, nil
}
