package encoding

// PackedBoolSize returns the number of bytes n packed bools occupy.
func PackedBoolSize(n int) int {
	return (n + 7) / 8
}

// WriteBoolBits packs vs eight to a byte, least significant bit first.
func (e *Encoder) WriteBoolBits(vs []bool) {
	if e.err != nil {
		return
	}

	e.scratch = e.scratch[:0]
	var cur byte
	for i, v := range vs {
		if v {
			cur |= 1 << (i % 8)
		}
		if i%8 == 7 {
			e.scratch = append(e.scratch, cur)
			cur = 0
		}
	}
	if len(vs)%8 != 0 {
		e.scratch = append(e.scratch, cur)
	}
	e.flushScratch()
}

// ReadBoolBits unpacks n bools written by WriteBoolBits.
func (d *Decoder) ReadBoolBits(n int) []bool {
	packed := d.ReadBytes(PackedBoolSize(n))
	if d.err != nil {
		return nil
	}

	out := make([]bool, n)
	for i := range out {
		out[i] = packed[i/8]&(1<<(i%8)) != 0
	}

	return out
}
