package sdf

// scratch holds the buffers of the one-dimensional transform, sized for the
// longest row or column.
type scratch struct {
	f []float32
	z []float32
	v []int
}

// edt replaces every value of grid, a w*h row-major array of squared
// distances, with its squared Euclidean distance transform.
func (s *scratch) edt(grid []float32, w, h int) {
	for x := range w {
		s.edt1d(grid, x, w, h)
	}
	for y := range h {
		s.edt1d(grid, y*w, 1, w)
	}
}

// edt1d computes the lower envelope of the parabolas rooted at the length
// samples grid[offset+i*stride] and writes it back in place.
func (s *scratch) edt1d(grid []float32, offset, stride, length int) {
	f, v, z := s.f, s.v, s.z
	v[0] = 0
	z[0] = -inf
	z[1] = inf
	f[0] = grid[offset]

	k := 0
	for q := 1; q < length; q++ {
		f[q] = grid[offset+q*stride]
		q2 := float32(q * q)
		var sect float32
		for {
			r := v[k]
			sect = (f[q] - f[r] + q2 - float32(r*r)) / float32(q-r) / 2
			if sect > z[k] {
				break
			}
			k--
			if k < 0 {
				break
			}
		}
		k++
		v[k] = q
		z[k] = sect
		z[k+1] = inf
	}

	k = 0
	for q := range length {
		for z[k+1] < float32(q) {
			k++
		}
		r := v[k]
		qr := float32(q - r)
		grid[offset+q*stride] = f[r] + qr*qr
	}
}
