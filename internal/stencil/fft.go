package stencil

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"

	"tilelife/internal/tile"
)

// FFT computes neighbour counts as a circular convolution of the whole halo
// block with the kernel in the frequency domain. The halo border keeps every
// interior result free of wrap-around, so the counts match Direct exactly
// after rounding.
type FFT struct {
	plans sync.Map // [2]int{rows, cols} -> *sync.Pool of *fftPlan
}

// NewFFT returns an FFT convolver with an empty plan cache.
func NewFFT() *FFT { return &FFT{} }

// Name returns the registry identifier.
func (f *FFT) Name() string { return "fft" }

// fftPlan holds the transforms and scratch space for one block shape. A plan
// is used by one goroutine at a time.
type fftPlan struct {
	rows, cols int
	halfC      int
	norm       float64

	realFFT  *fourier.FFT
	cmplxFFT *fourier.CmplxFFT

	kernel []complex128 // rows x halfC
	freq   []complex128 // rows x halfC
	col    []complex128 // rows
	line   []float64    // cols
}

func newFFTPlan(rows, cols int) *fftPlan {
	p := &fftPlan{
		rows:     rows,
		cols:     cols,
		halfC:    cols/2 + 1,
		norm:     1 / float64(rows*cols),
		realFFT:  fourier.NewFFT(cols),
		cmplxFFT: fourier.NewCmplxFFT(rows),
		col:      make([]complex128, rows),
		line:     make([]float64, cols),
	}
	p.freq = make([]complex128, rows*p.halfC)
	p.kernel = make([]complex128, rows*p.halfC)

	spatial := make([]float64, rows*cols)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			fy := (dy + rows) % rows
			fx := (dx + cols) % cols
			spatial[fy*cols+fx] += float64(Kernel[dy+1][dx+1])
		}
	}
	p.forward(p.kernel, func(y int, dst []float64) {
		copy(dst, spatial[y*cols:(y+1)*cols])
	})
	return p
}

// forward runs a 2D transform: real FFT along each row, complex FFT along
// each column. fill writes row y of the spatial input into dst.
func (p *fftPlan) forward(out []complex128, fill func(y int, dst []float64)) {
	for y := 0; y < p.rows; y++ {
		fill(y, p.line)
		p.realFFT.Coefficients(out[y*p.halfC:(y+1)*p.halfC], p.line)
	}
	for x := 0; x < p.halfC; x++ {
		for y := 0; y < p.rows; y++ {
			p.col[y] = out[y*p.halfC+x]
		}
		p.cmplxFFT.Coefficients(p.col, p.col)
		for y := 0; y < p.rows; y++ {
			out[y*p.halfC+x] = p.col[y]
		}
	}
}

func (p *fftPlan) count(b tile.Block) []uint8 {
	s := b.Stride()
	p.forward(p.freq, func(y int, dst []float64) {
		for x, v := range b.Cells[y*s : (y+1)*s] {
			dst[x] = float64(v)
		}
	})

	for i := range p.freq {
		p.freq[i] *= p.kernel[i]
	}

	for x := 0; x < p.halfC; x++ {
		for y := 0; y < p.rows; y++ {
			p.col[y] = p.freq[y*p.halfC+x]
		}
		p.cmplxFFT.Sequence(p.col, p.col)
		for y := 0; y < p.rows; y++ {
			p.freq[y*p.halfC+x] = p.col[y]
		}
	}

	out := make([]uint8, b.W*b.H)
	for i := 1; i <= b.H; i++ {
		p.realFFT.Sequence(p.line, p.freq[i*p.halfC:(i+1)*p.halfC])
		for j := 1; j <= b.W; j++ {
			out[(i-1)*b.W+j-1] = uint8(math.Round(p.line[j] * p.norm))
		}
	}
	return out
}

// Count computes neighbour counts for the block interior.
func (f *FFT) Count(b tile.Block) ([]uint8, error) {
	if err := b.Valid(); err != nil {
		return nil, err
	}
	rows, cols := b.H+2, b.W+2
	key := [2]int{rows, cols}
	v, ok := f.plans.Load(key)
	if !ok {
		v, _ = f.plans.LoadOrStore(key, &sync.Pool{
			New: func() any { return newFFTPlan(rows, cols) },
		})
	}
	pool := v.(*sync.Pool)
	plan := pool.Get().(*fftPlan)
	defer pool.Put(plan)
	return plan.count(b), nil
}

func init() {
	Register("fft", func() Convolver { return NewFFT() })
}
