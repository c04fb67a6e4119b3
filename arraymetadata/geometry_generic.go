// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package arraymetadata

import (
	"encoding/binary"

	"github.com/arraydb/storagecore/datatype"
)

// genericGeometry is the single monomorphized implementation of Geometry,
// instantiated once per coordinate Datatype by buildGeometry.
type genericGeometry[T Number] struct {
	dt        datatype.Datatype
	arrayType datatype.ArrayType
	cellOrder datatype.Layout
	tileOrder datatype.Layout
	dimNum    int

	domainLo   []T
	domainHi   []T
	tileExtent []T

	tileCount      []uint64
	tileOffsetsRow []uint64
	tileOffsetsCol []uint64
	cellOffsetsRow []uint64
	cellOffsetsCol []uint64
}

func newGenericGeometry[T Number](m *ArrayMetadata) (*genericGeometry[T], error) {
	dimNum := len(m.dims)
	g := &genericGeometry[T]{
		dt:         m.CoordsType(),
		arrayType:  m.arrayType,
		cellOrder:  m.cellOrder,
		tileOrder:  m.tileOrder,
		dimNum:     dimNum,
		domainLo:   make([]T, dimNum),
		domainHi:   make([]T, dimNum),
		tileExtent: make([]T, dimNum),
	}
	for i, d := range m.dims {
		g.domainLo[i] = readT[T](d.Lo)
		g.domainHi[i] = readT[T](d.Hi)
		if d.HasTileExtent {
			g.tileExtent[i] = readT[T](d.TileExtent)
		}
	}

	if m.arrayType != datatype.Dense {
		return g, nil
	}

	if isFloatType[T]() {
		return nil, ErrSchema.New("array %q: dense arrays require an integer coordinate type", m.arrayURI)
	}

	g.tileCount = make([]uint64, dimNum)
	for i := 0; i < dimNum; i++ {
		lo, hi, ext := toInt64(g.domainLo[i]), toInt64(g.domainHi[i]), toInt64(g.tileExtent[i])
		if ext <= 0 {
			return nil, ErrSchema.New("array %q: dimension %d: tile extent must be > 0", m.arrayURI, i)
		}
		span := hi - lo + 1
		if span%ext != 0 {
			return nil, ErrSchema.New("array %q: dimension %d: (hi-lo+1) not divisible by tile_extent", m.arrayURI, i)
		}
		g.tileCount[i] = uint64(span / ext)
	}
	g.tileOffsetsRow = computeStrides(g.tileCount, datatype.RowMajor)
	g.tileOffsetsCol = computeStrides(g.tileCount, datatype.ColMajor)

	extentCounts := make([]uint64, dimNum)
	for i := 0; i < dimNum; i++ {
		extentCounts[i] = uint64(toInt64(g.tileExtent[i]))
	}
	g.cellOffsetsRow = computeStrides(extentCounts, datatype.RowMajor)
	g.cellOffsetsCol = computeStrides(extentCounts, datatype.ColMajor)

	return g, nil
}

var _ Geometry = (*genericGeometry[int64])(nil)

func (g *genericGeometry[T]) Datatype() datatype.Datatype { return g.dt }
func (g *genericGeometry[T]) DimNum() int                 { return g.dimNum }
func (g *genericGeometry[T]) CoordsSize() uint64 {
	return uint64(g.dimNum) * uint64(sizeOf(*new(T)))
}

func (g *genericGeometry[T]) decodeCoords(raw []byte) ([]T, error) {
	want := g.dimNum * sizeOf(*new(T))
	if len(raw) != want {
		return nil, ErrDeserialize.New("coords: want %d bytes, got %d", want, len(raw))
	}
	return decodeVector[T](raw, g.dimNum), nil
}

func (g *genericGeometry[T]) encodeCoords(c []T) []byte {
	sz := sizeOf(*new(T))
	out := make([]byte, len(c)*sz)
	for i, v := range c {
		writeT[T](v, out[i*sz:(i+1)*sz])
	}
	return out
}

func (g *genericGeometry[T]) decodeRange(raw []byte) (lo, hi []T, err error) {
	sz := sizeOf(*new(T))
	want := 2 * g.dimNum * sz
	if len(raw) != want {
		return nil, nil, ErrDeserialize.New("range: want %d bytes, got %d", want, len(raw))
	}
	lo = make([]T, g.dimNum)
	hi = make([]T, g.dimNum)
	for i := 0; i < g.dimNum; i++ {
		lo[i] = readT[T](raw[2*i*sz : 2*i*sz+sz])
		hi[i] = readT[T](raw[(2*i+1)*sz : (2*i+1)*sz+sz])
	}
	return lo, hi, nil
}

func (g *genericGeometry[T]) encodeRange(lo, hi []T) []byte {
	sz := sizeOf(*new(T))
	out := make([]byte, 2*len(lo)*sz)
	for i := range lo {
		writeT[T](lo[i], out[2*i*sz:2*i*sz+sz])
		writeT[T](hi[i], out[(2*i+1)*sz:(2*i+1)*sz+sz])
	}
	return out
}

func (g *genericGeometry[T]) inDomain(c []T) bool {
	for d := 0; d < g.dimNum; d++ {
		if c[d] < g.domainLo[d] || c[d] > g.domainHi[d] {
			return false
		}
	}
	return true
}

func (g *genericGeometry[T]) tileCoordsOf(c []T) []int64 {
	tc := make([]int64, g.dimNum)
	for d := 0; d < g.dimNum; d++ {
		tc[d] = (toInt64(c[d]) - toInt64(g.domainLo[d])) / toInt64(g.tileExtent[d])
	}
	return tc
}

func (g *genericGeometry[T]) tileOffsets() []uint64 {
	if g.tileOrder == datatype.RowMajor {
		return g.tileOffsetsRow
	}
	return g.tileOffsetsCol
}

func (g *genericGeometry[T]) cellOffsets() []uint64 {
	if g.cellOrder == datatype.RowMajor {
		return g.cellOffsetsRow
	}
	return g.cellOffsetsCol
}

func (g *genericGeometry[T]) CellNumPerTile() uint64 {
	if g.arrayType != datatype.Dense {
		return 0
	}
	n := uint64(1)
	for _, e := range g.tileExtent {
		n *= uint64(toInt64(e))
	}
	return n
}

func (g *genericGeometry[T]) TileDomain() ([]int64, []int64, bool) {
	if g.arrayType != datatype.Dense {
		return nil, nil, false
	}
	lo := make([]int64, g.dimNum)
	hi := make([]int64, g.dimNum)
	for d := 0; d < g.dimNum; d++ {
		hi[d] = int64(g.tileCount[d]) - 1
	}
	return lo, hi, true
}

func (g *genericGeometry[T]) CellOrderCmp(araw, braw []byte) (int, error) {
	a, err := g.decodeCoords(araw)
	if err != nil {
		return 0, err
	}
	b, err := g.decodeCoords(braw)
	if err != nil {
		return 0, err
	}
	return lexCmp(a, b, g.cellOrder), nil
}

func (g *genericGeometry[T]) TileOrderCmp(araw, braw []byte) (int, error) {
	if g.arrayType == datatype.Sparse {
		return 0, nil
	}
	a, err := g.decodeCoords(araw)
	if err != nil {
		return 0, err
	}
	b, err := g.decodeCoords(braw)
	if err != nil {
		return 0, err
	}
	return lexCmp(g.tileCoordsOf(a), g.tileCoordsOf(b), g.tileOrder), nil
}

func (g *genericGeometry[T]) TileCellOrderCmp(araw, braw []byte) (int, error) {
	c, err := g.TileOrderCmp(araw, braw)
	if err != nil {
		return 0, err
	}
	if c != 0 {
		return c, nil
	}
	return g.CellOrderCmp(araw, braw)
}

func (g *genericGeometry[T]) TileID(raw []byte) (uint64, error) {
	if g.arrayType == datatype.Sparse {
		return 0, nil
	}
	c, err := g.decodeCoords(raw)
	if err != nil {
		return 0, err
	}
	if !g.inDomain(c) {
		return 0, ErrDomain.New("coordinates outside array domain")
	}
	tc := g.tileCoordsOf(c)
	offsets := g.tileOffsets()
	var id uint64
	for d := 0; d < g.dimNum; d++ {
		id += uint64(tc[d]) * offsets[d]
	}
	return id, nil
}

func (g *genericGeometry[T]) GetCellPos(raw []byte) (uint64, error) {
	if g.arrayType != datatype.Dense {
		return 0, Error.New("get_cell_pos is only defined for dense arrays")
	}
	c, err := g.decodeCoords(raw)
	if err != nil {
		return 0, err
	}
	if !g.inDomain(c) {
		return 0, ErrDomain.New("coordinates outside array domain")
	}
	offsets := g.cellOffsets()
	var pos uint64
	for d := 0; d < g.dimNum; d++ {
		rem := (toInt64(c[d]) - toInt64(g.domainLo[d])) % toInt64(g.tileExtent[d])
		pos += uint64(rem) * offsets[d]
	}
	return pos, nil
}

func (g *genericGeometry[T]) GetNextCellCoords(domainRaw, cRaw []byte) ([]byte, bool, error) {
	lo, hi, err := g.decodeRange(domainRaw)
	if err != nil {
		return nil, false, err
	}
	c, err := g.decodeCoords(cRaw)
	if err != nil {
		return nil, false, err
	}
	next, ok := stepNext(c, lo, hi, g.cellOrder)
	return g.encodeCoords(next), ok, nil
}

func (g *genericGeometry[T]) GetPreviousCellCoords(domainRaw, cRaw []byte) ([]byte, bool, error) {
	lo, hi, err := g.decodeRange(domainRaw)
	if err != nil {
		return nil, false, err
	}
	c, err := g.decodeCoords(cRaw)
	if err != nil {
		return nil, false, err
	}
	prev, ok := stepPrev(c, lo, hi, g.cellOrder)
	return g.encodeCoords(prev), ok, nil
}

func (g *genericGeometry[T]) GetNextTileCoords(domainRaw, cRaw []byte) ([]byte, bool, error) {
	if g.arrayType != datatype.Dense {
		return nil, false, Error.New("get_next_tile_coords is only defined for dense arrays")
	}
	tileDomainRaw, _, err := g.GetSubarrayTileDomain(domainRaw)
	if err != nil {
		return nil, false, err
	}
	tlo, thi, err := decodeInt64Range(tileDomainRaw, g.dimNum)
	if err != nil {
		return nil, false, err
	}
	tc, err := decodeInt64Coords(cRaw, g.dimNum)
	if err != nil {
		return nil, false, err
	}
	next, ok := stepNext(tc, tlo, thi, g.tileOrder)
	return encodeInt64Coords(next), ok, nil
}

func (g *genericGeometry[T]) GetTilePos(raw []byte) (uint64, error) {
	if g.arrayType != datatype.Dense {
		return 0, Error.New("get_tile_pos is only defined for dense arrays")
	}
	tc, err := decodeInt64Coords(raw, g.dimNum)
	if err != nil {
		return 0, err
	}
	offsets := g.tileOffsets()
	var pos uint64
	for d := range tc {
		pos += uint64(tc[d]) * offsets[d]
	}
	return pos, nil
}

func (g *genericGeometry[T]) GetTilePosInDomain(domainRaw, tcRaw []byte) (uint64, error) {
	if g.arrayType != datatype.Dense {
		return 0, Error.New("get_tile_pos is only defined for dense arrays")
	}
	lo, hi, err := g.decodeRange(domainRaw)
	if err != nil {
		return 0, err
	}
	counts := make([]uint64, g.dimNum)
	for d := 0; d < g.dimNum; d++ {
		span := toInt64(hi[d]) - toInt64(lo[d]) + 1
		ext := toInt64(g.tileExtent[d])
		counts[d] = uint64((span + ext - 1) / ext)
	}
	offsets := computeStrides(counts, g.tileOrder)
	tc, err := decodeInt64Coords(tcRaw, g.dimNum)
	if err != nil {
		return 0, err
	}
	var pos uint64
	for d := range tc {
		pos += uint64(tc[d]) * offsets[d]
	}
	return pos, nil
}

func (g *genericGeometry[T]) GetSubarrayTileDomain(subarrayRaw []byte) ([]byte, []byte, error) {
	if g.arrayType != datatype.Dense {
		return nil, nil, Error.New("get_subarray_tile_domain is only defined for dense arrays")
	}
	lo, hi, err := g.decodeRange(subarrayRaw)
	if err != nil {
		return nil, nil, err
	}
	tlo := make([]int64, g.dimNum)
	thi := make([]int64, g.dimNum)
	subLo := make([]T, g.dimNum)
	subHi := make([]T, g.dimNum)
	for d := 0; d < g.dimNum; d++ {
		dlo, ext := toInt64(g.domainLo[d]), toInt64(g.tileExtent[d])
		tlo[d] = (toInt64(lo[d]) - dlo) / ext
		thi[d] = (toInt64(hi[d]) - dlo) / ext
		tileStart := dlo + tlo[d]*ext
		tileEnd := tileStart + ext - 1
		localLo := toInt64(lo[d]) - tileStart
		localHi := minInt64(toInt64(hi[d]), tileEnd) - tileStart
		subLo[d] = T(localLo)
		subHi[d] = T(localHi)
	}
	return encodeInt64Range(tlo, thi), g.encodeRange(subLo, subHi), nil
}

func (g *genericGeometry[T]) IsContainedInTileSlabRow(rangeRaw []byte) (bool, error) {
	return g.isContainedInTileSlab(rangeRaw, 0)
}

func (g *genericGeometry[T]) IsContainedInTileSlabCol(rangeRaw []byte) (bool, error) {
	return g.isContainedInTileSlab(rangeRaw, g.dimNum-1)
}

func (g *genericGeometry[T]) isContainedInTileSlab(rangeRaw []byte, dim int) (bool, error) {
	if g.arrayType != datatype.Dense {
		return false, Error.New("tile slab containment is only defined for dense arrays")
	}
	lo, hi, err := g.decodeRange(rangeRaw)
	if err != nil {
		return false, err
	}
	dlo, ext := toInt64(g.domainLo[dim]), toInt64(g.tileExtent[dim])
	tLo := (toInt64(lo[dim]) - dlo) / ext
	tHi := (toInt64(hi[dim]) - dlo) / ext
	return tLo == tHi, nil
}

func (g *genericGeometry[T]) SubarrayOverlap(araw, braw []byte) ([]byte, Overlap, error) {
	aLo, aHi, err := g.decodeRange(araw)
	if err != nil {
		return nil, OverlapNone, err
	}
	bLo, bHi, err := g.decodeRange(braw)
	if err != nil {
		return nil, OverlapNone, err
	}

	outLo := make([]T, g.dimNum)
	outHi := make([]T, g.dimNum)
	full := true
	empty := false
	for d := 0; d < g.dimNum; d++ {
		lo := maxT(aLo[d], bLo[d])
		hi := minT(aHi[d], bHi[d])
		if lo > hi {
			empty = true
		}
		outLo[d], outHi[d] = lo, hi
		if aLo[d] > bLo[d] || aHi[d] < bHi[d] {
			full = false
		}
	}
	if empty {
		return g.encodeRange(make([]T, g.dimNum), make([]T, g.dimNum)), OverlapNone, nil
	}
	if full {
		return g.encodeRange(outLo, outHi), OverlapFull, nil
	}

	fastest := g.dimNum - 1
	if g.tileOrder == datatype.ColMajor {
		fastest = 0
	}
	contiguous := true
	for d := 0; d < g.dimNum; d++ {
		if d == fastest {
			continue
		}
		if outLo[d] != bLo[d] || outHi[d] != bHi[d] {
			contiguous = false
			break
		}
	}
	if contiguous {
		return g.encodeRange(outLo, outHi), OverlapPartialContiguous, nil
	}
	return g.encodeRange(outLo, outHi), OverlapPartial, nil
}

func (g *genericGeometry[T]) TileNum() uint64 {
	if g.arrayType != datatype.Dense {
		return 0
	}
	n := uint64(1)
	for _, c := range g.tileCount {
		n *= c
	}
	return n
}

func (g *genericGeometry[T]) TileNumInDomain(domainRaw []byte) (uint64, error) {
	if g.arrayType != datatype.Dense {
		return 0, nil
	}
	lo, hi, err := g.decodeRange(domainRaw)
	if err != nil {
		return 0, err
	}
	n := uint64(1)
	for d := 0; d < g.dimNum; d++ {
		span := toInt64(hi[d]) - toInt64(lo[d]) + 1
		ext := toInt64(g.tileExtent[d])
		n *= uint64((span + ext - 1) / ext)
	}
	return n, nil
}

func (g *genericGeometry[T]) TileNumInRange(rangeRaw []byte) (uint64, error) {
	return g.TileNumInDomain(rangeRaw)
}

func (g *genericGeometry[T]) ExpandDomain(dRaw []byte) ([]byte, error) {
	if g.arrayType != datatype.Dense {
		return nil, Error.New("expand_domain is only defined for dense arrays")
	}
	lo, hi, err := g.decodeRange(dRaw)
	if err != nil {
		return nil, err
	}
	outLo := make([]T, g.dimNum)
	outHi := make([]T, g.dimNum)
	for d := 0; d < g.dimNum; d++ {
		dlo, ext := toInt64(g.domainLo[d]), toInt64(g.tileExtent[d])
		loRel := toInt64(lo[d]) - dlo
		hiRel := toInt64(hi[d]) - dlo
		expLo := (loRel / ext) * ext
		expHi := ((hiRel/ext)+1)*ext - 1
		if dlo+expHi > toInt64(g.domainHi[d]) {
			expHi = toInt64(g.domainHi[d]) - dlo
		}
		outLo[d] = T(dlo + expLo)
		outHi[d] = T(dlo + expHi)
	}
	return g.encodeRange(outLo, outHi), nil
}

// -- free helper functions shared by every instantiation --

func isFloatType[T Number]() bool {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

func toInt64[T Number](v T) int64 { return int64(v) }

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxT[T Number](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func minT[T Number](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func cmpT[T Number](a, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func lexCmp[T Number](a, b []T, order datatype.Layout) int {
	n := len(a)
	if order == datatype.RowMajor {
		for d := 0; d < n; d++ {
			if c := cmpT(a[d], b[d]); c != 0 {
				return c
			}
		}
	} else {
		for d := n - 1; d >= 0; d-- {
			if c := cmpT(a[d], b[d]); c != 0 {
				return c
			}
		}
	}
	return 0
}

// stepNext advances pos by one position under order within [lo, hi]
// (inclusive), wrapping each carried dimension back to lo. ok is false when
// the step wraps every dimension, i.e. pos was the last position.
func stepNext[T Number](pos, lo, hi []T, order datatype.Layout) ([]T, bool) {
	out := append([]T(nil), pos...)
	n := len(out)
	if order == datatype.RowMajor {
		for d := n - 1; d >= 0; d-- {
			if out[d] < hi[d] {
				out[d]++
				return out, true
			}
			out[d] = lo[d]
		}
	} else {
		for d := 0; d < n; d++ {
			if out[d] < hi[d] {
				out[d]++
				return out, true
			}
			out[d] = lo[d]
		}
	}
	return out, false
}

// stepPrev is the mirror of stepNext, moving backward under order.
func stepPrev[T Number](pos, lo, hi []T, order datatype.Layout) ([]T, bool) {
	out := append([]T(nil), pos...)
	n := len(out)
	if order == datatype.RowMajor {
		for d := n - 1; d >= 0; d-- {
			if out[d] > lo[d] {
				out[d]--
				return out, true
			}
			out[d] = hi[d]
		}
	} else {
		for d := 0; d < n; d++ {
			if out[d] > lo[d] {
				out[d]--
				return out, true
			}
			out[d] = hi[d]
		}
	}
	return out, false
}

// computeStrides returns the row-/col-major strides over a domain with the
// given per-dimension element counts.
func computeStrides(counts []uint64, order datatype.Layout) []uint64 {
	n := len(counts)
	strides := make([]uint64, n)
	if n == 0 {
		return strides
	}
	if order == datatype.RowMajor {
		strides[n-1] = 1
		for d := n - 2; d >= 0; d-- {
			strides[d] = strides[d+1] * counts[d+1]
		}
	} else {
		strides[0] = 1
		for d := 1; d < n; d++ {
			strides[d] = strides[d-1] * counts[d-1]
		}
	}
	return strides
}

func decodeInt64Coords(raw []byte, n int) ([]int64, error) {
	if len(raw) != n*8 {
		return nil, ErrDeserialize.New("tile coords: want %d bytes, got %d", n*8, len(raw))
	}
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = int64(binary.LittleEndian.Uint64(raw[i*8 : i*8+8]))
	}
	return out, nil
}

func encodeInt64Coords(c []int64) []byte {
	out := make([]byte, len(c)*8)
	for i, v := range c {
		binary.LittleEndian.PutUint64(out[i*8:i*8+8], uint64(v))
	}
	return out
}

func decodeInt64Range(raw []byte, n int) (lo, hi []int64, err error) {
	if len(raw) != 2*n*8 {
		return nil, nil, ErrDeserialize.New("tile domain: want %d bytes, got %d", 2*n*8, len(raw))
	}
	lo = make([]int64, n)
	hi = make([]int64, n)
	for i := 0; i < n; i++ {
		lo[i] = int64(binary.LittleEndian.Uint64(raw[2*i*8 : 2*i*8+8]))
		hi[i] = int64(binary.LittleEndian.Uint64(raw[(2*i+1)*8 : (2*i+1)*8+8]))
	}
	return lo, hi, nil
}

func encodeInt64Range(lo, hi []int64) []byte {
	n := len(lo)
	out := make([]byte, 2*n*8)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(out[2*i*8:2*i*8+8], uint64(lo[i]))
		binary.LittleEndian.PutUint64(out[(2*i+1)*8:(2*i+1)*8+8], uint64(hi[i]))
	}
	return out
}
