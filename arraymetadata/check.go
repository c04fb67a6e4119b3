// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package arraymetadata

import "github.com/arraydb/storagecore/datatype"

// Check verifies every schema invariant. It may be called at any time,
// including before Init (e.g. to validate a partially built schema), and
// Init always calls it before computing the derived fields.
func (m *ArrayMetadata) Check() error {
	if len(m.dims) == 0 {
		return ErrSchema.New("array %q: dim_num must be >= 1", m.arrayURI)
	}
	if len(m.attrs) == 0 {
		return ErrSchema.New("array %q: attribute_num must be >= 1", m.arrayURI)
	}
	if m.capacity == 0 {
		return ErrSchema.New("array %q: capacity must be > 0", m.arrayURI)
	}

	coordsType := m.dims[0].Datatype
	for _, d := range m.dims {
		if !d.Datatype.IsValid() {
			return ErrSchema.New("array %q: dimension %q has invalid datatype", m.arrayURI, d.Name)
		}
		if d.Datatype != coordsType {
			return ErrSchema.New("array %q: dimension %q datatype differs from dimension 0", m.arrayURI, d.Name)
		}
		if len(d.Lo) != int(d.Datatype.Size()) || len(d.Hi) != int(d.Datatype.Size()) {
			return ErrSchema.New("array %q: dimension %q domain value size mismatch", m.arrayURI, d.Name)
		}
		if m.arrayType == datatype.Dense {
			if !d.HasTileExtent {
				return ErrSchema.New("array %q: dimension %q: dense arrays require a tile extent", m.arrayURI, d.Name)
			}
			if len(d.TileExtent) != int(d.Datatype.Size()) {
				return ErrSchema.New("array %q: dimension %q tile extent size mismatch", m.arrayURI, d.Name)
			}
		}
	}

	// invariant I1: attribute names unique and distinct from the reserved
	// coordinates name.
	seen := make(map[string]bool, len(m.attrs))
	for _, a := range m.attrs {
		if a.Name == CoordsName {
			return ErrSchema.New("array %q: attribute name %q is reserved", m.arrayURI, a.Name)
		}
		if seen[a.Name] {
			return ErrSchema.New("array %q: duplicate attribute name %q", m.arrayURI, a.Name)
		}
		seen[a.Name] = true

		if !a.Datatype.IsValid() {
			return ErrSchema.New("array %q: attribute %q has invalid datatype", m.arrayURI, a.Name)
		}
		if a.CellValNum == 0 {
			return ErrSchema.New("array %q: attribute %q cell_val_num must be >= 1 or VAR", m.arrayURI, a.Name)
		}
		if !a.Compressor.IsValid() {
			return ErrSchema.New("array %q: attribute %q has invalid compressor", m.arrayURI, a.Name)
		}
	}

	if !m.coordsCompression.IsValid() {
		return ErrSchema.New("array %q: invalid coords compressor", m.arrayURI)
	}

	switch m.cellOrder {
	case datatype.RowMajor, datatype.ColMajor:
	default:
		return ErrSchema.New("array %q: invalid cell order", m.arrayURI)
	}
	switch m.tileOrder {
	case datatype.RowMajor, datatype.ColMajor:
	default:
		return ErrSchema.New("array %q: invalid tile order", m.arrayURI)
	}

	if m.arrayType == datatype.Dense {
		return m.checkDenseDomainDivisibility()
	}
	return nil
}

// checkDenseDomainDivisibility enforces invariant I2: for dense arrays,
// (hi - lo + 1) mod tile_extent == 0, for every dimension. buildGeometry
// performs this check as part of constructing the monomorphized geometry
// implementation, so this simply surfaces that error.
func (m *ArrayMetadata) checkDenseDomainDivisibility() error {
	_, err := buildGeometry(m)
	return err
}
