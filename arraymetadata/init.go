// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package arraymetadata

import "github.com/arraydb/storagecore/datatype"

// Init freezes the schema: it verifies every invariant (Check), then
// computes the derived geometry (cell_num_per_tile, cell_sizes,
// coords_size, tile_domain, tile_offsets_row/col). After Init
// returns successfully the ArrayMetadata is read-only for the remainder of
// its lifetime (invariant I3); further mutation panics.
func (m *ArrayMetadata) Init() error {
	if m.initialized {
		return ErrSchema.New("array %q: already initialized", m.arrayURI)
	}
	if err := m.Check(); err != nil {
		return err
	}

	g, err := buildGeometry(m)
	if err != nil {
		return err
	}

	m.cellSizes = make([]uint64, len(m.attrs))
	for i, a := range m.attrs {
		if a.IsVar() {
			m.cellSizes[i] = datatype.VarSentinelSize
		} else {
			m.cellSizes[i] = a.Datatype.Size() * uint64(a.CellValNum)
		}
	}

	m.coordsSize = g.CoordsSize()
	m.cellNumPerTile = g.CellNumPerTile()
	m.geometry = g
	m.initialized = true
	return nil
}
