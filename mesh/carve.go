package mesh

// MarkVerticesToDelete finalizes indicesToDelete from the overlaps recorded
// so far.
//
// The "whole mesh covered" shortcut compares the overlap count against the
// mesh's total index count rather than its unique vertex count — a
// dimensionally mismatched comparison carried over unchanged rather than
// silently corrected (see DESIGN.md).
func (mc *MeshContainer) MarkVerticesToDelete() {
	if len(mc.overlappingVertexIdxs) == 0 {
		return
	}
	if len(mc.overlappingVertexIdxs) == len(mc.Tri.Indices) {
		mc.toBeDeleted = true
		return
	}

	d := make(map[uint32]struct{}, len(mc.overlappingVertexIdxs))
	for _, idx := range mc.overlappingVertexIdxs {
		d[idx] = struct{}{}
	}
	keep := make(map[uint32]struct{})

	for t := 0; t+2 < len(mc.Tri.Indices); t += 3 {
		corners := [3]uint32{mc.Tri.Indices[t], mc.Tri.Indices[t+1], mc.Tri.Indices[t+2]}
		inCount := 0
		for _, c := range corners {
			if _, ok := d[c]; ok {
				inCount++
			}
		}
		if inCount == 0 || inCount == 3 {
			continue
		}
		for _, c := range corners {
			if _, ok := d[c]; ok {
				keep[c] = struct{}{}
			}
		}
	}

	for c := range keep {
		delete(d, c)
	}
	mc.indicesToDelete = d
}

// DoDeleteVertices rewrites positions, UVs, and indices, dropping every
// vertex in indicesToDelete and any triangle that referenced one, and
// discards normals (carving invalidates them).
func (mc *MeshContainer) DoDeleteVertices() {
	oldPositions := mc.Tri.Positions
	oldUVs := mc.Tri.UVs
	hasUVs := len(oldUVs) > 0

	remap := make([]int32, len(oldPositions))
	for i := range remap {
		remap[i] = -1
	}

	newPositions := make([]Vec3, 0, len(oldPositions))
	var newUVs []Vec2
	if hasUVs {
		newUVs = make([]Vec2, 0, len(oldUVs))
	}

	for i, p := range oldPositions {
		if _, deleted := mc.indicesToDelete[uint32(i)]; deleted {
			continue
		}
		remap[i] = int32(len(newPositions))
		newPositions = append(newPositions, p)
		if hasUVs {
			newUVs = append(newUVs, oldUVs[i])
		}
	}

	newIndices := make([]uint32, 0, len(mc.Tri.Indices))
	for t := 0; t+2 < len(mc.Tri.Indices); t += 3 {
		a := remap[mc.Tri.Indices[t]]
		b := remap[mc.Tri.Indices[t+1]]
		c := remap[mc.Tri.Indices[t+2]]
		if a < 0 || b < 0 || c < 0 {
			continue
		}
		if a == b || b == c || a == c {
			continue
		}
		newIndices = append(newIndices, uint32(a), uint32(b), uint32(c))
	}

	mc.Tri.Positions = newPositions
	mc.Tri.Indices = newIndices
	if hasUVs {
		mc.Tri.UVs = newUVs
	} else {
		mc.Tri.UVs = nil
	}
	mc.Tri.Normals = nil
}
