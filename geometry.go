package life

// QuadVertexCount is the number of vertices in one cell quad.
const QuadVertexCount = 6

// QuadVertices returns two triangles covering a square of half-extent
// scale, as x,y pairs in normalized device coordinates. The render stage
// shrinks and translates the square into each cell.
func QuadVertices(scale float32) [QuadVertexCount * 2]float32 {
	s := scale
	return [QuadVertexCount * 2]float32{
		-s, -s,
		s, -s,
		s, s,

		-s, -s,
		s, s,
		-s, s,
	}
}
