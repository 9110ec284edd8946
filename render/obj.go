package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// OBJGroup is a named set of triangles written as one OBJ object.
type OBJGroup struct {
	Name      string
	Triangles []Triangle3
}

// OBJStats counts what WriteOBJ wrote.
type OBJStats struct {
	Objects, Vertices, Faces int
}

// WriteOBJ writes the groups as Wavefront OBJ, one "o" statement per group.
// Vertices that coincide exactly are written once and shared between
// faces of all groups. Empty groups are skipped.
func WriteOBJ(w io.Writer, groups []OBJGroup) (OBJStats, error) {
	var stats OBJStats
	bw := bufio.NewWriter(w)
	index := make(map[r3.Vec]int)
	fmt.Fprintln(bw, "# pumpsdf")
	for _, g := range groups {
		if len(g.Triangles) == 0 {
			continue
		}
		stats.Objects++
		fmt.Fprintf(bw, "o %s\n", objName(g.Name))
		var face [3]int
		for _, t := range g.Triangles {
			for j, v := range t.V {
				i, ok := index[v]
				if !ok {
					stats.Vertices++
					i = stats.Vertices
					index[v] = i
					fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
				}
				face[j] = i
			}
			if face[0] == face[1] || face[1] == face[2] || face[2] == face[0] {
				continue
			}
			stats.Faces++
			fmt.Fprintf(bw, "f %d %d %d\n", face[0], face[1], face[2])
		}
	}
	if stats.Faces == 0 {
		return stats, ErrEmptyMesh
	}
	return stats, bw.Flush()
}

// objName replaces whitespace, which OBJ names cannot hold.
func objName(s string) string {
	if s == "" {
		return "unnamed"
	}
	return strings.Join(strings.Fields(s), "_")
}
