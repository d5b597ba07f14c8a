// Package osenc reads OSENC chart cells, the pre-processed binary form of
// S-57 Electronic Navigational Charts written by chart plotters.
//
// A decoded chart holds a shared vertex buffer of float32 x/y pairs, an
// index buffer for line primitives, and the list of chart objects. Each
// object carries its S-57 class, attributes, one geometry and a bounding
// box. Geometry is ready for a GPU: lines are line strips with adjacency,
// areas are triangle patches plus their boundary lines.
//
// # Basic Usage
//
//	parser := osenc.NewParser()
//	chart, err := parser.Parse("SE3AQ001.S57")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%s: %d objects at 1:%d\n",
//	    chart.CellName(), chart.ObjectCount(), chart.Scale())
//
// # Outlines
//
// The header records at the start of a cell say where it lies and at which
// scale, without decoding any feature:
//
//	outline, err := parser.ReadOutline("SE3AQ001.S57")
//	fmt.Println(outline.SW, outline.NE, outline.Scale)
//
// # Projections
//
// Point geometry is stored as WGS-84 and converted with the Projection from
// ParseOptions. Edge and node tables are already projected by the producer
// around the centre of the cell, so the projection must share that
// reference:
//
//	b := osenc.OutlineBounds(outline)
//	opts := osenc.DefaultParseOptions()
//	opts.Projection = osenc.NewSimpleMercator((b.MinLon+b.MaxLon)/2, (b.MinLat+b.MaxLat)/2)
//	chart, err := parser.ParseWithOptions("SE3AQ001.S57", opts)
//
// # Accessing Object Data
//
//	for _, o := range chart.Objects() {
//	    switch g := o.Geometry.(type) {
//	    case *osenc.AreaGeometry:
//	        for _, e := range g.Triangles {
//	            first := g.VertexOffset + e.Offset
//	            // draw e.Count vertices from first in mode e.Mode
//	        }
//	    case *osenc.LineGeometry:
//	        for _, e := range g.Elements {
//	            idx := chart.Indices()[e.Offset : e.Offset+e.Count]
//	            // draw idx as a line strip with adjacency
//	        }
//	    }
//
//	    if depth, ok := o.AttributeByName("DRVAL1"); ok {
//	        // Apply depth-based colour
//	    }
//	}
//
// # Chart Collections
//
// ChartIndex catalogues a directory of cells by outline, ChartCache keeps
// decoded charts in memory, and ChartLoader combines the two for
// viewport-driven loading.
package osenc
