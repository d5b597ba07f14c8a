package osenc_test

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/osenc/pkg/osenc"
)

func Example() {
	parser := osenc.NewParser()

	chart, err := parser.Parse("SE3AQ001.S57")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Chart: %s\n", chart.CellName())
	fmt.Printf("Edition: %d.%d\n", chart.Edition(), chart.UpdateNumber())
	fmt.Printf("Objects: %d\n", chart.ObjectCount())

	if cov, ok := chart.Coverage(); ok {
		fmt.Printf("Coverage: [%.4f,%.4f] to [%.4f,%.4f]\n",
			cov.MinLon, cov.MinLat, cov.MaxLon, cov.MaxLat)
	}
}

func ExampleChart_ObjectsInBounds() {
	mercator := osenc.NewSimpleMercator(18.0, 59.3)

	opts := osenc.DefaultParseOptions()
	opts.Projection = mercator
	chart, err := osenc.NewParser().ParseWithOptions("SE3AQ001.S57", opts)
	if err != nil {
		log.Fatal(err)
	}

	viewport := osenc.Bounds{MinLon: 17.9, MaxLon: 18.1, MinLat: 59.25, MaxLat: 59.35}
	for _, obj := range chart.ObjectsInBounds(osenc.BBoxOf(viewport, mercator)) {
		name := ""
		if a, ok := obj.AttributeByName("OBJNAM"); ok {
			name = fmt.Sprint(a.Value())
		}
		fmt.Println(obj.ID, obj.ClassName(), name)
	}
}

func ExampleParser_ReadOutline() {
	outline, err := osenc.NewParser().ReadOutline("zip://charts.zip!ENC_ROOT/SE3AQ001.S57")
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range outline.Corners() {
		fmt.Printf("%.5f %.5f\n", c.Lat, c.Lon)
	}
}

func ExampleChartLoader() {
	idx, err := osenc.BuildIndexFromDir("ENC_ROOT", osenc.NewParser(), osenc.DefaultLoadOptions())
	if err != nil {
		log.Fatal(err)
	}

	loader := osenc.NewChartLoader(idx, osenc.DefaultLoaderOptions())
	viewport := osenc.Bounds{MinLon: 17.9, MaxLon: 18.1, MinLat: 59.25, MaxLat: 59.35}

	charts, err := loader.ChartsForViewport(viewport, 13)
	if err != nil {
		log.Fatal(err)
	}
	for _, c := range charts {
		fmt.Println(c.CellName(), c.UsageBand(), c.Scale())
	}
	fmt.Printf("cache hit rate %.2f\n", loader.Cache().Stats().HitRate())
}
