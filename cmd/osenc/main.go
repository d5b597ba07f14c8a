package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/beetlebugorg/osenc/internal/log"
	"github.com/beetlebugorg/osenc/pkg/osenc"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "osenc",
	Short: "Inspect OSENC chart cells",
	Long: `osenc reads OSENC files, the pre-processed binary chart cells written
by chart plotters from S-57 ENC data.

It can print the outline of a cell, dump its objects and attributes, and
index a directory of cells for region queries.`,
	PersistentPreRunE: setupLogging,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log decoder diagnostics to stderr")
	rootCmd.PersistentFlags().String("charset", "", "Encoding of attribute text, e.g. iso-8859-1 (default: utf-8)")

	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	log.SetLogger(logger)
	return nil
}

// outline command
var outlineCmd = &cobra.Command{
	Use:   "outline <cell.S57>...",
	Short: "Print the outline of one or more cells",
	Long: `Print the coverage corners, native scale and dates of each cell.

Only the header records are read, so this is fast on large cells.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOutline,
}

func init() {
	outlineCmd.Flags().Bool("json", false, "Output as JSON")
}

type outlineJSON struct {
	Path      string        `json:"path"`
	Cell      string        `json:"cell"`
	Edition   int           `json:"edition"`
	Update    int           `json:"update"`
	Scale     uint32        `json:"scale"`
	Published string        `json:"published"`
	Updated   string        `json:"updated"`
	Corners   [4]cornerJSON `json:"corners"`
}

type cornerJSON struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func runOutline(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	p := osenc.NewParser()

	var out []outlineJSON
	for _, path := range args {
		h, err := p.ReadHeader(path)
		if err != nil {
			return err
		}
		o, err := h.Outline()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		entry := outlineJSON{
			Path:      path,
			Cell:      h.CellName,
			Edition:   int(h.Edition),
			Update:    int(h.UpdateNumber),
			Scale:     o.Scale,
			Published: o.Published.Format("2006-01-02"),
			Updated:   o.Updated.Format("2006-01-02"),
		}
		for i, c := range o.Corners() {
			entry.Corners[i] = cornerJSON{Lat: c.Lat, Lon: c.Lon}
		}

		if jsonOutput {
			out = append(out, entry)
			continue
		}
		fmt.Printf("%s (%s)\n", entry.Cell, path)
		fmt.Printf("  Edition:   %d update %d\n", entry.Edition, entry.Update)
		fmt.Printf("  Scale:     1:%d (%s)\n", entry.Scale, osenc.UsageBandFromCellName(h.CellName))
		fmt.Printf("  Published: %s\n", entry.Published)
		fmt.Printf("  Updated:   %s\n", entry.Updated)
		for i, name := range []string{"SW", "SE", "NE", "NW"} {
			fmt.Printf("  %s:        %.6f, %.6f\n", name, entry.Corners[i].Lat, entry.Corners[i].Lon)
		}
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}
	return nil
}

// dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <cell.S57>",
	Short: "Dump the objects of a cell",
	Long: `Decode a whole cell and print every object with its class, geometry,
bounding box and attributes.

Use --class to restrict the output to some object classes. With --mercator
point objects are projected around the centre of the cell, the reference
point of the edge and node vertices, so all coordinates print in metres.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringSlice("class", nil, "Object classes to keep, e.g. DEPARE,LIGHTS")
	dumpCmd.Flags().Bool("mercator", false, "Project points with a simple mercator at the cell centre")
	dumpCmd.Flags().Bool("summary", false, "Print only object counts")
	dumpCmd.Flags().Bool("no-validate", false, "Skip the buffer reference check")
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]
	charset, _ := cmd.Flags().GetString("charset")
	classes, _ := cmd.Flags().GetStringSlice("class")
	mercator, _ := cmd.Flags().GetBool("mercator")
	summary, _ := cmd.Flags().GetBool("summary")
	noValidate, _ := cmd.Flags().GetBool("no-validate")

	p := osenc.NewParser()
	opts := osenc.DefaultParseOptions()
	opts.Charset = charset
	opts.ObjectClassFilter = classes
	opts.ValidateGeometry = !noValidate

	if mercator {
		o, err := p.ReadOutline(path)
		if err != nil {
			return err
		}
		opts.Projection = cellMercator(o)
	}

	chart, err := p.ParseWithOptions(path, opts)
	if err != nil {
		return err
	}

	fmt.Printf("%s: edition %d update %d, scale 1:%d, %s\n",
		chart.CellName(), chart.Edition(), chart.UpdateNumber(), chart.Scale(), chart.UsageBand())
	fmt.Printf("%d objects, %d vertices, %d indices\n",
		chart.ObjectCount(), chart.VertexCount(), len(chart.Indices()))

	counts := chart.CountByGeometry()
	for _, t := range []osenc.GeometryType{
		osenc.GeometryTypePoint, osenc.GeometryTypeMultiPoint,
		osenc.GeometryTypeLine, osenc.GeometryTypeArea, osenc.GeometryTypeMeta,
	} {
		fmt.Printf("  %-10s %d\n", t, counts[t])
	}
	if summary {
		return nil
	}

	fmt.Println()
	for _, o := range chart.Objects() {
		fmt.Printf("%5d %-8s %-10s %s\n", o.ID, o.ClassName(), geometryType(o), formatBBox(o.BBox))
		if centre, ok := geometryCentre(o.Geometry); ok {
			fmt.Printf("      centre %.3f, %.3f\n", centre.X, centre.Y)
		}
		for _, line := range formatAttributes(o) {
			fmt.Printf("      %s\n", line)
		}
	}
	return nil
}

// cellMercator centres a mercator on the middle of the cell outline.
func cellMercator(o osenc.Outline) *osenc.SimpleMercator {
	b := osenc.OutlineBounds(o)
	return osenc.NewSimpleMercator((b.MinLon+b.MaxLon)/2, (b.MinLat+b.MaxLat)/2)
}

func geometryType(o *osenc.Object) string {
	if o.Geometry == nil {
		return "-"
	}
	return o.Geometry.Type().String()
}

func geometryCentre(g osenc.Geometry) (osenc.Point, bool) {
	switch g := g.(type) {
	case *osenc.LineGeometry:
		return g.Centre, true
	case *osenc.AreaGeometry:
		return g.Centre, true
	case *osenc.PointGeometry:
		return g.Point, true
	}
	return osenc.Point{}, false
}

func formatBBox(b osenc.BBox) string {
	if b.IsEmpty() {
		return "(no extent)"
	}
	return fmt.Sprintf("[%.3f %.3f, %.3f %.3f]", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// formatAttributes returns "ACRONYM=value" lines sorted by acronym.
func formatAttributes(o *osenc.Object) []string {
	lines := make([]string, 0, len(o.Attributes))
	for code, a := range o.Attributes {
		lines = append(lines, osenc.AttributeCodeToString(code)+"="+formatValue(a))
	}
	sort.Strings(lines)
	return lines
}

func formatValue(a osenc.Attribute) string {
	switch v := a.Value().(type) {
	case nil:
		return "(none)"
	case string:
		return strconv.Quote(v)
	case []int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ",")
	case []float64:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

// index command
var indexCmd = &cobra.Command{
	Use:   "index <dir>",
	Short: "Index a directory of cells and query it",
	Long: `Read the outline of every cell under a directory and list them in
priority order: larger scale first, then newer edition and update.

With --bbox only the cells intersecting the box are listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("bbox", "", "Query box as minlon,minlat,maxlon,maxlat")
	indexCmd.Flags().Int("workers", 0, "Parallel outline readers (default: number of CPUs)")
	indexCmd.Flags().Int("min-scale", 0, "Only cells at this scale or larger")
	indexCmd.Flags().Int("max-scale", 0, "Only cells at this scale or smaller")
	indexCmd.Flags().Bool("strict", false, "Fail on the first unreadable cell")
}

func runIndex(cmd *cobra.Command, args []string) error {
	root := args[0]
	bbox, _ := cmd.Flags().GetString("bbox")
	workers, _ := cmd.Flags().GetInt("workers")
	minScale, _ := cmd.Flags().GetInt("min-scale")
	maxScale, _ := cmd.Flags().GetInt("max-scale")
	strict, _ := cmd.Flags().GetBool("strict")

	opts := osenc.DefaultLoadOptions()
	if workers > 0 {
		opts.Workers = workers
	}
	opts.SkipErrors = !strict

	idx, err := osenc.BuildIndexFromDir(root, osenc.NewParser(), opts)
	if err != nil {
		return err
	}

	bounds := idx.Bounds()
	if bbox != "" {
		bounds, err = parseBounds(bbox)
		if err != nil {
			return err
		}
	}

	entries := idx.Query(bounds, osenc.QueryOptions{MinScale: minScale, MaxScale: maxScale})
	fmt.Printf("%d of %d cells\n", len(entries), idx.Count())
	for _, e := range entries {
		fmt.Printf("%-10s 1:%-8d ed %-3d upd %-3d %-8s [%.4f %.4f, %.4f %.4f] %s\n",
			e.Name, e.Scale, e.Edition, e.UpdateNumber, e.UsageBand,
			e.GeoBounds.MinLon, e.GeoBounds.MinLat, e.GeoBounds.MaxLon, e.GeoBounds.MaxLat,
			e.Path)
	}
	return nil
}

func parseBounds(s string) (osenc.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return osenc.Bounds{}, fmt.Errorf("invalid bbox %q: want minlon,minlat,maxlon,maxlat", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return osenc.Bounds{}, fmt.Errorf("invalid bbox %q: %w", s, err)
		}
		v[i] = f
	}
	return osenc.Bounds{MinLon: v[0], MinLat: v[1], MaxLon: v[2], MaxLat: v[3]}, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("osenc version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
	},
}
