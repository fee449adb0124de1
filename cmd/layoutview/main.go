package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/flexwire/layout-engine/engine"
	"github.com/flexwire/layout-engine/protocol"
	"github.com/flexwire/layout-engine/style"
)

func main() {
	var (
		width       = flag.Float64("width", 0, "Root width in layout units (0 = terminal width)")
		height      = flag.Float64("height", 0, "Root height in layout units (0 = terminal height)")
		children    = flag.Int("children", 4, "Number of children in the demo tree")
		direction   = flag.String("dir", "row", "Flex direction (row, column, row-reverse, column-reverse)")
		justify     = flag.String("justify", "space-between", "Justify content (start, end, center, space-between, space-around, space-evenly)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		engine.SetLogger(log)
		defer log.Sync()
	}

	w, h := rootSize(*width, *height)

	if *interactive {
		if err := runInteractive(w, h, *children); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(w, h, *children, *direction, *justify); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootSize fills unset dimensions from the terminal, with a fixed
// fallback when stdout is not a terminal.
func rootSize(w, h float64) (float32, float32) {
	tw, th := 80, 24
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			tw, th = cols, rows
		}
	}
	if w <= 0 {
		w = float64(tw)
	}
	if h <= 0 {
		h = float64(th - 4)
	}
	return float32(w), float32(h)
}

var directionCodes = map[string]float32{
	"row":            0,
	"column":         1,
	"row-reverse":    2,
	"column-reverse": 3,
}

var justifyCodes = map[string]float32{
	"start":         0,
	"end":           1,
	"center":        2,
	"space-between": 3,
	"space-around":  4,
	"space-evenly":  5,
}

func run(w, h float32, children int, dir, justify string) error {
	dirCode, ok := directionCodes[dir]
	if !ok {
		return fmt.Errorf("unknown direction %q", dir)
	}
	justifyCode, ok := justifyCodes[justify]
	if !ok {
		return fmt.Errorf("unknown justify %q", justify)
	}

	e := engine.New()
	ops, styles, kids := demoStream(w, h, children, dirCode, justifyCode)
	if err := e.ApplyAndCompute(ops, styles, kids); err != nil {
		return err
	}

	results := e.Results()
	type box struct {
		id         uint32
		x, y, w, h float32
	}
	boxes := make([]box, 0, len(results)/style.ResultStride)
	for i := 0; i < len(results); i += style.ResultStride {
		boxes = append(boxes, box{
			id: uint32(results[i+style.ResultID]),
			x:  results[i+style.ResultX],
			y:  results[i+style.ResultY],
			w:  results[i+style.ResultWidth],
			h:  results[i+style.ResultHeight],
		})
	}
	sort.Slice(boxes, func(i, j int) bool { return boxes[i].id < boxes[j].id })

	fmt.Printf("Root: %gx%g  direction=%s  justify=%s  children=%d\n\n", w, h, dir, justify, children)
	fmt.Printf("%-6s %10s %10s %10s %10s\n", "node", "x", "y", "width", "height")
	for _, b := range boxes {
		fmt.Printf("%-6d %10.2f %10.2f %10.2f %10.2f\n", b.id, b.x, b.y, b.w, b.h)
	}
	return nil
}

// demoStream builds a root with evenly sized children, the tree the
// interactive mode renders.
func demoStream(w, h float32, children int, dirCode, justifyCode float32) ([]uint32, []float32, []uint32) {
	root := style.NewRecord()
	root[style.PropWidth] = w
	root[style.PropHeight] = h
	root[style.PropFlexDirection] = dirCode
	root[style.PropJustifyContent] = justifyCode
	root[style.PropAlignItems] = 0 // flex-start

	b := protocol.NewStreamBuilder().CreateLeaf(0, root)

	childW := w / float32(children*2)
	childH := h / 3
	ids := make([]uint32, 0, children)
	for i := 1; i <= children; i++ {
		rec := style.NewRecord()
		rec[style.PropWidth] = childW
		rec[style.PropHeight] = childH
		b.CreateLeaf(uint32(i), rec)
		ids = append(ids, uint32(i))
	}
	b.SetChildren(0, ids...)
	return b.Buffers()
}
