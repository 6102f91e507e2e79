package dis

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/risor-io/evmasm/bytecode"
)

// PrintLayout writes a table of the program's segments followed by a
// summary line.
func PrintLayout(code *bytecode.Code, writer io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(writer)
	t.AppendHeader(table.Row{"KIND", "NAME", "OFFSET", "START", "SIZE"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	for i := 0; i < code.SegmentCount(); i++ {
		seg := code.SegmentAt(i)
		t.AppendRow(table.Row{seg.Kind.String(), magenta(seg.Name), seg.Offset, seg.Start, seg.Size})
	}
	stats := code.Stats()
	t.AppendFooter(table.Row{"", "", "", "TOTAL", stats.Bytes})
	t.Render()
	fmt.Fprintf(writer, "width %d, %d code label(s), %d data label(s), layout %s\n",
		stats.Width, stats.CodeLabels, stats.DataLabels, code.Layout())
}
