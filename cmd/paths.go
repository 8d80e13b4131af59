package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aneeshdurg/toposim/sim"
)

// pathsCmd prints the adjacency and next-hop table of every configuration
var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print adjacency and next-hop tables for every switch configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		shape := loadShape()
		if err := printPaths(os.Stdout, shape); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func printPaths(w io.Writer, shape *sim.Shape) error {
	for idx, cfg := range sim.AllConfigurations(shape.NumSwitches()) {
		net, err := sim.Build(shape, cfg)
		if err != nil {
			return err
		}
		states := make([]string, len(cfg))
		for i, s := range cfg {
			states[i] = s.String()
		}
		fmt.Fprintf(w, "=== Configuration %d [%s] (diameter %d) ===\n", idx, strings.Join(states, " "), net.Diameter())
		for n := 0; n < net.NumNodes(); n++ {
			fmt.Fprintf(w, "  %d -> %v\n", n, net.Neighbors(sim.Node(n)))
		}
		fmt.Fprintln(w, "  next hop (row = src, col = dst):")
		for src := 0; src < net.NumNodes(); src++ {
			row := make([]string, net.NumNodes())
			for dst := range row {
				if src == dst {
					row[dst] = "-"
					continue
				}
				hop, err := net.NextHop(sim.Node(src), sim.Node(dst))
				if err != nil {
					return err
				}
				row[dst] = fmt.Sprint(hop)
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(row, " "))
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
