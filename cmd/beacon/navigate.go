package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"beacon/internal/driver"
	"beacon/internal/host"
	"beacon/internal/memhost"
	"beacon/internal/snapshot"
	"beacon/internal/source"
)

var defsCmd = &cobra.Command{
	Use:   "defs <snapshot> <file> <offset>",
	Short: "Query definitions at a byte offset",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, nav, file, offset, err := openQuery(args)
		if err != nil {
			return err
		}
		defs := nav.Definitions(file, offset)
		if len(defs) == 0 {
			fmt.Println("no definition")
			return nil
		}
		for _, d := range defs {
			printDefinition(h.Files(), d)
		}
		return nil
	},
}

var refsCmd = &cobra.Command{
	Use:   "refs <snapshot> <file> <offset>",
	Short: "Query references at a byte offset",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, nav, file, offset, err := openQuery(args)
		if err != nil {
			return err
		}
		groups := nav.References(file, offset)
		if len(groups) == 0 {
			fmt.Println("no references")
			return nil
		}
		for _, g := range groups {
			printDefinition(h.Files(), g.Definition)
			for _, ref := range g.References {
				start, _ := h.Files().Resolve(ref.Span)
				fmt.Printf("  %s:%d:%d\n", pathOf(h.Files(), ref.File), start.Line, start.Col)
			}
		}
		return nil
	},
}

func openQuery(args []string) (*memhost.Host, host.Navigator, source.FileID, uint32, error) {
	payload, err := snapshot.Read(args[0])
	if err != nil {
		return nil, nil, source.NoFileID, 0, err
	}
	h, err := snapshot.Materialize(payload)
	if err != nil {
		return nil, nil, source.NoFileID, 0, err
	}
	f, ok := h.Files().GetByPath(args[1])
	if !ok {
		return nil, nil, source.NoFileID, 0, fmt.Errorf("file %q not in snapshot", args[1])
	}
	offset, err := strconv.ParseUint(args[2], 10, 32)
	if err != nil {
		return nil, nil, source.NoFileID, 0, fmt.Errorf("invalid offset %q: %w", args[2], err)
	}
	nav := driver.Navigator(h, driver.DefaultOptions())
	return h, nav, f.ID, uint32(offset), nil
}

func printDefinition(fs *source.FileSet, d host.DefinitionInfo) {
	start, _ := fs.Resolve(d.Span)
	where := fmt.Sprintf("%s:%d:%d", pathOf(fs, d.File), start.Line, start.Col)
	if d.ContainerName != "" {
		fmt.Printf("%s %s in %s (%s)\n", d.Kind, d.Name, d.ContainerName, where)
		return
	}
	fmt.Printf("%s %s (%s)\n", d.Kind, d.Name, where)
}

func pathOf(fs *source.FileSet, id source.FileID) string {
	if f := fs.Get(id); f != nil {
		return f.Path
	}
	return "<unknown>"
}
