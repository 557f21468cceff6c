package main

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/awantoch/kwanixflow/constants"
	"github.com/awantoch/kwanixflow/diagram"
	"github.com/awantoch/kwanixflow/export"
	"github.com/awantoch/kwanixflow/graph"
	"github.com/awantoch/kwanixflow/preview"
	"github.com/awantoch/kwanixflow/utils"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

func loadDiagram(file string) *diagram.Document {
	if file == "" {
		fail("missing diagram file: use --file")
		return nil
	}
	doc, err := diagram.Load(file)
	if err != nil {
		fail("%v", err)
		return nil
	}
	return doc
}

// newPreviewCmd creates the 'preview' subcommand.
func newPreviewCmd() *cobra.Command {
	var file string
	var stats bool
	cmd := &cobra.Command{
		Use:   constants.CmdPreview,
		Short: constants.DescPreview,
		Run: func(cmd *cobra.Command, args []string) {
			doc := loadDiagram(file)
			if doc == nil {
				return
			}
			nodes, edges := doc.ModelNodes(), doc.ModelEdges()
			utils.User("%s", preview.Generate(nodes, edges))
			if !stats {
				return
			}
			degrees := preview.Degrees(edges)
			ids := make([]string, 0, len(nodes))
			for _, n := range nodes {
				if degrees[n.ID] > 0 {
					ids = append(ids, n.ID)
				}
			}
			sort.Strings(ids)
			for _, id := range ids {
				utils.User("%s %s", faint(id), bold(degrees[id]))
			}
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "diagram file (YAML or JSON)")
	cmd.Flags().BoolVar(&stats, "stats", false, "also print the degree of every connected node")
	return cmd
}

// newGraphCmd creates the 'graph' subcommand.
func newGraphCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   constants.CmdGraph,
		Short: constants.DescGraph,
		Run: func(cmd *cobra.Command, args []string) {
			doc := loadDiagram(file)
			if doc == nil {
				return
			}
			renderer := &graph.MermaidRenderer{}
			out, err := renderer.Render(graph.NewGraph(doc.ModelNodes(), doc.ModelEdges()))
			if err != nil {
				fail("%v", err)
				return
			}
			utils.User("%s", out)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "diagram file (YAML or JSON)")
	return cmd
}

// newExportCmd creates the 'export' subcommand.
func newExportCmd() *cobra.Command {
	var file, ext, outDir string
	cmd := &cobra.Command{
		Use:   constants.CmdExport,
		Short: constants.DescExport,
		Run: func(cmd *cobra.Command, args []string) {
			doc := loadDiagram(file)
			if doc == nil {
				return
			}
			art, err := export.Build(preview.Generate(doc.ModelNodes(), doc.ModelEdges()), ext)
			if err != nil {
				fail("%v (choose one of %v)", err, export.Extensions)
				return
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				fail("%v", err)
				return
			}
			path := filepath.Join(outDir, art.Filename)
			if err := os.WriteFile(path, art.Data, 0o644); err != nil {
				fail("%v", err)
				return
			}
			utils.User("%s %s", green("wrote"), path)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "diagram file (YAML or JSON)")
	cmd.Flags().StringVar(&ext, "ext", export.DefaultExtension, "file extension")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}

// newExtensionsCmd creates the 'extensions' subcommand.
func newExtensionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   constants.CmdExtensions,
		Short: constants.DescExtensions,
		Run: func(cmd *cobra.Command, args []string) {
			for _, ext := range export.Extensions {
				if ext == export.DefaultExtension {
					utils.User("%s %s", bold(ext), faint("(default)"))
					continue
				}
				utils.User("%s", ext)
			}
		},
	}
}
