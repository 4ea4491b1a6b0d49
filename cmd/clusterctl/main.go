package main

import (
	"fmt"
	"io"
	"os"

	"clusterview-backend/domain/core/valueobjects"
	"clusterview-backend/domain/services"
	"clusterview-backend/infrastructure/ingestion"

	"github.com/spf13/cobra"
)

func main() {
	var (
		inputPath string
		format    string
		delimiter string
		threshold float64
	)

	rootCmd := &cobra.Command{
		Use:   "clusterctl",
		Short: "Inspect cluster documents without running the server",
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Parse a document and report whether it is well formed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), inputPath, format, delimiter)
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Cluster a document at a threshold and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.OutOrStdout(), inputPath, format, delimiter, threshold)
		},
	}

	for _, cmd := range []*cobra.Command{validateCmd, summaryCmd} {
		cmd.Flags().StringVar(&inputPath, "input", "", "Document path")
		cmd.Flags().StringVar(&format, "format", "json", "Document format: json or triples")
		cmd.Flags().StringVar(&delimiter, "delimiter", ";", "Field delimiter for triples documents")
		_ = cmd.MarkFlagRequired("input")
	}
	summaryCmd.Flags().Float64Var(&threshold, "threshold", 0.2, "Edge weight threshold")

	rootCmd.AddCommand(validateCmd, summaryCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runValidate(out io.Writer, path, format, delimiter string) error {
	doc, err := loadDocument(path, format, delimiter)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "OK: %d nodes, %d edges\n", len(doc.Nodes), len(doc.Edges))
	return nil
}

func runSummary(out io.Writer, path, format, delimiter string, threshold float64) error {
	doc, err := loadDocument(path, format, delimiter)
	if err != nil {
		return err
	}

	classifier := services.NewKeywordClassifier(services.DefaultRules(), services.DefaultGroup)
	nodes, edges, err := doc.ToDomain(classifier)
	if err != nil {
		return err
	}

	clamped := valueobjects.ClampThreshold(threshold)
	clusters := services.NewClusterer().Cluster(nodes, edges, clamped)
	fmt.Fprintf(out, "%d visible clusters at threshold %.2f\n", len(clusters), clamped.Float())
	for _, cluster := range clusters {
		fmt.Fprintf(out, "  %-24s weight=%.2f members=%d\n", cluster.ID, cluster.Weight, len(cluster.Members))
	}
	return nil
}

func loadDocument(path, format, delimiter string) (*ingestion.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch format {
	case "triples":
		return ingestion.ParseTriples(f, delimiter)
	case "json":
		return ingestion.ParseDocument(f)
	default:
		return nil, fmt.Errorf("unknown format %q (expected json or triples)", format)
	}
}
