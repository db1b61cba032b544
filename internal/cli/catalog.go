package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/montagehq/montage/internal/catalog"
)

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate asset catalogs",
	}
	cmd.AddCommand(newCatalogListCommand(rootOpts))
	cmd.AddCommand(newCatalogValidateCommand(rootOpts))
	return cmd
}

func newCatalogListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		file      string
		assetType string
		search    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog assets",
		Long: `List the assets in a catalog YAML file, or the built-in catalog
when no file is given. Results can be narrowed by type and by a
case-insensitive name search.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(rootOpts, cmd, file, assetType, search)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog YAML file (default: built-in catalog)")
	cmd.Flags().StringVarP(&assetType, "type", "t", "", "filter by asset type (character|background|graphic|music)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name substring")

	return cmd
}

func runCatalogList(opts *RootOptions, cmd *cobra.Command, file, assetType, search string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := resolveCatalog(file)
	if err != nil {
		_ = formatter.Error("E_CATALOG", err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading catalog", err)
	}
	formatter.VerboseLog("catalog has %d asset(s)", cat.Len())

	assets := cat.Assets()
	if assetType != "" {
		t := catalog.AssetType(assetType)
		if !t.Valid() {
			_ = formatter.Error("E_TYPE", fmt.Sprintf("unknown asset type %q", assetType), nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown asset type %q", assetType))
		}
		assets = cat.Search(t, search)
	}

	if formatter.Format == "json" {
		return formatter.Success(assets)
	}

	w := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tNAME\tDURATION")
	for _, a := range assets {
		dur := "-"
		if a.Duration > 0 {
			dur = fmt.Sprintf("%.0fs", a.Duration)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Type, a.Name, dur)
	}
	return w.Flush()
}

func newCatalogValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog.yaml>",
		Short: "Validate a catalog file against the schema",
		Long: `Validate a catalog YAML file against the built-in CUE schema:
known asset types, required media fields, and positive durations for
music entries.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogValidate(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

// validationResult is the JSON payload for catalog validate.
type validationResult struct {
	Valid  bool   `json:"valid"`
	Assets int    `json:"assets,omitempty"`
	Error  string `json:"error,omitempty"`
}

func runCatalogValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := catalog.Load(path)
	if err != nil {
		if formatter.Format == "json" {
			_ = formatter.Success(validationResult{Valid: false, Error: err.Error()})
		} else {
			fmt.Fprintf(formatter.Writer, "✗ %s: %v\n", path, err)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("catalog invalid: %v", err))
	}

	if formatter.Format == "json" {
		return formatter.Success(validationResult{Valid: true, Assets: cat.Len()})
	}
	fmt.Fprintf(formatter.Writer, "✓ %s: %d asset(s)\n", path, cat.Len())
	return nil
}

// resolveCatalog loads the named file, or the built-in catalog when the
// path is empty.
func resolveCatalog(file string) (*catalog.Catalog, error) {
	if file == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(file)
}
