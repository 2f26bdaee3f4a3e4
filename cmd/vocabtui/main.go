// Package main provides the CLI entrypoint for vocabtui.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/vocabtui/internal/catalog"
	"github.com/verte-zerg/vocabtui/internal/config"
	"github.com/verte-zerg/vocabtui/internal/model"
	"github.com/verte-zerg/vocabtui/internal/pronounce"
	"github.com/verte-zerg/vocabtui/internal/quiz"
	"github.com/verte-zerg/vocabtui/internal/session"
	"github.com/verte-zerg/vocabtui/internal/stats"
	"github.com/verte-zerg/vocabtui/internal/store"
	"github.com/verte-zerg/vocabtui/internal/tui"
)

const (
	defaultSort        = "alpha"
	defaultVariant     = "us"
	terminalWidthGuess = 80
)

var (
	studyCatalog   string
	studySort      string
	studyTag       string
	studyDueOnly   bool
	studyFavorites bool
	studyVariant   string
	studyPlayer    string

	statsCatalog string
	statsWords   bool
	statsSort    string

	exportCatalog string
	exportOut     string

	importProgressCatalog string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vocabtui",
		Short:         "Terminal vocabulary trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runStudyCmd,
	}

	rootCmd.Flags().StringVar(&studyCatalog, "catalog", "", "catalog name")
	rootCmd.Flags().StringVar(&studySort, "sort", defaultSort, "sort key (alpha, bnc, frq, collins, mastery)")
	rootCmd.Flags().StringVar(&studyTag, "tag", "", "only words carrying this tag")
	rootCmd.Flags().BoolVar(&studyDueOnly, "due", false, "only words due for review")
	rootCmd.Flags().BoolVar(&studyFavorites, "favorites", false, "only favorite words")
	rootCmd.Flags().StringVar(&studyVariant, "variant", defaultVariant, "pronunciation accent (us, uk)")
	rootCmd.Flags().StringVar(&studyPlayer, "player", "", "audio player command")

	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newCatalogsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportProgressCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runStudyCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "catalog", &studyCatalog, fileCfg.Study.Catalog)
	applyStringConfig(cmd, "sort", &studySort, fileCfg.Study.Sort)
	applyStringConfig(cmd, "tag", &studyTag, fileCfg.Study.Tag)
	applyBoolConfig(cmd, "due", &studyDueOnly, fileCfg.Study.DueOnly)
	applyBoolConfig(cmd, "favorites", &studyFavorites, fileCfg.Study.FavoriteOnly)
	applyStringConfig(cmd, "variant", &studyVariant, fileCfg.Pronounce.Variant)
	applyStringConfig(cmd, "player", &studyPlayer, fileCfg.Pronounce.Player)

	sortKey, ok := model.ParseSortKey(studySort)
	if !ok {
		return fmt.Errorf("unknown sort key %q", studySort)
	}
	variant, ok := pronounce.ParseVariant(studyVariant)
	if !ok {
		return fmt.Errorf("unknown pronunciation variant %q", studyVariant)
	}

	sess, st, err := openSession(studyCatalog)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	sess.Sort = sortKey
	sess.Filters = model.Filters{
		Tag:          studyTag,
		DueOnly:      studyDueOnly,
		FavoriteOnly: studyFavorites,
	}

	speaker := &pronounce.Speaker{Player: studyPlayer}
	uiModel := tui.NewModel(sess, quiz.New(), speaker, variant)
	program := tea.NewProgram(uiModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Install a catalog document",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	doc, err := catalog.Install(args[0], config.DefaultCatalogDir())
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Installed catalog %q (%d words)\n", doc.Name, len(doc.Words)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newCatalogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List installed catalogs",
		Args:  cobra.NoArgs,
		RunE:  runCatalogsCmd,
	}
}

func runCatalogsCmd(cmd *cobra.Command, _ []string) error {
	names, err := catalog.List(config.DefaultCatalogDir())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		logErrln("No catalogs installed. Install with: vocabtui import <file.json>")
		return fmt.Errorf("no catalogs installed")
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export progress as a JSON document",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportCatalog, "catalog", "", "catalog name")
	cmd.Flags().StringVar(&exportOut, "out", "", "output file (default: stdout)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	if err := mergeCatalogConfig(cmd, &exportCatalog); err != nil {
		return err
	}
	sess, st, err := openSession(exportCatalog)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	out := cmd.OutOrStdout()
	if exportOut != "" {
		file, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				logErrf("failed to close output file: %v\n", cerr)
			}
		}()
		out = file
	}
	return store.WriteProgress(out, sess.CatalogName, sess.ProgressMap())
}

func newImportProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-progress <file.json>",
		Short: "Load an exported progress document",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportProgressCmd,
	}
	cmd.Flags().StringVar(&importProgressCatalog, "catalog", "", "catalog name (default: the document's name)")
	return cmd
}

func runImportProgressCmd(cmd *cobra.Command, args []string) error {
	if err := mergeCatalogConfig(cmd, &importProgressCatalog); err != nil {
		return err
	}
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open progress document: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	doc, err := store.ReadProgress(file)
	if err != nil {
		return err
	}
	name := importProgressCatalog
	if name == "" {
		name = doc.Name
	}
	sess, st, err := openSession(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if err := sess.ReplaceProgress(context.Background(), doc.Progress); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported progress for %d words into %q\n", len(doc.Progress), sess.CatalogName); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsCatalog, "catalog", "", "catalog name")
	cmd.Flags().BoolVar(&statsWords, "words", false, "include the per-word table")
	cmd.Flags().StringVar(&statsSort, "sort", defaultSort, "sort key for the per-word table")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if err := mergeCatalogConfig(cmd, &statsCatalog); err != nil {
		return err
	}
	sortKey, ok := model.ParseSortKey(statsSort)
	if !ok {
		return fmt.Errorf("unknown sort key %q", statsSort)
	}
	sess, st, err := openSession(statsCatalog)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, sess.CatalogName, sess.Summary()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if !statsWords {
		return nil
	}
	if _, err := fmt.Fprintln(out, ""); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	sess.Sort = sortKey
	return stats.RenderWordTable(out, sess.ActiveSet(), time.Now(), terminalWidth())
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// openSession resolves the catalog, opens the progress store, and
// builds a session over both.
func openSession(name string) (*session.Session, *store.Store, error) {
	resolved, err := resolveCatalogName(name)
	if err != nil {
		return nil, nil, err
	}
	doc, entries, err := catalog.Load(config.DefaultCatalogPath(resolved))
	if err != nil {
		return nil, nil, err
	}
	st := store.Open(config.DefaultDBPath())
	return session.New(context.Background(), st, doc, entries), st, nil
}

// resolveCatalogName picks the catalog to study: an explicit name
// wins, a single installed catalog is implied, anything else needs
// the user to choose.
func resolveCatalogName(name string) (string, error) {
	names, err := catalog.List(config.DefaultCatalogDir())
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", catalogMissingError(name)
	}
	if name == "" {
		if len(names) == 1 {
			return names[0], nil
		}
		return "", fmt.Errorf("several catalogs installed (%s); pick one with --catalog", strings.Join(names, ", "))
	}
	for _, installed := range names {
		if installed == name {
			return name, nil
		}
	}
	return "", catalogMissingError(name)
}

func catalogMissingError(name string) error {
	lines := []string{
		"expected a catalog at: " + config.DefaultCatalogDir(),
		"Install one: vocabtui import <file.json>",
		"List installed: vocabtui catalogs",
	}
	if name != "" {
		lines = append([]string{fmt.Sprintf("catalog %q not found", name)}, lines...)
	} else {
		lines = append([]string{"no catalogs installed"}, lines...)
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthGuess
	}
	return width
}

// mergeCatalogConfig fills the catalog flag from the config file when
// it was not set on the command line.
func mergeCatalogConfig(cmd *cobra.Command, target *string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "catalog", target, fileCfg.Study.Catalog)
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# vocabtui configuration
# Uncomment a value to enable it. CLI flags override config values.

[study]
# catalog = "Default"    # Catalog name
# sort = %q          # Sort key: alpha, bnc, frq, collins, mastery
# tag = ""                # Only words carrying this tag
# due-only = false        # Only words due for review
# favorite-only = false   # Only favorite words

[pronounce]
# variant = %q          # Accent: us or uk
# player = ""             # Audio player command (default: autodetect)
`,
		defaultSort,
		defaultVariant,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
