package bulkmv

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/bulkmv/internal/version"
	"github.com/arthur-debert/bulkmv/pkg/cobrax/topics"
	"github.com/arthur-debert/bulkmv/pkg/config"
	"github.com/arthur-debert/bulkmv/pkg/errors"
	"github.com/arthur-debert/bulkmv/pkg/logging"
	"github.com/arthur-debert/bulkmv/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

//go:embed topics
var topicFiles embed.FS

// batchFlags are shared by the root command and plan
type batchFlags struct {
	configPath string
	format     string
	names      string
	dryRun     bool
	yes        bool
	json       bool
	print      bool
	noWait     bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		flags     batchFlags
	)

	rootCmd := &cobra.Command{
		Use:     "bulkmv [flags] <file>...",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errors.New(errors.ErrNoSources, MsgErrNoFiles)
			}
			return runBatch(cmd, &flags, args, flags.dryRun)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&flags.configPath, "config", "", MsgFlagConfig)
	pf.StringVar(&flags.format, "format", "", MsgFlagFormat)
	pf.StringVar(&flags.names, "names", "", MsgFlagNames)

	rf := rootCmd.Flags()
	rf.BoolVar(&flags.dryRun, "dry-run", false, MsgFlagDryRun)
	rf.BoolVarP(&flags.yes, "yes", "y", false, MsgFlagYes)
	rf.BoolVar(&flags.json, "json", false, MsgFlagJSON)
	rf.BoolVar(&flags.print, "print", false, MsgFlagPrint)
	rf.BoolVar(&flags.noWait, "no-wait", false, MsgFlagNoWait)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newPlanCmd(&flags))
	rootCmd.AddCommand(newConfigCmd(&flags))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newVersionCmd())

	if source, err := fs.Sub(topicFiles, "topics"); err == nil {
		renderer := topics.NewGlamourRenderer(func() ui.Format {
			return topicFormat(&flags)
		})
		opts := topics.Options{
			Extensions: []string{".md", ".txt"},
			Renderer:   renderer,
		}
		if _, err := topics.InitializeWithOptions(rootCmd, source, opts); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

func newPlanCmd(flags *batchFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "plan <file>...",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, flags, args, true)
		},
	}
}

func newConfigCmd(flags *batchFlags) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultsContent())
				return err
			}

			cfg, err := loadConfig(flags, false)
			if err != nil {
				return err
			}
			out, err := cfg.TOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd.Run == nil {
				return errors.New(errors.ErrInternal, MsgErrHelpMissing)
			}
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "BULKMV",
				Section: "1",
				Source:  "bulkmv " + version.Version,
				Manual:  "bulkmv manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "bulkmv version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}
