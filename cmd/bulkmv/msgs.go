package bulkmv

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Rename many files at once in your text editor"
	MsgPlanShort       = "Show the order a batch would run in without renaming"
	MsgConfigShort     = "Print the effective configuration"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgDryRunNotice = "DRY RUN MODE - No files were renamed"
	MsgNothingToDo  = "Nothing to rename."
	MsgWatchChanges = "Filesystem changed"

	// Error messages
	MsgErrNoFiles     = "no files given"
	MsgErrStdinNames  = "reading names from stdin requires --yes"
	MsgErrOpenNames   = "cannot open names file %s"
	MsgErrAbsPath     = "cannot resolve %s"
	MsgErrHelpMissing = "help command not found"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default is $XDG_CONFIG_HOME/bulkmv/config.toml)"
	MsgFlagFormat   = "Output format for the diagnostic stream: auto, term or text"
	MsgFlagDryRun   = "Compute and print the rename order without touching any file"
	MsgFlagYes      = "Rename without asking for confirmation"
	MsgFlagNames    = "Read new names from a file instead of an editor (- for stdin, needs --yes)"
	MsgFlagJSON     = "Write the rename event as JSON to stdout"
	MsgFlagPrint    = "Print the final path of every selected file to stdout"
	MsgFlagNoWait   = "Do not wait for ENTER after reporting failures"
	MsgFlagDefaults = "Print the built-in defaults instead of the effective configuration"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimSpace(msgRootExampleRaw)

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
