package cli

import (
	"github.com/spf13/cobra"

	"github.com/fixora/auditguard/infrastructure/config"
)

var (
	Version = "dev"
	Commit  = "none"
)

// NewRootCmd builds the auditguard command tree. load supplies the
// configuration; nil means config.Load.
func NewRootCmd(load func() (*config.Config, error)) *cobra.Command {
	if load == nil {
		load = config.Load
	}

	var (
		sinkKind string
		logDir   string
		rules    string
	)

	root := &cobra.Command{
		Use:           "auditguard",
		Version:       Version,
		Short:         "Validated, audit-logged product records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}} (commit " + Commit + ")\n")
	root.PersistentFlags().StringVar(&sinkKind, "sink", "", "audit sink: file, memory or redis (overrides AUDIT_SINK)")
	root.PersistentFlags().StringVar(&logDir, "log-dir", "", "directory of log_<Class>.log files (overrides AUDIT_LOG_DIR)")
	root.PersistentFlags().StringVar(&rules, "rules", "", "YAML file with product bounds (overrides AUDIT_RULES_FILE)")

	loadConfig := func() (*config.Config, error) {
		cfg, err := load()
		if err != nil {
			return nil, err
		}
		if sinkKind != "" {
			cfg.Sink = sinkKind
		}
		if logDir != "" {
			cfg.LogDir = logDir
		}
		if rules != "" {
			cfg.RulesFile = rules
		}
		return cfg, nil
	}

	root.AddCommand(newDemoCmd(loadConfig))
	root.AddCommand(newCreateCmd(loadConfig))
	return root
}

// Execute runs the root command with configuration from the environment
func Execute() error {
	return NewRootCmd(nil).Execute()
}
