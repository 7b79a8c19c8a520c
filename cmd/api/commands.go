package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/melih/docker-agent/internal/config"
	"github.com/melih/docker-agent/internal/core/tools"
)

func newRootCommand() *cobra.Command {
	v := config.New()
	var configFile string

	root := &cobra.Command{
		Use:          "docker-agent",
		Short:        "Chat agent that manages Docker containers and reports to n8n",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), v, configFile)
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (yaml, json or toml)")
	root.PersistentFlags().String("listen", ":8000", "address to listen on")
	root.PersistentFlags().String("runtime", config.RuntimeDocker, "container runtime: docker or memory")
	bindFlag(v, root, "listen_addr", "listen")
	bindFlag(v, root, "runtime", "runtime")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), v, configFile)
		},
	})
	root.AddCommand(newToolsCommand())
	return root
}

func bindFlag(v *viper.Viper, cmd *cobra.Command, key, flag string) {
	// BindPFlag only fails for a nil flag.
	_ = v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag))
}

func newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog sent to the language model",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := tools.NewRegistry()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(registry.Definitions())
		},
	}
}
