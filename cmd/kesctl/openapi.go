package main

import (
	"github.com/spf13/cobra"

	"github.com/JaimeStill/pendakwaan/internal/api"
	"github.com/JaimeStill/pendakwaan/internal/config"
	"github.com/JaimeStill/pendakwaan/pkg/openapi"
)

func newOpenAPICommand() *cobra.Command {
	var out, basePath string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Export the OpenAPI document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &config.Config{
				Version: version,
				API:     config.APIConfig{BasePath: basePath},
			}
			if err := cfg.API.OpenAPI.Finalize(nil); err != nil {
				return err
			}

			spec := api.NewSpec(cfg)
			if out != "" {
				return openapi.WriteJSON(spec, out)
			}

			data, err := openapi.MarshalJSON(spec)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&basePath, "base-path", "/api", "Server base path")
	return cmd
}
