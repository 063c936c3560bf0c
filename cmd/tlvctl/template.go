package main

import (
	"fmt"

	"github.com/danmuck/tlvcodec/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newTemplateCmd() *cobra.Command {
	var (
		output string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "template <config|schema>",
		Short: "Print or write a starter config or schema file",
		Args:  cobra.ExactArgs(1),
		// Templates need neither config nor schema.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if output == "" {
				body, err := config.Template(kind)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			if err := config.WriteTemplate(output, kind, force); err != nil {
				return err
			}
			log.Info().Str("kind", kind).Str("path", output).Msg("wrote template")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this path instead of stdout")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
