package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/tlvcodec/internal/protocol/frame"
	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print raw frame headers without a schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			out := cmd.OutOrStdout()
			var offset int64
			for n := 0; ; n++ {
				f, err := frame.ReadFrame(in, a.cfg.Limits())
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("frame %d at offset %d: %w", n, offset, err)
				}
				fmt.Fprintf(out, "frame=%d offset=%d id=%d length=%d\n", n, offset, f.Header.ID, f.Header.Length)
				offset += int64(frame.HeaderLen) + int64(f.Header.Length)
			}
		},
	}
}
