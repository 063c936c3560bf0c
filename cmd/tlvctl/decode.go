package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"

	"github.com/danmuck/tlvcodec/internal/observability"
	"github.com/danmuck/tlvcodec/internal/protocol"
	"github.com/danmuck/tlvcodec/internal/protocol/session"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type packetLine struct {
	ID     uint32         `json:"id"`
	Name   string         `json:"name"`
	Length uint32         `json:"length"`
	Fields map[string]any `json:"fields"`
}

func newDecodeCmd(a *app) *cobra.Command {
	var (
		metricsAddr string
		asWriter    bool
	)
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a frame stream into JSON lines",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if metricsAddr == "" {
				metricsAddr = a.cfg.MetricsAddr
			}
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
			defer stop()

			var obs protocol.Observer
			if metricsAddr != "" {
				obs = observability.NewCodecMetrics("tlvctl")
				srv := observability.NewServer("tlvctl", metricsAddr)
				srvCtx, cancel := context.WithCancel(ctx)
				defer cancel()
				go func() {
					if err := srv.Serve(srvCtx); err != nil {
						log.Error().Err(err).Str("addr", metricsAddr).Msg("metrics server failed")
					}
				}()
			}

			h, _, err := a.handler(asWriter, obs)
			if err != nil {
				return err
			}
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			stats, err := session.Pump(ctx, in, h, a.cfg.Session(), func(res protocol.Result) error {
				switch res.Status {
				case protocol.StatusPacket:
					p := res.Packet
					return enc.Encode(packetLine{ID: p.ID, Name: p.Name, Length: p.Length, Fields: p.Fields})
				case protocol.StatusSkipped:
					log.Info().Uint32("id", res.ID).Uint32("length", res.Length).Msg("skipped unknown packet")
				}
				return nil
			})
			if herr := h.Err(); herr != nil {
				log.Error().Err(herr).Int("unread", h.Buffered()).Msg("handler failed, remaining input dropped")
			}
			log.Info().
				Int("bytes", stats.Bytes).
				Int("packets", stats.Packets).
				Int("skipped", stats.Skipped).
				Msg("decode finished")
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve /metrics and /health on this address while decoding")
	cmd.Flags().BoolVar(&asWriter, "as-writer", false, "decode with the write packets, e.g. frames produced by encode")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
