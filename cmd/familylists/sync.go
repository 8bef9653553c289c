// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/familylists/familylists-go/internal/adapter"
	"github.com/familylists/familylists-go/internal/auth"
	"github.com/familylists/familylists-go/internal/service"
	"github.com/familylists/familylists-go/internal/store"
)

var flagResume bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replay the pending mutation queue once and exit",
	Long: `Drain the local mutation queue against the server in a single pass.

A drain stops at the first failure, leaving the failed mutation at the head
of the queue. A queue paused by an authentication failure stays paused until
--resume is given (after refreshing the token file).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		storages, err := store.NewClientStorages(cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("create storages: %w", err)
		}
		defer storages.Close()

		tokens := auth.NewFileTokenProvider(cfg.Auth.TokenFile)
		srv, err := adapter.NewHTTPServerAdapter(cfg.Adapter, tokens, log)
		if err != nil {
			return fmt.Errorf("create server adapter: %w", err)
		}

		svcs := service.NewClientServices(cfg, storages, srv, tokens, log)

		ctx := context.Background()
		before := svcs.Queue.Len()
		if flagResume {
			svcs.Engine.Resume(ctx)
		} else {
			svcs.Engine.Drain(ctx)
		}
		after := svcs.Queue.Len()

		fmt.Printf("replayed %d of %d pending mutations\n", before-after, before)
		if svcs.Engine.Paused() {
			fmt.Println("sync is paused: authentication failed, refresh the token file and run 'familylists sync --resume'")
		} else if after > 0 {
			fmt.Printf("%d mutations still pending\n", after)
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&flagResume, "resume", false, "clear an auth pause before draining")
}
