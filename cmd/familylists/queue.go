// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/familylists/familylists-go/internal/queue"
	"github.com/familylists/familylists-go/internal/store"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect the pending mutation queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, closeFn, err := openQueue()
		if err != nil {
			return err
		}
		defer closeFn()

		ops := q.All()
		if len(ops) == 0 {
			fmt.Println("queue is empty")
			return nil
		}

		for i, op := range ops {
			fmt.Printf("%2d. %-8s %-6s %s  (queued %s)\n",
				i+1, op.Kind, op.Method, op.Path, op.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var queueClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard every pending mutation",
	Long: `Discard every pending mutation without replaying it.

The queued writes are lost permanently. Useful when the queue holds mutations
the server keeps rejecting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, closeFn, err := openQueue()
		if err != nil {
			return err
		}
		defer closeFn()

		n := q.Len()
		q.Clear()
		fmt.Printf("discarded %d pending mutations\n", n)
		return nil
	},
}

func init() {
	queueCmd.AddCommand(queueClearCmd)
}

func openQueue() (*queue.Queue, func(), error) {
	cfg, log, err := setup()
	if err != nil {
		return nil, nil, err
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create storages: %w", err)
	}

	return queue.New(storages.KV, log), storages.Close, nil
}
