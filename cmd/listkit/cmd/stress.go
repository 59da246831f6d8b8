package cmd

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-drift/listkit/pkg/bus"
	"github.com/go-drift/listkit/pkg/logging"
	"github.com/go-drift/listkit/pkg/model"
)

const stressEvent = "stress.added"

type stressResult struct {
	Want      int
	Got       int
	Delivered int64
	Elapsed   time.Duration
}

func (r stressResult) OK() bool {
	return r.Got == r.Want && r.Delivered == int64(r.Want)
}

// runStress appends workers*perWorker cells to one container from workers
// goroutines while a reader snapshots the children, and announces every
// append on the container's bus.
func runStress(workers, perWorker int) stressResult {
	root := model.NewContainer("Stress", nil)

	var delivered atomic.Int64
	sub := root.Bus().SubscribeEvent(stressEvent, bus.Target{}, func(any) {
		delivered.Add(1)
	})
	defer sub.Dispose()

	start := time.Now()
	done := make(chan struct{})
	var reader sync.WaitGroup
	reader.Add(1)
	go func() {
		defer reader.Done()
		for {
			select {
			case <-done:
				return
			default:
				_ = len(root.Submodels())
			}
		}
	}()

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker {
				cell := model.NewCell(fmt.Sprintf("w%d.%d", w, i), nil)
				root.AddSubmodel(cell)
				root.Bus().SendEvent(stressEvent, cell.ID())
			}
		}()
	}
	wg.Wait()
	close(done)
	reader.Wait()

	return stressResult{
		Want:      max(workers, 0) * max(perWorker, 0),
		Got:       root.SubmodelCount(),
		Delivered: delivered.Load(),
		Elapsed:   time.Since(start),
	}
}

func addStress(topLevel *cobra.Command) {
	var workers, perWorker int

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Append cells concurrently and check that none are lost.",
		Example: `
listkit stress --workers 8 --per-worker 1000
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			log := logging.FromContext(cmd.Context())

			r := runStress(workers, perWorker)
			log.Debug("stress finished", "workers", workers, "per_worker", perWorker, "elapsed", r.Elapsed)

			status := color.New(color.FgGreen, color.Bold).Sprint("OK")
			if !r.OK() {
				status = color.New(color.FgRed, color.Bold).Sprint("MISMATCH")
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s children=%d want=%d events=%d\n",
				status, r.Got, r.Want, r.Delivered); err != nil {
				return err
			}
			if !r.OK() {
				return fmt.Errorf("lost updates: got %d children and %d events, want %d", r.Got, r.Delivered, r.Want)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 8, "number of concurrent writers")
	cmd.Flags().IntVar(&perWorker, "per-worker", 1000, "cells appended by each writer")

	topLevel.AddCommand(cmd)
}
