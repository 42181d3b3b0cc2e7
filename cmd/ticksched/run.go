package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/edfcore/ticksched/internal/rtos"
	"github.com/edfcore/ticksched/internal/sched"
	"github.com/edfcore/ticksched/internal/telemetry"
)

func newRunCmd() *cobra.Command {
	var configPath string
	var csvPath string
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "run the red/yellow/green EDF task set and trace dispatch decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rtos.Load(configPath)
			log := telemetry.New(cmd.OutOrStdout())
			k := rtos.NewKernel(cfg, log)

			if csvPath != "" {
				if err := k.EnableCSVLogging(csvPath); err != nil {
					return err
				}
			}

			for _, spec := range cfg.Tasks {
				if spec.Legacy {
					continue
				}
				_, err := k.CreateEDFTask(spec.Name, sched.TaskParams{C: spec.C, D: spec.D, T: spec.T})
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "task %s rejected: %v\n", spec.Name, err)
					continue
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), duration)
			defer cancel()
			k.Run(ctx)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a task-set YAML file (defaults to the red/yellow/green demo set)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write a per-tick CSV trace to this path")
	cmd.Flags().DurationVar(&duration, "for", 5*time.Second, "how long to run the simulated clock")
	return cmd
}
