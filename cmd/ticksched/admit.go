package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edfcore/ticksched/internal/sched"
)

func newAdmitCmd() *cobra.Command {
	var numTasks int
	var wcet, period, baseDeadline, deadlineStep uint32

	cmd := &cobra.Command{
		Use:   "admit",
		Short: "compare LL-bound and PDA admission over a staggered-deadline task set",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a := sched.NewAdmission()

			fmt.Fprintln(out, "Task   C    D    T    U_total   LL     PD")
			fmt.Fprintln(out, "------------------------------------------")

			var accepted []sched.TaskParams
			var utilSum uint64
			llAccepted, pdaAccepted := 0, 0
			firstLLReject, firstPDAReject := -1, -1

			for i := 1; i <= numTasks; i++ {
				candidate := sched.TaskParams{
					C: wcet,
					D: baseDeadline + uint32(i-1)*deadlineStep,
					T: period,
				}
				report := a.TestAdmission(accepted, candidate)
				utilSum += candidate.Utilization(sched.FixedPointScale)

				if report.LL.Accepted {
					llAccepted = i
				} else if firstLLReject < 0 {
					firstLLReject = i
				}
				if report.PDA.Accepted {
					pdaAccepted = i
				} else if firstPDAReject < 0 {
					firstPDAReject = i
				}

				marker := ""
				if report.LL.Accepted != report.PDA.Accepted {
					marker = "  <-- DIVERGENCE"
				}
				fmt.Fprintf(out, "%3d  %3d  %3d  %3d  %6.2f%%   %s   %s%s\n",
					i, candidate.C, candidate.D, candidate.T, float64(utilSum)/100,
					passFail(report.LL.Accepted), passFail(report.PDA.Accepted), marker)

				accepted = append(accepted, candidate)
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "LL bound accepted:         %d / %d\n", llAccepted, numTasks)
			fmt.Fprintf(out, "Processor demand accepted: %d / %d\n", pdaAccepted, numTasks)
			if pdaAccepted > llAccepted {
				fmt.Fprintf(out, "Difference: %d more tasks accepted by PDA\n", pdaAccepted-llAccepted)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&numTasks, "tasks", 100, "number of identical-period tasks to stagger")
	cmd.Flags().Uint32Var(&wcet, "wcet", 5, "C, in ticks, for every task")
	cmd.Flags().Uint32Var(&period, "period", 250, "T, in ticks, for every task")
	cmd.Flags().Uint32Var(&baseDeadline, "base-deadline", 30, "D for the first task, in ticks")
	cmd.Flags().Uint32Var(&deadlineStep, "deadline-step", 5, "amount D increases per subsequent task")
	return cmd
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
