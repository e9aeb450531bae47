package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/raresim/internal/config"
	"github.com/san-kum/raresim/internal/dynamo"
	"github.com/san-kum/raresim/internal/estimate"
	"github.com/san-kum/raresim/internal/potentials"
	"github.com/san-kum/raresim/internal/replica"
	"github.com/san-kum/raresim/internal/storage"
	"github.com/san-kum/raresim/internal/tps"
	"github.com/san-kum/raresim/internal/traj"
	"github.com/san-kum/raresim/internal/umbrella"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	save       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "raresim",
		Short: "rare-event sampling on model potentials",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".raresim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVar(&save, "save", false, "persist run output")

	rootCmd.AddCommand(tpsCmd(), remdCmd(), umbrellaCmd(), tiCmd(), fepCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configFile)
}

func setup(cfg *config.Config) (*potentials.DoubleWell, dynamo.Params, dynamo.CollectiveVariable) {
	pot := potentials.NewDoubleWell()
	params := dynamo.Params{Beta: cfg.Beta, Timestep: cfg.Timestep, Diffusion: cfg.Diffusion}
	return pot, params, dynamo.Coordinate{Index: 0}
}

func wells(cv dynamo.CollectiveVariable) (a, b dynamo.StatePredicate) {
	a = dynamo.StatePredicate{Name: "A", CV: cv, Lower: -1.3, Upper: -0.7}
	b = dynamo.StatePredicate{Name: "B", CV: cv, Lower: 0.7, Upper: 1.3}
	return a, b
}

func tpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tps",
		Short: "transition path sampling on the double well",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			pot, params, cv := setup(cfg)
			stateA, stateB := wells(cv)

			gen, err := traj.NewGenerator(pot, params, cfg.Seed)
			if err != nil {
				return err
			}

			initial, err := initialPath(gen, stateA, stateB, cfg)
			if err != nil {
				return err
			}

			mode := tps.FlexibleLength
			if cfg.TPS.Mode == "fixed" {
				mode = tps.FixedLength
			}
			sampler, err := tps.New(gen, stateA, stateB, initial, tps.Config{
				Mode:          mode,
				PathLength:    cfg.TPS.PathLength,
				MaxSteps:      cfg.TPS.MaxSteps,
				Trials:        cfg.TPS.Trials,
				Equilibration: cfg.TPS.Equilibration,
				OutputStride:  cfg.TPS.OutputStride,
			}, cfg.Seed+1)
			if err != nil {
				return err
			}

			res, err := sampler.Run()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "trials\t%d\n", res.Trials)
			fmt.Fprintf(w, "accepted\t%d\n", res.Accepted)
			fmt.Fprintf(w, "acceptance rate\t%.3f\n", res.AcceptanceRate())
			fmt.Fprintf(w, "ensemble size\t%d\n", len(res.Ensemble))
			w.Flush()

			if len(res.Ensemble) > 0 {
				last := res.Ensemble[len(res.Ensemble)-1]
				fmt.Println("\nlast sampled path (collective variable):")
				fmt.Println(asciigraph.Plot(last.Values(cv), asciigraph.Height(12), asciigraph.Width(72)))
			}

			if save {
				return saveRun(cfg, "tps", res.Ensemble, map[string]float64{
					"acceptance_rate": res.AcceptanceRate(),
				})
			}
			return nil
		},
	}
}

// initialPath grows a first reactive path by shooting from the barrier top.
func initialPath(gen *traj.Generator, a, b dynamo.StatePredicate, cfg *config.Config) (traj.Trajectory, error) {
	states := []dynamo.StatePredicate{a, b}
	saddle := make(dynamo.Position, 2)

	for attempt := 0; attempt < 1000; attempt++ {
		fwd, err := gen.RunUntil(saddle, cfg.TPS.MaxSteps, states)
		if err != nil {
			return nil, err
		}
		bwd, err := gen.RunUntil(saddle, cfg.TPS.MaxSteps, states)
		if err != nil {
			return nil, err
		}
		if fwd.Status == traj.StatusHitState && bwd.Status == traj.StatusHitState && fwd.State != bwd.State {
			return bwd.Traj.Reverse().Concat(fwd.Traj), nil
		}
	}
	return nil, fmt.Errorf("no reactive path found from the barrier top")
}

func remdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remd",
		Short: "replica exchange over a temperature ladder",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			pot, _, _ := setup(cfg)

			n := len(cfg.Replica.Betas)
			x0 := make([]dynamo.Position, n)
			for i := range x0 {
				x0[i] = pot.Minimum(2, false)
			}

			rcfg := replica.Config{
				Betas:             cfg.Replica.Betas,
				Timestep:          cfg.Timestep,
				Diffusion:         cfg.Diffusion,
				Steps:             cfg.Replica.Steps,
				ExchangeFrequency: cfg.Replica.ExchangeFrequency,
				OutputStride:      cfg.Replica.OutputStride,
				Seed:              cfg.Seed,
			}
			if cfg.Replica.SwapLabels {
				rcfg.Swap = replica.SwapLabels
			}
			if cfg.Replica.AdjacentPairs {
				rcfg.Pair = replica.PairAdjacent
			}

			ctrl, err := replica.NewController(pot, x0, rcfg)
			if err != nil {
				return err
			}
			res, err := ctrl.Run()
			if err != nil {
				return err
			}

			fmt.Printf("exchange attempts: %d\n\n", res.Matrix.TotalAttempts())
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprint(w, "pair\tattempted\taccepted\trate\n")
			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					if res.Matrix.Attempted(i, j) == 0 {
						continue
					}
					fmt.Fprintf(w, "%d-%d\t%d\t%d\t%.3f\n",
						i, j, res.Matrix.Attempted(i, j), res.Matrix.Accepted(i, j), res.Matrix.AcceptanceRate(i, j))
				}
			}
			w.Flush()

			if save {
				return saveRun(cfg, "remd", res.Trajectories, map[string]float64{
					"exchange_attempts": float64(res.Matrix.TotalAttempts()),
				})
			}
			return nil
		},
	}
}

func umbrellaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "umbrella",
		Short: "umbrella sampling along the reaction coordinate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			pot, params, cv := setup(cfg)

			windows, err := umbrella.Run(pot, cv, params, make(dynamo.Position, 2), umbrella.Config{
				Centers:       cfg.Umbrella.Centers,
				ForceConstant: cfg.Umbrella.ForceConstant,
				Steps:         cfg.Umbrella.Steps,
				Equilibration: cfg.Umbrella.Equilibration,
				Bins:          cfg.Umbrella.Bins,
				Lo:            cfg.Umbrella.Lo,
				Hi:            cfg.Umbrella.Hi,
				Seed:          cfg.Seed,
			})
			if err != nil {
				return err
			}

			for _, win := range windows {
				_, f := win.Corrected.DefinedPoints()
				fmt.Printf("window center %+.2f  (%d samples, %d defined bins)\n",
					win.Center, len(win.Samples), len(f))
				if len(f) > 1 {
					fmt.Println(asciigraph.Plot(f, asciigraph.Height(8), asciigraph.Width(64)))
				}
			}
			fmt.Printf("\nbins with multi-window overlap: %d\n", len(umbrella.Overlap(windows)))
			return nil
		},
	}
}

func tiCmd() *cobra.Command {
	var lambdaPoints int
	var steps int
	cmd := &cobra.Command{
		Use:   "ti",
		Short: "thermodynamic integration from double well to harmonic",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			source, params, _ := setup(cfg)
			target := potentials.NewHarmonic(2.0, make(dynamo.Position, 2))

			lambdas := make([]float64, lambdaPoints)
			dudl := make([]float64, lambdaPoints)
			for i := range lambdas {
				lambdas[i] = float64(i) / float64(lambdaPoints-1)
				mix := potentials.NewMix(source, target, lambdas[i])

				gen, err := traj.NewGenerator(mix, params, cfg.Seed+int64(i))
				if err != nil {
					return err
				}
				t, err := gen.Run(make(dynamo.Position, 2), steps)
				if err != nil {
					return err
				}

				var mean estimate.RunningMean
				for _, x := range t {
					mean.Add(mix.DUDLambda(x))
				}
				dudl[i] = mean.Mean()
			}

			dF, err := estimate.ThermodynamicIntegration(lambdas, dudl)
			if err != nil {
				return err
			}
			fmt.Printf("ΔF (thermodynamic integration) = %.4f\n", dF)
			fmt.Println("\n<dU/dλ> along the path:")
			fmt.Println(asciigraph.Plot(dudl, asciigraph.Height(8), asciigraph.Width(48)))
			return nil
		},
	}
	cmd.Flags().IntVar(&lambdaPoints, "lambdas", 11, "number of lambda points")
	cmd.Flags().IntVar(&steps, "steps", 20000, "sampling steps per lambda")
	return cmd
}

func fepCmd() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "fep",
		Short: "free-energy perturbation from double well to harmonic",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			source, params, _ := setup(cfg)
			target := potentials.NewHarmonic(2.0, make(dynamo.Position, 2))

			gen, err := traj.NewGenerator(source, params, cfg.Seed)
			if err != nil {
				return err
			}
			t, err := gen.Run(source.Minimum(2, false), steps)
			if err != nil {
				return err
			}

			z := estimate.NewZwanzig(params.Beta)
			for _, x := range t {
				z.Add(target.Energy(x) - source.Energy(x))
			}
			dF := z.FreeEnergy()
			if math.IsNaN(dF) {
				return fmt.Errorf("FEP estimate undefined after %d samples", z.Count())
			}
			fmt.Printf("ΔF (Zwanzig, %d samples) = %.4f\n", z.Count(), dF)
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 50000, "sampling steps in the source system")
	return cmd
}

func saveRun(cfg *config.Config, algorithm string, trajectories []traj.Trajectory, stats map[string]float64) error {
	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(storage.RunMetadata{
		Algorithm: algorithm,
		Potential: cfg.Potential,
		Seed:      cfg.Seed,
		Beta:      cfg.Beta,
		Timestep:  cfg.Timestep,
		Diffusion: cfg.Diffusion,
		Stats:     stats,
	}, trajectories)
	if err != nil {
		return err
	}
	fmt.Printf("saved run %s\n", runID)
	return nil
}
