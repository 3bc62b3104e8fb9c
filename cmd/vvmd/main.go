package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/florianjoerg/vvmd/internal/config"
	"github.com/florianjoerg/vvmd/internal/forcefield"
	"github.com/florianjoerg/vvmd/internal/md"
	"github.com/florianjoerg/vvmd/internal/metrics"
	"github.com/florianjoerg/vvmd/internal/sim"
	"github.com/florianjoerg/vvmd/internal/storage"
	"github.com/florianjoerg/vvmd/internal/thermostat"
	"github.com/florianjoerg/vvmd/internal/tui"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	steps      int
	molecules  int
	sampleGap  int
	seed       int64

	temperature float64
	drudeTemp   float64
	stepSize    float64
	comGroup    bool
	langevin    bool
	friction    float64
	eField      float64
	cosAccel    float64
	maxDrude    float64
	precision   string

	stepsPerTick int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vvmd",
		Short: "velocity-Verlet integrator for Drude polarizable systems",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".vvmd", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [system]",
		Short: "run a simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [system]",
		Short: "run with a live temperature view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerTick, "steps-per-tick", 20, "integration steps per frame")

	viscCmd := &cobra.Command{
		Use:   "viscosity [system]",
		Short: "estimate viscosity with a cosine acceleration profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runViscosity,
	}
	addRunFlags(viscCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list completed runs",
		RunE:  listRuns,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write a default configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, viscCmd, listCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&steps, "steps", 10000, "number of integration steps")
	cmd.Flags().IntVar(&molecules, "molecules", 64, "number of molecules")
	cmd.Flags().IntVar(&sampleGap, "sample", 50, "steps between samples")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&temperature, "temp", config.DefaultTemperature, "atom temperature (K)")
	cmd.Flags().Float64Var(&drudeTemp, "drude-temp", config.DefaultDrudeTemperature, "Drude temperature (K)")
	cmd.Flags().Float64Var(&stepSize, "dt", config.DefaultStepSize, "step size (ps)")
	cmd.Flags().BoolVar(&comGroup, "com-group", false, "thermostat molecular COM motion separately")
	cmd.Flags().BoolVar(&langevin, "langevin", false, "thermostat all particles with Langevin dynamics")
	cmd.Flags().Float64Var(&friction, "friction", config.DefaultFriction, "Langevin friction (1/ps)")
	cmd.Flags().Float64Var(&eField, "efield", 0, "electric field along z (kJ/(nm e))")
	cmd.Flags().Float64Var(&cosAccel, "cos-accel", 0, "cosine acceleration amplitude (nm/ps^2)")
	cmd.Flags().Float64Var(&maxDrude, "max-drude", 0, "Drude hard wall distance (nm), 0 disables")
	cmd.Flags().StringVar(&precision, "precision", "double", "double, mixed or single")
}

// buildConfig merges the optional yaml file with command line flags.
// Flags that were set explicitly win over the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	set := func(name string, apply func()) {
		if configFile == "" || cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("temp", func() { cfg.Temperature = temperature })
	set("drude-temp", func() { cfg.DrudeTemperature = drudeTemp })
	set("dt", func() { cfg.StepSize = stepSize })
	set("com-group", func() { cfg.UseCOMTempGroup = comGroup })
	set("friction", func() { cfg.Friction = friction })
	set("efield", func() { cfg.ElectricField = eField })
	set("cos-accel", func() { cfg.CosAcceleration = cosAccel })
	set("max-drude", func() { cfg.MaxDrudeDistance = maxDrude })
	set("seed", func() { cfg.Seed = seed })
	set("precision", func() { cfg.Precision = precision })
	return cfg, nil
}

// buildSystem assembles a demo topology on a cubic lattice. The
// "dimer" system is one heavy core with an attached Drude shell per
// molecule; "atoms" is plain unpolarized particles.
func buildSystem(name string, nMol int) (*md.Topology, *md.State, *forcefield.Harmonic, error) {
	const (
		coreMass  = 15.999
		shellMass = 0.4
		drudeK    = 4184.0 // kJ/(mol nm^2)
		spacing   = 0.5    // nm
	)

	polarized := false
	switch name {
	case "dimer":
		polarized = true
	case "atoms":
	default:
		return nil, nil, nil, fmt.Errorf("unknown system %q (want dimer or atoms)", name)
	}

	perMol := 1
	if polarized {
		perMol = 2
	}
	n := nMol * perMol

	side := int(math.Ceil(math.Cbrt(float64(nMol))))
	box := float64(side) * spacing

	topo := &md.Topology{
		Masses:  make([]float64, n),
		Charges: make([]float64, n),
		Box:     md.Vec3{X: box, Y: box, Z: box},
	}
	state := md.NewState(n)

	for m := 0; m < nMol; m++ {
		ix, iy, iz := m%side, (m/side)%side, m/(side*side)
		origin := md.Vec3{
			X: (float64(ix) + 0.5) * spacing,
			Y: (float64(iy) + 0.5) * spacing,
			Z: (float64(iz) + 0.5) * spacing,
		}
		core := m * perMol
		topo.Masses[core] = coreMass
		topo.Charges[core] = 1.0
		state.Pos[core] = origin
		residue := []int{core}
		if polarized {
			shell := core + 1
			topo.Masses[shell] = shellMass
			topo.Charges[shell] = -1.0
			state.Pos[shell] = origin.Add(md.Vec3{X: 0.005})
			topo.DrudePairs = append(topo.DrudePairs, md.DrudePair{Core: core, Shell: shell})
			residue = append(residue, shell)
		}
		topo.Residues = append(topo.Residues, residue)
		topo.Electrolyte = append(topo.Electrolyte, core)
		if langevin {
			topo.Langevin = append(topo.Langevin, residue...)
		}
	}

	force := forcefield.NewHarmonic(topo, nil, drudeK)
	return topo, state, force, nil
}

func setup(cmd *cobra.Command, system string) (*sim.Integrator, *md.Topology, *forcefield.Harmonic, *config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	topo, state, force, err := buildSystem(system, molecules)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	integ, err := sim.New(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := integ.Initialize(topo, state, force, md.NoConstraints{}); err != nil {
		return nil, nil, nil, nil, err
	}

	rng := md.NewGaussianStream(cfg.Seed)
	md.MaxwellVelocities(topo, state, cfg.Temperature, rng)
	return integ, topo, force, cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	system := args[0]
	integ, topo, force, cfg, err := setup(cmd, system)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	temp := metrics.NewTemperature(topo)
	drift := metrics.NewEnergyDrift(topo, force)
	integ.AddObserver(temp)
	integ.AddObserver(drift)

	fmt.Printf("running %s: %d particles, %d steps, dt=%g ps\n",
		system, topo.NumParticles(), steps, cfg.StepSize)
	start := time.Now()

	var series []storage.TempSample
	for done := 0; done < steps; {
		block := sampleGap
		if done+block > steps {
			block = steps - done
		}
		if err := integ.Step(block); err != nil {
			return err
		}
		done += block

		temps := integ.GroupTemperatures()
		series = append(series, storage.TempSample{
			Time:    integ.Time(),
			Atom:    temps[thermostat.GroupAtom],
			COM:     temps[thermostat.GroupCOM],
			Drude:   temps[thermostat.GroupDrude],
			TotalKE: integ.ComputeKineticEnergy(),
		})
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		System:          system,
		Seed:            cfg.Seed,
		StepSize:        cfg.StepSize,
		Steps:           steps,
		Temperature:     cfg.Temperature,
		CosAcceleration: cfg.CosAcceleration,
		Metrics: map[string]float64{
			temp.Name():  temp.Value(),
			drift.Name(): drift.Value(),
		},
	}, series)
	if err != nil {
		return err
	}

	atomTrace := make([]float64, len(series))
	for i, s := range series {
		atomTrace[i] = s.Atom
	}
	if len(atomTrace) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(atomTrace,
			asciigraph.Height(10), asciigraph.Width(80),
			asciigraph.Caption("atom temperature (K)")))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\nrun id\t%s\n", runID)
	fmt.Fprintf(w, "wall time\t%v\n", elapsed)
	fmt.Fprintf(w, "sim time\t%.4f ps\n", integ.Time())
	fmt.Fprintf(w, "mean temperature\t%.2f K\n", temp.Value())
	fmt.Fprintf(w, "energy drift\t%.3e\n", drift.Value())
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	system := args[0]
	integ, _, _, _, err := setup(cmd, system)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(integ, system, stepsPerTick))
	_, err = p.Run()
	return err
}

func runViscosity(cmd *cobra.Command, args []string) error {
	system := args[0]
	if !cmd.Flags().Changed("cos-accel") {
		cosAccel = 0.02
	}
	integ, topo, _, cfg, err := setup(cmd, system)
	if err != nil {
		return err
	}
	if cfg.CosAcceleration == 0 {
		return fmt.Errorf("viscosity requires a nonzero cosine acceleration")
	}

	fmt.Printf("viscosity run: %d particles, A=%g nm/ps^2, Lz=%g nm\n",
		topo.NumParticles(), cfg.CosAcceleration, topo.Box.Z)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME (ps)\tVMAX (nm/ps)\t1/VISCOSITY (1/(Pa s))")
	for done := 0; done < steps; {
		block := sampleGap
		if done+block > steps {
			block = steps - done
		}
		if err := integ.Step(block); err != nil {
			return err
		}
		done += block

		vMax, invVis := integ.Viscosity()
		fmt.Fprintf(w, "%.3f\t%.5f\t%.5g\n", integ.Time(), vMax, invVis)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tSTEPS\tDT\tTEMP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%.1f\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.StepSize,
			run.Temperature,
		)
	}
	return w.Flush()
}
