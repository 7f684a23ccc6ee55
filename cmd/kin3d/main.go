// Headless driver for the kin3d physics core: settling demo, stress
// timing, and scene-file playback.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"kin3d/internal/components"
	"kin3d/internal/config"
	"kin3d/internal/engine"
	"kin3d/internal/physics"
	"kin3d/internal/scenefile"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	dt         float32
	duration   float32
	scenePath  string
	seed       int64
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kin3d",
		Short: "rigid-body physics sandbox",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "solver config file (YAML)")
	rootCmd.PersistentFlags().Float32Var(&dt, "dt", 1.0/60.0, "fixed timestep in seconds")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable step logging")

	settleCmd := &cobra.Command{
		Use:   "settle",
		Short: "drop a box onto a floor and chart its height until it rests",
		RunE:  runSettle,
	}
	settleCmd.Flags().Float32Var(&duration, "time", 5.0, "max simulated seconds")

	stressCmd := &cobra.Command{
		Use:   "stress",
		Short: "time full physics steps at increasing object counts",
		RunE:  runStress,
	}
	stressCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	runCmd := &cobra.Command{
		Use:   "run [scene.json]",
		Short: "step a scene file for a fixed duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenePath = args[0]
			return runScene()
		},
	}
	runCmd.Flags().Float32Var(&duration, "time", 10.0, "simulated seconds")

	rootCmd.AddCommand(settleCmd, stressCmd, runCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newWorld() (*physics.PhysicsWorld, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	var logger *zap.Logger
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}
	return physics.NewPhysicsWorldWith(cfg.ToParams(), logger), nil
}

func runSettle(cmd *cobra.Command, args []string) error {
	world, err := newWorld()
	if err != nil {
		return err
	}

	scene := engine.NewScene("settle")

	floor := engine.NewGameObject("Floor")
	floor.AddComponent(components.NewBoxCollider(rl.Vector3{X: 20, Y: 1, Z: 20}))
	kin := components.NewRigidbody()
	kin.IsKinematic = true
	floor.AddComponent(kin)
	scene.AddGameObject(floor)

	box := engine.NewGameObject("Box")
	box.Transform.Position = rl.Vector3{Y: 5}
	box.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	box.AddComponent(components.NewRigidbody())
	scene.AddGameObject(box)

	rb := engine.GetComponent[*components.Rigidbody](box)
	steps := int(duration / dt)
	heights := make([]float64, 0, steps)
	settledAt := -1

	for i := 0; i < steps; i++ {
		world.Step(scene, dt)
		heights = append(heights, float64(box.Transform.Position.Y))
		if settledAt < 0 && rl.Vector3Length(rb.Velocity) < 0.1 && box.Transform.Position.Y < 1.1 {
			settledAt = i
		}
	}

	graph := asciigraph.Plot(heights,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("box height over time"),
	)
	fmt.Println(graph)

	if settledAt >= 0 {
		fmt.Printf("settled after %d steps (%.2fs) at y=%.4f\n",
			settledAt, float32(settledAt)*dt, box.Transform.Position.Y)
	} else {
		fmt.Printf("did not settle within %d steps (final y=%.4f, speed=%.4f)\n",
			steps, box.Transform.Position.Y, rl.Vector3Length(rb.Velocity))
	}
	return nil
}

func runStress(cmd *cobra.Command, args []string) error {
	world, err := newWorld()
	if err != nil {
		return err
	}

	for _, count := range []int{50, 100, 250, 500} {
		scene := buildStressScene(count)

		// Warm up once, then time full steps.
		world.Step(scene, dt)
		const iterations = 10
		start := time.Now()
		for i := 0; i < iterations; i++ {
			world.Step(scene, dt)
		}
		elapsed := time.Since(start) / iterations

		fmt.Printf("%5d bodies: %10v per step\n", count, elapsed.Round(time.Microsecond))
	}
	return nil
}

func buildStressScene(count int) *engine.Scene {
	rng := rand.New(rand.NewSource(seed))
	scene := engine.NewScene("stress")

	floor := engine.NewGameObject("Floor")
	floor.AddComponent(components.NewBoxCollider(rl.Vector3{X: 200, Y: 1, Z: 200}))
	scene.AddGameObject(floor)

	// Spawn volume scales with count to keep density reasonable.
	spawnSize := 20.0 + float32(count)/10.0
	for i := 0; i < count; i++ {
		obj := engine.NewGameObject(fmt.Sprintf("Sphere%d", i))
		obj.Transform.Position = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: 1 + rng.Float32()*spawnSize,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		obj.AddComponent(components.NewSphereCollider(0.5 + rng.Float32()*0.5))
		obj.AddComponent(components.NewRigidbody())
		scene.AddGameObject(obj)
	}
	return scene
}

func runScene() error {
	world, err := newWorld()
	if err != nil {
		return err
	}
	scene, err := scenefile.Load(scenePath)
	if err != nil {
		return err
	}

	steps := int(duration / dt)
	for i := 0; i < steps; i++ {
		world.Step(scene, dt)
	}

	for _, obj := range scene.Roots() {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || rb.IsKinematic {
			continue
		}
		pos := obj.WorldPosition()
		fmt.Printf("%-20s pos=(%.3f, %.3f, %.3f) speed=%.4f\n",
			obj.Name, pos.X, pos.Y, pos.Z, rl.Vector3Length(rb.Velocity))
	}
	return nil
}
