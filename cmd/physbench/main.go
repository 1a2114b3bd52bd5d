package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/milk9111/doomenstein/common"
	"github.com/milk9111/doomenstein/physics"
	"github.com/milk9111/doomenstein/scenes"
)

func main() {
	sceneName := flag.String("scene", "floor_and_discs", "scene name in scenes/ (basename, .yaml optional)")
	steps := flag.Int("steps", 600, "number of fixed steps to run")
	every := flag.Int("every", 0, "print body state every N steps (0 prints only the final state)")
	frameDt := flag.Float64("frame", 0, "drive the world through a clock advanced by this many seconds per frame instead of stepping directly")
	dumpYAML := flag.Bool("yaml", false, "print the final state as scene YAML")
	list := flag.Bool("list", false, "list embedded scenes and exit")
	flag.Parse()

	if *list {
		for _, name := range scenes.List() {
			fmt.Println(name)
		}
		return
	}

	clock := common.NewGameClock()
	scene, err := scenes.LoadAndBuild(*sceneName, physics.WithClock(clock))
	if err != nil {
		log.Fatal(err)
	}
	world := scene.Physics

	start := time.Now()
	if *frameDt > 0 {
		for world.FrameID() < uint64(*steps) {
			clock.Advance(*frameDt)
			world.Update()
			if *every > 0 && world.FrameID()%uint64(*every) == 0 {
				printState(scene)
			}
		}
	} else {
		dt := world.FixedDeltaTime()
		for i := 1; i <= *steps; i++ {
			world.AdvanceSimulation(dt)
			if *every > 0 && i%*every == 0 {
				printState(scene)
			}
		}
	}
	elapsed := time.Since(start)

	if *dumpYAML {
		data, err := scene.Snapshot().Marshal()
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(data)
		return
	}

	printState(scene)
	fmt.Printf("%d steps in %v (%.1f us/step), %d contacts cached\n",
		world.FrameID(), elapsed, float64(elapsed.Microseconds())/float64(max(world.FrameID(), 1)), world.ContactCount())
}

func printState(scene *scenes.Scene) {
	bodies := scene.Bodies()
	sort.Slice(bodies, func(i, j int) bool { return bodies[i].Name < bodies[j].Name })

	fmt.Printf("frame %d\n", scene.Physics.FrameID())
	for _, sb := range bodies {
		rb := sb.Body
		p, v := rb.Position(), rb.Velocity()
		fmt.Printf("  %-12s %-9s pos (%9.4f, %9.4f) rot %8.4f vel (%9.4f, %9.4f) w %8.4f\n",
			sb.Name, rb.Mode(), p.X, p.Y, rb.Rotation(), v.X, v.Y, rb.AngularVelocity())
	}
}
