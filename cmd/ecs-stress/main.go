package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/hive/ecs"
)

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Health struct {
	HP int
}

type Lifespan struct {
	Remaining int
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	churn := flag.Int("churn", 100, "Entities destroyed and respawned per update.")
	snapshotEvery := flag.Int("snapshot-every", 0, "Take a snapshot every N updates and restore it N/2 updates later (0 disables).")
	memProfile := flag.Bool("memprofile", false, "Write a memory profile via pkg/profile.")
	flag.Parse()

	if *memProfile {
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	log.Println("Starting ECS stress test...")

	w := ecs.NewWorld()
	rng := rand.New(rand.NewSource(1))

	log.Printf("Populating world with %d entities...\n", *entityCount)
	entities := make([]ecs.Entity, 0, *entityCount)
	for i := 0; i < *entityCount; i++ {
		entities = append(entities, spawnRandom(w, rng))
	}
	log.Println("Population complete.")

	report := &Report{
		Duration: *duration,
		Entities: *entityCount,
		Churn:    *churn,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	var snap *ecs.Snapshot

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			entities = update(w, rng, entities, *churn)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++

			if *snapshotEvery > 0 {
				if totalUpdates%int64(*snapshotEvery) == 0 {
					snap = w.Snapshot()
				} else if snap != nil && totalUpdates%int64(*snapshotEvery) == int64(*snapshotEvery/2) {
					w.Restore(snap)
					entities = collectAlive(w, entities)
					report.Restores++
				}
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.FinalStats = w.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

func spawnRandom(w *ecs.World, rng *rand.Rand) ecs.Entity {
	entries := []ecs.PrefabEntry{
		ecs.Comp(Position{X: rng.Float64() * 100, Y: rng.Float64() * 100}),
	}
	if rng.Intn(2) == 0 {
		entries = append(entries, ecs.Comp(Velocity{DX: rng.Float64(), DY: rng.Float64()}))
	}
	if rng.Intn(2) == 0 {
		entries = append(entries, ecs.Comp(Health{HP: 100}))
	}
	if rng.Intn(4) == 0 {
		entries = append(entries, ecs.Comp(Lifespan{Remaining: rng.Intn(200) + 1}))
	}
	return w.Instantiate(entries...)
}

// update runs one frame of the mixed workload: movement and decay queries,
// deferred expiry, then destroy/respawn churn.
func update(w *ecs.World, rng *rand.Rand, entities []ecs.Entity, churn int) []ecs.Entity {
	ecs.Query2(w, func(_ ecs.Entity, pos *Position, vel *Velocity) {
		pos.X += vel.DX
		pos.Y += vel.DY
	})

	cmd := ecs.NewCommands()
	ecs.Each(w, func(e ecs.Entity, l *Lifespan) {
		l.Remaining--
		if l.Remaining <= 0 {
			cmd.Destroy(e)
		}
	})
	cmd.Flush(w)

	for i := 0; i < churn && len(entities) > 0; i++ {
		j := rng.Intn(len(entities))
		w.Destroy(entities[j])
		entities[j] = spawnRandom(w, rng)
	}

	// Random component churn keeps the signatures and idx vectors moving.
	for i := 0; i < churn/4 && len(entities) > 0; i++ {
		e := entities[rng.Intn(len(entities))]
		if !w.IsAlive(e) {
			continue
		}
		if ecs.Has[Health](w, e) {
			ecs.Remove[Health](w, e)
		} else {
			ecs.Add(w, e, Health{HP: rng.Intn(100)})
		}
	}

	return collectAlive(w, entities)
}

func collectAlive(w *ecs.World, scratch []ecs.Entity) []ecs.Entity {
	alive := scratch[:0]
	ecs.Each(w, func(e ecs.Entity, _ *Position) {
		alive = append(alive, e)
	})
	return alive
}
