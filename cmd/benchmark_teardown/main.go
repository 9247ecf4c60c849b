package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/slotparty/bind"
	"github.com/delaneyj/slotparty/slot"
	"github.com/delaneyj/slotparty/trackable"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

type churnConfig struct {
	name            string  // friendly name for the test, should be unique
	objects         int     // tracked objects alive at the start of each iteration
	slotsPerObject  int     // slots bound to each object
	destroyFraction float64 // fraction of objects destroyed before the second pass
	iterations      int64
}

type named struct {
	trackable.Trackable
	name string
}

func main() {
	log.Print("Starting teardown benchmark, please wait...")
	defer log.Print("Finished teardown benchmark")

	cfgs := []churnConfig{
		{name: "few wide", objects: 10, slotsPerObject: 100, destroyFraction: 0.5, iterations: 2_000},
		{name: "many narrow", objects: 1_000, slotsPerObject: 1, destroyFraction: 0.5, iterations: 500},
		{name: "all die", objects: 100, slotsPerObject: 10, destroyFraction: 1, iterations: 1_000},
		{name: "none die", objects: 100, slotsPerObject: 10, destroyFraction: 0, iterations: 1_000},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"test", "objects", "slots", "destroy%", "nTimes", "calls", "time", "callRate", "digest",
	})

	testRepeats := 3
	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)

		var (
			best   = time.Hour
			calls  int64
			digest uint64
		)
		for i := 0; i < testRepeats; i++ {
			start := time.Now()
			c, d, err := runChurn(cfg)
			duration := time.Since(start)
			if err != nil {
				log.Fatalf("%s: %v", cfg.name, err)
			}
			if i > 0 && d != digest {
				log.Fatalf("%s: digest changed between runs: %x != %x", cfg.name, d, digest)
			}
			calls, digest = c, d
			if duration < best {
				best = duration
			}
		}

		callRate := float64(calls) / (float64(best) / float64(time.Millisecond))
		table.Append([]string{
			cfg.name,
			humanize.Comma(int64(cfg.objects)),
			humanize.Comma(int64(cfg.objects * cfg.slotsPerObject)),
			fmt.Sprint(100 * cfg.destroyFraction),
			humanize.Comma(cfg.iterations),
			humanize.Comma(calls),
			fmt.Sprint(best),
			humanize.Comma(int64(callRate)) + "/ms",
			strconv.FormatUint(digest, 16),
		})
	}
	table.Render()
}

// runChurn calls every slot, destroys a share of the objects, calls every
// slot again and closes the rest. It returns the number of handler calls and
// a digest of the names the handler saw.
func runChurn(cfg churnConfig) (calls int64, digest uint64, err error) {
	h := xxhash.New()
	handler := func(n *named) {
		calls++
		h.WriteString(n.name)
	}

	destroyed := int(float64(cfg.objects) * cfg.destroyFraction)
	for it := int64(0); it < cfg.iterations; it++ {
		objects := make([]*named, cfg.objects)
		slots := make([]*slot.Slot, 0, cfg.objects*cfg.slotsPerObject)
		for i := range objects {
			objects[i] = &named{name: "obj" + strconv.Itoa(i)}
			for j := 0; j < cfg.slotsPerObject; j++ {
				slots = append(slots, slot.New(bind.Bind(handler, 0, bind.Ref(objects[i]))))
			}
		}

		for _, s := range slots {
			s.Call()
		}
		for _, o := range objects[:destroyed] {
			o.Destroy()
		}
		for _, s := range slots {
			s.Call()
		}
		for _, s := range slots {
			s.Close()
		}

		for _, o := range objects {
			if n := o.Pending(); n != 0 {
				return 0, 0, fmt.Errorf("%s leaked %d notifiers", o.name, n)
			}
		}
	}

	perIteration := int64((2*cfg.objects - destroyed) * cfg.slotsPerObject)
	if want := perIteration * cfg.iterations; calls != want {
		return 0, 0, fmt.Errorf("got %d calls, want %d", calls, want)
	}
	return calls, h.Sum64(), nil
}
