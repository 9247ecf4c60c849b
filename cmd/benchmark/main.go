package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/slotparty/bind"
	"github.com/delaneyj/slotparty/slot"
	"github.com/delaneyj/slotparty/trackable"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	profileKey = "profile"
)

var (
	ww = []int{1, 10, 100, 1_000}
	hh = []int{0, 1, 4, 16}
)

type param struct {
	trackable.Trackable
	hits int
}

func handler(p *param, xs ...int) {
	p.hits += 1 + len(xs)
}

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure slot invoke and invalidation latency",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Samples per benchmark",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Int(itersKey))
	log.Printf("warming up")
	benchmarkInvoke(iters, false)

	benchmarkInvoke(iters, true)
	if err := benchmarkInvalidate(iters, true); err != nil {
		return err
	}
	return nil
}

// trackedSlot binds p by reference behind depth trailing binds.
func trackedSlot(p *param, depth int) *slot.Slot {
	var target bind.Functor = bind.Fun(handler)
	for j := 0; j < depth; j++ {
		target = bind.BindLast(target, j)
	}
	return slot.New(bind.Bind(target, 0, bind.Ref(p)))
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{
			name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

func benchmarkInvoke(iters int, shouldRender bool) {
	tbl := newTable("Slot invoke")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			p := &param{}
			slots := make([]*slot.Slot, w)
			for i := range slots {
				slots[i] = trackedSlot(p, h)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				for _, s := range slots {
					s.Call()
				}
				tach.AddTime(time.Since(start))
			}

			for _, s := range slots {
				s.Close()
			}
			p.Destroy()

			appendCalc(tbl, fmt.Sprintf("invoke: %d * depth %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkInvalidate(iters int, shouldRender bool) error {
	tbl := newTable("Tracked destroy")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			for i := 0; i < iters; i++ {
				p := &param{}
				slots := make([]*slot.Slot, w)
				for j := range slots {
					slots[j] = trackedSlot(p, h)
				}

				start := time.Now()
				p.Destroy()
				tach.AddTime(time.Since(start))

				for _, s := range slots {
					s.Call()
					if s.Valid() {
						return fmt.Errorf("slot still valid after destroy (%d * depth %d)", w, h)
					}
				}
				if p.hits != 0 {
					return fmt.Errorf("destroyed param was called %d times", p.hits)
				}
			}

			appendCalc(tbl, fmt.Sprintf("destroy: %d * depth %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
	return nil
}
