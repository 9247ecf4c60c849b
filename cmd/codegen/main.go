package main

import (
	"context"
	"fmt"
	"go/format"
	"log"
	"os"
	"time"

	"github.com/delaneyj/slotparty/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	argCountKey = "count"
	outputKey   = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate typed slot wrappers",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  argCountKey,
				Usage: "Highest argument count to generate wrappers for",
				Value: 4,
			},
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "File to write",
				Value: "slot/typed.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for typed slots started !")
	defer func() {
		log.Printf("Codegen for typed slots finished in %v", time.Since(start))
	}()

	argCount := int(cmd.Uint(argCountKey))
	out := cmd.String(outputKey)
	log.Printf("Arguments: 0..%d, output: %s", argCount, out)

	contents, err := format.Source([]byte(templates.TypedGen(argCount)))
	if err != nil {
		return fmt.Errorf("formatting generated code: %w", err)
	}
	if err := os.WriteFile(out, contents, 0644); err != nil {
		return err
	}

	return nil
}
