package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/radityabagas/bucketadmin/internal/config"
	"github.com/radityabagas/bucketadmin/internal/domain"
	"github.com/radityabagas/bucketadmin/internal/storage"
	"github.com/radityabagas/bucketadmin/internal/transfer"
)

func newBucketFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "bucket",
		Usage:    "Source bucket name",
		Required: true,
		EnvVars:  []string{"BUCKET"},
	}
}

func newStrictFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "strict",
		Usage: "Keep source objects whose transfer failed instead of deleting the whole prefix",
	}
}

func newOrchestrator(c *cli.Context) (*transfer.Orchestrator, error) {
	cfg := config.Load()
	store, err := storage.NewMinioStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object store client: %w", err)
	}

	opts := []transfer.Option{
		transfer.WithPageSize(cfg.Transfer.PageSize),
		transfer.WithPacer(transfer.FixedPacer{Delay: time.Duration(cfg.Transfer.PageDelayMs) * time.Millisecond}),
	}
	if c.Bool("strict") {
		opts = append(opts, transfer.WithStrictFinalize())
	}
	return transfer.New(store, opts...), nil
}

func printResult(result any) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "bucketadmin",
		Usage: "Run folder operations against the object store",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create an empty folder (writes a placeholder object)",
				Flags: []cli.Flag{
					newBucketFlag(),
					&cli.StringFlag{Name: "name", Usage: "Folder path", Required: true},
				},
				Action: func(c *cli.Context) error {
					orch, err := newOrchestrator(c)
					if err != nil {
						return err
					}
					result, err := orch.Create(c.Context, c.String("bucket"), c.String("name"))
					if err != nil {
						return err
					}
					return printResult(result)
				},
			},
			{
				Name:  "rename",
				Usage: "Rename a folder within a bucket",
				Flags: []cli.Flag{
					newBucketFlag(),
					newStrictFlag(),
					&cli.StringFlag{Name: "old", Usage: "Current folder path", Required: true},
					&cli.StringFlag{Name: "new", Usage: "New folder path", Required: true},
				},
				Action: func(c *cli.Context) error {
					orch, err := newOrchestrator(c)
					if err != nil {
						return err
					}
					result, err := orch.Rename(c.Context, c.String("bucket"), c.String("old"), c.String("new"))
					if err != nil {
						return err
					}
					return printResult(result)
				},
			},
			{
				Name:  "copy",
				Usage: "Copy a folder into another bucket or prefix",
				Flags: []cli.Flag{
					newBucketFlag(),
					&cli.StringFlag{Name: "name", Usage: "Source folder path", Required: true},
					&cli.StringFlag{Name: "dest-bucket", Usage: "Destination bucket (defaults to source)"},
					&cli.StringFlag{Name: "dest-path", Usage: "Destination folder path (defaults to source)"},
				},
				Action: func(c *cli.Context) error {
					orch, err := newOrchestrator(c)
					if err != nil {
						return err
					}
					result, err := orch.Copy(c.Context, domain.OperationContext{
						SourceBucket:      c.String("bucket"),
						DestinationBucket: c.String("dest-bucket"),
						SourcePrefix:      c.String("name"),
						DestinationPrefix: c.String("dest-path"),
					})
					if err != nil {
						return err
					}
					return printResult(result)
				},
			},
			{
				Name:  "move",
				Usage: "Move a folder into another bucket or prefix",
				Flags: []cli.Flag{
					newBucketFlag(),
					newStrictFlag(),
					&cli.StringFlag{Name: "name", Usage: "Source folder path", Required: true},
					&cli.StringFlag{Name: "dest-bucket", Usage: "Destination bucket (defaults to source)"},
					&cli.StringFlag{Name: "dest-path", Usage: "Destination folder path (defaults to source)"},
				},
				Action: func(c *cli.Context) error {
					orch, err := newOrchestrator(c)
					if err != nil {
						return err
					}
					result, err := orch.Move(c.Context, domain.OperationContext{
						SourceBucket:      c.String("bucket"),
						DestinationBucket: c.String("dest-bucket"),
						SourcePrefix:      c.String("name"),
						DestinationPrefix: c.String("dest-path"),
					})
					if err != nil {
						return err
					}
					return printResult(result)
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a folder; without --force it only reports the object count",
				Flags: []cli.Flag{
					newBucketFlag(),
					&cli.StringFlag{Name: "name", Usage: "Folder path", Required: true},
					&cli.BoolFlag{Name: "force", Usage: "Actually delete; required for non-empty folders"},
				},
				Action: func(c *cli.Context) error {
					orch, err := newOrchestrator(c)
					if err != nil {
						return err
					}
					result, err := orch.Delete(c.Context, c.String("bucket"), c.String("name"), c.Bool("force"))
					if err != nil {
						return err
					}
					return printResult(result)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
