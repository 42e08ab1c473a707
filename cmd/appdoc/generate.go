package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
)

var errNotFound = errors.New("no document generated")

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	rawID := fs.String("id", "", "application id")
	baseURI := fs.String("base-uri", "", "base URI for template lookup, defaults to PUBLIC_BASE_URI")
	out := fs.String("out", "", "output file, stdout when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := uuid.Parse(*rawID)
	if err != nil {
		return fmt.Errorf("invalid -id %q: %w", *rawID, err)
	}

	ctx := context.Background()
	c, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	uri := *baseURI
	if uri == "" {
		uri = c.Config.PublicBaseURI
	}
	pdf, err := c.SvcDocuments.Generate(ctx, id, uri)
	if err != nil {
		return err
	}
	if pdf == nil {
		return fmt.Errorf("%w for application %s", errNotFound, id)
	}

	if *out == "" {
		_, err = os.Stdout.Write(pdf)
		return err
	}
	return os.WriteFile(*out, pdf, 0o644)
}
