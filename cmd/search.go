package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/jukebox/internal/formatter"
	"github.com/desertthunder/jukebox/internal/jukebox"
	"github.com/desertthunder/jukebox/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search runs a single query and prints the results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	r.logger.Info("searching", "service", r.searcher.Name(), "query", query)

	videos, err := r.searcher.Search(ctx, query)
	if err != nil {
		return jukebox.AlertFor(err)
	}

	results := formatter.Results{Query: query, Videos: videos}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteExport(results, cmd.String("format"), path); err != nil {
			return err
		}
		r.logger.Info("results written", "path", path, "count", len(videos))
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, cmd.Bool("pretty"))
	}

	data, err := formatter.Export(results, cmd.String("format"))
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}
