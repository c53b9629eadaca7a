package main

import (
	"fmt"

	"github.com/fwojciec/feeddistill"
)

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	level, sources, err := prepare(deps, &c.Options, []string{c.Source})
	if err != nil {
		return err
	}

	results := deps.Runner.Run(deps.Ctx, sources, level, progressLogger(deps))
	if report(deps, results) > 0 {
		return results[0].Err
	}

	res := results[0]
	if res.Err != nil {
		// Unsupported: the notice is already printed and there is nothing to summarize.
		return nil
	}

	summary, err := deps.Summarizer.Summarize(deps.Ctx, res.Text, c.Prompt)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feeddistill.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, summary)
	return nil
}
