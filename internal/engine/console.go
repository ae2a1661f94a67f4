package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// RunConsole plays the game over a line-oriented reader and writer.
// End of input counts as quitting.
func RunConsole(ctx context.Context, g *Game, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	o := g.Start(ctx)
	for {
		if err := writeOutput(out, o); err != nil {
			return err
		}
		if o.Phase.Done() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			o = g.Quit()
			continue
		}
		o = g.Handle(ctx, scanner.Text())
	}
}

func writeOutput(w io.Writer, o Output) error {
	if o.Text != "" {
		if _, err := fmt.Fprintln(w, o.Text); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if o.Prompt != "" {
		if _, err := fmt.Fprintf(w, "\n%s ", o.Prompt); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
