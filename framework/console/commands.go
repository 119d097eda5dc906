package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/km-arc/configy/framework/container"
)

func newValidateCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the document and build every container",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d definitions, %d containers\n",
				SuccessStyle.Render("✓"), len(a.Definitions()), len(a.Containers()))
			return nil
		},
	}
}

func newListCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List definitions in resolution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, TitleStyle.Render("Definitions"))
			for _, d := range a.Definitions() {
				var notes []string
				if d.Extends() != "" {
					notes = append(notes, "extends "+d.Extends())
				}
				if d.Abstract() {
					notes = append(notes, "abstract")
				}
				line := "  " + NameStyle.Render(d.Name())
				if len(notes) > 0 {
					line += " " + SubtitleStyle.Render("("+strings.Join(notes, ", ")+")")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newShowCommand(load loader) *cobra.Command {
	var (
		pretty bool
		width  int
	)

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Print a definition after inheritance and variable substitution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			d, ok := a.Definition(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", errUnknownDefinition, args[0])
			}
			if !pretty {
				fmt.Fprintln(cmd.OutOrStdout(), d.Node.String())
				return nil
			}
			out, err := renderXML(d.Node.String(), width)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "render the definition as a highlighted code block")
	cmd.Flags().IntVar(&width, "width", 100, "word wrap width for --pretty")
	return cmd
}

// renderXML wraps markup in a fenced xml block and renders it with glamour.
func renderXML(markup string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render("```xml\n" + markup + "\n```\n")
}

func newResolveCommand(load loader) *cobra.Command {
	var activate bool

	cmd := &cobra.Command{
		Use:   "resolve NAME",
		Short: "List the registrations of a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			c, ok := a.Container(args[0])
			if !ok {
				return fmt.Errorf("%w: %s (abstract definitions have no container)", errUnknownDefinition, args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, TitleStyle.Render(c.Name))
			var failed int
			for _, key := range c.Keys() {
				lifetime, _ := c.Lifetime(key)
				line := fmt.Sprintf("  %s %s", NameStyle.Render(key.String()), SubtitleStyle.Render(lifetime.String()))
				if activate {
					line += " " + resolveStatus(c, key, &failed)
				}
				fmt.Fprintln(out, line)
			}
			if failed > 0 {
				return fmt.Errorf("%d registrations failed to resolve", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&activate, "activate", false, "resolve every registration and report failures")
	return cmd
}

func resolveStatus(c *container.Container, key container.Key, failed *int) string {
	v, err := c.Resolve(key)
	if err != nil {
		*failed++
		return ErrorStyle.Render("✗ " + err.Error())
	}
	return SuccessStyle.Render(fmt.Sprintf("✓ %T", v))
}
