// Package cmd - unit commands
package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dimensional/core/dimension"
	"dimensional/core/naming"
	"dimensional/core/quantity"
	"dimensional/internal/config"
	"dimensional/internal/errors"
	"dimensional/internal/logging"
)

var (
	composeOp string
	nameLong  bool
	nameASCII bool
)

// composeCmd multiplies or divides two unit expressions
var composeCmd = &cobra.Command{
	Use:   "compose <expr> <expr>",
	Short: "Compose two units",
	Long: `Multiply (default) or divide two unit expressions and print the result
with symbols and with spelled names.

Examples:
  dimensional compose m/s s
  dimensional compose --op div km h`,
	Args: cobra.ExactArgs(2),
	RunE: runCompose,
}

// convertCmd converts a value between units
var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert a value between units",
	Long: `Convert a value from one unit to another. Proportional units convert by
their scale factors; offset scales such as °C and °F use the catalog's
registered conversions.

Examples:
  dimensional convert 1.5 km m
  dimensional convert 36 km/h m/s
  dimensional convert 212 °F °C`,
	Args: cobra.ExactArgs(3),
	RunE: runConvert,
}

// nameCmd renders a unit expression
var nameCmd = &cobra.Command{
	Use:   "name <expr>",
	Short: "Render a unit expression",
	Args:  cobra.ExactArgs(1),
	RunE:  runName,
}

func init() {
	composeCmd.Flags().StringVar(&composeOp, "op", "mul", "operation (mul, div)")
	nameCmd.Flags().BoolVarP(&nameLong, "long", "l", false, "use spelled names")
	nameCmd.Flags().BoolVar(&nameASCII, "ascii", false, "write exponents as ^n")

	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(nameCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	left, err := env.parser.Parse(args[0])
	if err != nil {
		return err
	}
	right, err := env.parser.Parse(args[1])
	if err != nil {
		return err
	}

	var result dimension.Unit
	switch composeOp {
	case "mul":
		result, err = dimension.Multiply(left, right)
	case "div":
		result, err = dimension.Divide(left, right)
	default:
		return errors.Newf(errors.TypeInput, "unknown operation %q (want mul or div)", composeOp)
	}
	if err != nil {
		return err
	}

	long := env.render
	long.Long = true

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, display(naming.Render(result, env.render)))
	fmt.Fprintln(out, display(naming.Render(result, long)))
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	value, err := decimal.NewFromString(args[0])
	if err != nil {
		return errors.Wrapf(errors.TypeInput, err, "invalid value %q", args[0])
	}
	from, err := env.parser.Parse(args[1])
	if err != nil {
		return err
	}
	to, err := env.parser.Parse(args[2])
	if err != nil {
		return err
	}

	converted, err := quantity.NewDecimal(value, from).ConvertTo(to, env.table)
	if err != nil {
		return err
	}

	logging.Debug("converted",
		zap.String("value", value.String()),
		zap.String("from", naming.ShortName(from)),
		zap.String("to", naming.ShortName(to)))

	precision := config.Get().Display.Precision
	text := converted.Value().Round(precision).String()
	if unit := naming.Render(converted.Unit(), env.render); unit != "" {
		text += " " + unit
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func runName(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	u, err := env.parser.Parse(args[0])
	if err != nil {
		return err
	}

	opts := env.render
	opts.Long = nameLong
	opts.ASCII = opts.ASCII || nameASCII
	fmt.Fprintln(cmd.OutOrStdout(), display(naming.Render(u, opts)))
	return nil
}

// display shows the dimensionless unit as 1
func display(rendered string) string {
	if rendered == "" {
		return "1"
	}
	return rendered
}
