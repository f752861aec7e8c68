package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bsv-blockchain/utxomatch/accounting"
	"github.com/bsv-blockchain/utxomatch/errors"
	"github.com/bsv-blockchain/utxomatch/matcher"
	"github.com/bsv-blockchain/utxomatch/model"
	"github.com/bsv-blockchain/utxomatch/resolver"
	"github.com/bsv-blockchain/utxomatch/settings"
	"github.com/bsv-blockchain/utxomatch/tracing"
	"github.com/bsv-blockchain/utxomatch/ulogger"
	"github.com/bsv-blockchain/utxomatch/util/safemath"
	"github.com/urfave/cli/v2"
	"lukechampine.com/uint128"
)

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "utxomatch",
		Usage:     "Match UTXOs against slot declarations",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log at debug level",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "decode",
				Usage:     "Print the name of an error code or host program error",
				ArgsUsage: "<code|program error|name>",
				Action:    decode,
			},
			{
				Name:   "inspect",
				Usage:  "Validate a declaration and print its slots",
				Action: inspect,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "decl", Usage: "YAML declaration file", Required: true},
				},
			},
			{
				Name:   "match",
				Usage:  "Match a UTXO fixture against a declaration",
				Action: match,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "decl", Usage: "YAML declaration file", Required: true},
					&cli.StringFlag{Name: "utxos", Usage: "JSON UTXO fixture file", Required: true},
					&cli.BoolFlag{Name: "strict", Usage: "Require candidates in declaration order"},
					&cli.BoolFlag{Name: "detailed", Usage: "Report which predicate rejected a candidate"},
				},
			},
			{
				Name:   "fee",
				Usage:  "Compute vsize * rate / per without intermediate overflow",
				Action: fee,
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "vsize", Required: true},
					&cli.Uint64Flag{Name: "rate", Usage: "Fee rate in satoshis per --per vbytes", Required: true},
					&cli.Uint64Flag{Name: "per", Value: 1000},
					&cli.Uint64Flag{Name: "total", Usage: "Input value; when set the change after --spent and the fee is printed too"},
					&cli.Uint64Flag{Name: "spent", Usage: "Output value"},
				},
			},
			{
				Name:   "share",
				Usage:  "Compute amount * part / whole for a 128-bit rune amount",
				Action: share,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "amount", Required: true},
					&cli.StringFlag{Name: "part", Required: true},
					&cli.StringFlag{Name: "whole", Required: true},
				},
			},
		},
	}
}

func newLogger(c *cli.Context, tSettings *settings.Settings) ulogger.Logger {
	level := tSettings.LogLevel
	if c.Bool("verbose") {
		level = "DEBUG"
	}

	return ulogger.New(tSettings.ServiceName, ulogger.WithLevel(level), ulogger.WithWriter(c.App.ErrWriter))
}

func decode(c *cli.Context) error {
	arg := strings.TrimSpace(c.Args().First())
	if arg == "" {
		return errors.NewInvalidArgumentError("decode needs a code, program error or name")
	}

	code, err := parseCode(arg)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(c.App.Writer, "%s (code %d, program error %d)\n", code, int32(code), code.ProgramError())

	return err
}

func parseCode(arg string) (errors.ERR, error) {
	if code, ok := errors.ParseERR(strings.ToUpper(arg)); ok {
		return code, nil
	}

	n, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return errors.ERR_UNKNOWN, errors.NewInvalidArgumentError("%q is not a code, program error or name", arg)
	}

	if uint32(n) >= errors.ProgramErrorOffset {
		code, ok := errors.FromProgramError(uint32(n))
		if !ok {
			return errors.ERR_UNKNOWN, errors.NewInvalidArgumentError("program error %d is not a known code", n)
		}

		return code, nil
	}

	if _, ok := errors.ERR_name[int32(n)]; !ok {
		return errors.ERR_UNKNOWN, errors.NewInvalidArgumentError("%d is not a known code", n)
	}

	return errors.ERR(n), nil
}

func inspect(c *cli.Context) error {
	df, err := loadDeclaration(c.String("decl"))
	if err != nil {
		return err
	}

	decl, err := df.IR()
	if err != nil {
		return err
	}

	w := c.App.Writer

	maxInputs := "unbounded"
	if n := decl.MaxInputs(); n >= 0 {
		maxInputs = strconv.Itoa(n)
	}

	fmt.Fprintf(w, "%s: %d slots, %d to %s inputs\n", decl.Name, len(decl.Fields), decl.MinInputs(), maxInputs)

	for _, f := range decl.Fields {
		kind := f.Kind.String()
		if f.Len > 0 {
			kind = fmt.Sprintf("%s[%d]", kind, f.Len)
		}

		fmt.Fprintf(w, "  %-16s %-10s %s\n", f.Ident, kind, f.Attr)
	}

	return nil
}

func match(c *cli.Context) error {
	tSettings := settings.NewSettings()
	if err := tSettings.Validate(); err != nil {
		return err
	}

	logger := newLogger(c, tSettings)

	if err := tracing.InitTracer(tSettings); err != nil {
		logger.Warnf("[match] tracing disabled: %v", err)
	}

	defer func() {
		_ = tracing.ShutdownTracer(context.Background())
	}()

	df, err := loadDeclaration(c.String("decl"))
	if err != nil {
		return err
	}

	decl, err := df.IR()
	if err != nil {
		return err
	}

	anchors, err := df.anchorMap()
	if err != nil {
		return err
	}

	infos, err := loadUtxos(c.String("utxos"))
	if err != nil {
		return err
	}

	size, err := safemath.IntToUint32(len(infos))
	if err != nil {
		return err
	}

	registry := resolver.NewRegistry(size, nil)
	registry.Register(infos...)

	r := resolver.NewCachedFromSettings(resolver.NewRetryingFromSettings(logger, registry, tSettings), tSettings)

	m := matcher.New(logger, tSettings, r,
		matcher.WithStrictOrder(c.Bool("strict") || tSettings.Matcher.StrictOrder),
		matcher.WithDetailedErrors(c.Bool("detailed") || tSettings.Matcher.DetailedErrors),
		matcher.WithAnchors(anchors),
	)

	raw := make([]model.UtxoMeta, len(infos))
	for i := range infos {
		raw[i] = infos[i].Meta
	}

	result, err := m.Match(c.Context, decl, raw)
	if err != nil {
		if wErr := writeFailure(c.App.Writer, err); wErr != nil {
			logger.Errorf("[match] could not write failure: %v", wErr)
		}

		return err
	}

	return writeResult(c.App.Writer, result)
}

func fee(c *cli.Context) error {
	f, err := accounting.Fee(c.Uint64("vsize"), c.Uint64("rate"), c.Uint64("per"))
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintln(c.App.Writer, f); err != nil || !c.IsSet("total") {
		return err
	}

	change, err := accounting.Change(c.Uint64("total"), c.Uint64("spent"), f)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.App.Writer, change)

	return err
}

func share(c *cli.Context) error {
	var args [3]uint128.Uint128

	for i, name := range []string{"amount", "part", "whole"} {
		v, err := uint128.FromString(c.String(name))
		if err != nil {
			return errors.NewInvalidArgumentError("--%s %q is not a 128-bit amount", name, c.String(name), err)
		}

		args[i] = v
	}

	v, err := accounting.RuneShare(args[0], args[1], args[2])
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.App.Writer, v)

	return err
}
