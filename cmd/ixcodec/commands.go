package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"

	"gov-ix-sol/internal/config"
	"gov-ix-sol/internal/logic/adapter"
	"gov-ix-sol/internal/logic/builder"
	"gov-ix-sol/internal/logic/pipeline"
	"gov-ix-sol/internal/sink"
	"gov-ix-sol/internal/svc"
	"gov-ix-sol/internal/types"
)

var errUsage = errors.New("usage error")

func run(c config.Config, stdout io.Writer, args []string) error {
	name, rest := args[0], args[1:]
	switch name {
	case "upgrade":
		return runUpgrade(c, stdout, rest)
	case "set-authority":
		return runSetAuthority(c, stdout, rest)
	case "manifest":
		return runManifest(c, stdout, rest)
	case "decode":
		return runDecode(stdout, rest)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

func runUpgrade(c config.Config, stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("upgrade", flag.ContinueOnError)
	program := fs.String("program", "", "program address (base58)")
	buffer := fs.String("buffer", "", "buffer account holding the new bytecode (base58)")
	authority := fs.String("authority", "", "current upgrade authority (base58)")
	spill := fs.String("spill", "", "account receiving the buffer lamports, defaults to authority")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *spill == "" {
		*spill = *authority
	}

	keys, err := parsePubkeys(map[string]string{
		"program": *program, "buffer": *buffer, "authority": *authority, "spill": *spill,
	})
	if err != nil {
		return err
	}

	ix, err := builder.Upgrade(keys["program"], keys["buffer"], keys["authority"], keys["spill"])
	if err != nil {
		return err
	}
	return encodeAndEmit(c, stdout, adapter.WrapSDK(ix))
}

func runSetAuthority(c config.Config, stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("set-authority", flag.ContinueOnError)
	program := fs.String("program", "", "program address (base58)")
	current := fs.String("current", "", "current upgrade authority (base58)")
	next := fs.String("new", "", "new upgrade authority (base58), empty makes the program immutable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	keys, err := parsePubkeys(map[string]string{"program": *program, "current": *current})
	if err != nil {
		return err
	}

	var nextKey *types.Pubkey
	if *next != "" {
		k, err := types.TryPubkeyFromBase58(*next)
		if err != nil {
			return fmt.Errorf("%w: -new: %v", errUsage, err)
		}
		nextKey = &k
	}

	ix, err := builder.SetUpgradeAuthority(keys["program"], keys["current"], nextKey)
	if err != nil {
		return err
	}
	return encodeAndEmit(c, stdout, adapter.WrapSDK(ix))
}

func runManifest(c config.Config, stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("manifest", flag.ContinueOnError)
	file := fs.String("file", "", "YAML manifest path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("%w: -file is required", errUsage)
	}

	ix, err := builder.LoadManifest(*file)
	if err != nil {
		return err
	}
	return encodeAndEmit(c, stdout, ix)
}

func runDecode(stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	text := fs.String("text", "", "encoded instruction, may also be given as the first argument")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *text == "" {
		*text = fs.Arg(0)
	}
	if *text == "" {
		return fmt.Errorf("%w: nothing to decode", errUsage)
	}

	ix, err := pipeline.Decode(*text)
	if err != nil {
		return err
	}
	printInstruction(stdout, ix)
	return nil
}

// encodeAndEmit 自检失败时直接返回错误，任何 sink 都不会收到文本
func encodeAndEmit(c config.Config, stdout io.Writer, n adapter.Native) error {
	out, err := pipeline.Encode(n)
	if err != nil {
		return err
	}

	sc, err := svc.NewServiceContext(c, stdout)
	if err != nil {
		return err
	}
	defer sc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), c.EmitTimeout())
	defer cancel()
	return sink.EmitAll(ctx, sc.Sinks, out)
}

func printInstruction(w io.Writer, ix *adapter.Instruction) {
	fmt.Fprintf(w, "program: %s\n", ix.Program)
	fmt.Fprintf(w, "accounts: %d\n", len(ix.Accounts))
	for i, m := range ix.Accounts {
		fmt.Fprintf(w, "  #%-2d %-44s signer=%t writable=%t\n", i, m.Pubkey, m.IsSigner, m.IsWritable)
	}
	fmt.Fprintf(w, "data: %s\n", hex.EncodeToString(ix.Payload))
}

func parsePubkeys(args map[string]string) (map[string]types.Pubkey, error) {
	keys := make(map[string]types.Pubkey, len(args))
	for name, s := range args {
		if s == "" {
			return nil, fmt.Errorf("%w: -%s is required", errUsage, name)
		}
		k, err := types.TryPubkeyFromBase58(s)
		if err != nil {
			return nil, fmt.Errorf("%w: -%s: %v", errUsage, name, err)
		}
		keys[name] = k
	}
	return keys, nil
}
