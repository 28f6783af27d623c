package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"gov-ix-sol/internal/config"
	"gov-ix-sol/pkg/logger"

	"github.com/zeromicro/go-zero/core/conf"
)

var configFile = flag.String("f", "", "the config file, e.g. etc/ixcodec.yaml")

func main() {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
			logger.Sync()
			os.Exit(2)
		}
	}()

	flag.Usage = usage
	flag.Parse()

	c := config.Default()
	if *configFile != "" {
		conf.MustLoad(*configFile, &c)
	}
	if err := logger.Init(c.Log.ToLogOption()); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	if err := run(c, os.Stdout, flag.Args()); err != nil {
		logger.Errorf("[ixcodec] %s failed: %v", flag.Arg(0), err)
		fmt.Fprintln(os.Stderr, err)
		logger.Sync()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: ixcodec [-f config.yaml] <command> [flags]

Commands:
  upgrade        build a BPF upgradeable loader Upgrade instruction
  set-authority  build a BPF upgradeable loader SetAuthority instruction
  manifest       encode an instruction described by a YAML manifest
  decode         decode an encoded instruction and print it

Run "ixcodec <command> -h" for command flags.
`)
}
