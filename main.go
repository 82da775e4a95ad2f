package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/9seconds/chickadee/config"
	"github.com/9seconds/chickadee/providers"
)

const version = "0.1.0"

var (
	app = kingpin.New(
		"chickadee",
		"Extract IP addresses from text and enrich them with geolocation data")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("CHICKADEE_DEBUG").
		Bool()
	inputIPs = app.Flag("ips", "A text with addresses or a path to a plain text or gzip file.").
			Short('i').
			Required().
			String()
	columns = app.Flag("columns", "Comma-separated list of columns to output.").
		Short('c').
		String()
	configPath = app.Flag("config", "Path to the config.").
			Short('f').
			Envar("CHICKADEE_CONFIG").
			String()
	providerName = app.Flag("provider", "Enrichment provider: "+joinNames(providers.Names())+".").
			Short('p').
			String()
	unique = app.Flag("unique", "Resolve each address only once.").
		Short('u').
		Bool()
	routable = app.Flag("routable", "Skip unspecified, loopback and multicast addresses.").
			Short('r').
			Bool()
	excludeNetworks = app.Flag("exclude", "Skip addresses from this network. Can be repeated.").
			Short('x').
			Strings()
	documentOrder = app.Flag("document-order", "Keep addresses in order of appearance instead of IPv4 first.").
			Bool()
	strict = app.Flag("strict", "Abort if the first lookup has failed.").
		Bool()
)

func init() {
	app.Version(version)
	log.SetFormatter(&log.TextFormatter{})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	conf, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := applyFlags(conf); err != nil {
		log.Fatal(err)
	}

	opts := runOptions{
		Input:         *inputIPs,
		Columns:       parseColumns(*columns),
		Unique:        *unique,
		Routable:      *routable,
		DocumentOrder: *documentOrder,
	}

	ctx, cancel := makeRootContext()
	err = run(ctx, conf, opts, afero.NewOsFs(), os.Stdout, newLogger(os.Stderr))

	cancel()

	if err != nil {
		log.Fatal(err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.ParseFile(path)
}

func applyFlags(conf *config.Config) error {
	if *providerName != "" {
		conf.Provider = *providerName
	}

	conf.Strict = conf.Strict || *strict
	conf.ExcludeNetworks = append(conf.ExcludeNetworks, *excludeNetworks...)

	return config.Validate(conf)
}
