package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/9seconds/chickadee/addresses"
	"github.com/9seconds/chickadee/config"
	"github.com/9seconds/chickadee/resolver"
	"github.com/9seconds/chickadee/source"
)

type runOptions struct {
	Input         string
	Columns       []string
	Unique        bool
	Routable      bool
	DocumentOrder bool
}

func run(ctx context.Context, conf *config.Config, opts runOptions,
	fs afero.Fs, out io.Writer, logger resolver.Logger) error {
	addrs, err := collectAddresses(conf, opts, fs)
	if err != nil {
		return err
	}

	prov, closeProv, err := makeProvider(conf)
	if err != nil {
		return err
	}

	defer closeProv()

	res, err := resolver.NewResolver(prov, resolver.Opts{
		Columns: opts.Columns,
		Logger:  logger,
		Strict:  conf.Strict,
	})
	if err != nil {
		return errors.Annotate(err, "cannot create resolver")
	}

	records, resolveErr := res.Resolve(ctx, addrs)

	if err := writeRecords(out, records, opts.Columns, logger); err != nil {
		return err
	}

	if stats, err := json.Marshal(res.Stats()); err == nil {
		log.WithField("stats", string(stats)).Debug("Provider usage.")
	}

	return resolveErr
}

func collectAddresses(conf *config.Config, opts runOptions, fs afero.Fs) ([]addresses.Address, error) {
	loader := source.Loader{
		Fs:      fs,
		MaxSize: conf.MaxDecompressedSize,
	}

	src, err := loader.Load(opts.Input)
	if err != nil {
		return nil, err
	}

	extractor := addresses.Extractor{Order: addresses.OrderFamily}
	if opts.DocumentOrder {
		extractor.Order = addresses.OrderDocument
	}

	addrs := extractor.Extract(src.Text)
	extracted := len(addrs)

	if opts.Unique {
		addrs = addresses.Deduplicate(addrs)
	}

	if opts.Routable {
		addrs = addresses.FilterRoutable(addrs)
	}

	filter, err := addresses.NewNetworkFilter(conf.ExcludeNetworks)
	if err != nil {
		return nil, errors.Annotate(err, "incorrect excluded networks")
	}

	addrs = filter.Filter(addrs)

	log.WithFields(log.Fields{
		"source":    src.Kind.String(),
		"extracted": extracted,
		"selected":  len(addrs),
	}).Debug("Addresses were collected.")

	return addrs, nil
}
