package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/brogergvhs/xkcdget/internal/comics"
	"github.com/brogergvhs/xkcdget/internal/config"
	"github.com/brogergvhs/xkcdget/internal/downloader"
	"github.com/brogergvhs/xkcdget/internal/extract"
	"github.com/brogergvhs/xkcdget/internal/providers/xkcd"
	"github.com/brogergvhs/xkcdget/internal/ui"
	"github.com/brogergvhs/xkcdget/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagNumber int
	flagAll    bool
	flagLatest bool
	flagRange  string
	flagList   string

	// output
	flagDir string
	flagOut string

	// runtime
	flagYes              bool
	flagWorkers          int
	flagTimeout          int
	flagExtractor        string
	flagUserAgent        string
	flagCloudflareBypass bool
	flagNoProgress       bool
	flagLogFile          string
)

type mode int

const (
	modeNone mode = iota
	modeSingle
	modeLatest
	modeAll
	modeSelection
)

type request struct {
	mode mode
	id   int
	ids  []int
}

var errModeConflict = errors.New("choose only one of --number, --all, --latest, --range, --list")

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download comics. Uses the defaults from the selected config, overwritten by CLI flags",
		Example: `  xkcdget download --number 353 --out python
  xkcdget download --latest --out xkcd_
  xkcdget download --all --dir ./archive
  xkcdget download --range 100-120`,
		RunE: runDownload,
	}

	downloadCmd.Flags().IntVarP(&flagNumber, "number", "n", 0, "download a single comic by id")
	downloadCmd.Flags().BoolVar(&flagAll, "all", false, "download every comic from 1 to the newest one in the feed")
	downloadCmd.Flags().BoolVar(&flagLatest, "latest", false, "download the comics listed in the RSS feed")
	downloadCmd.Flags().StringVar(&flagRange, "range", "", "download a range of comic ids (e.g. 5-12)")
	downloadCmd.Flags().StringVar(&flagList, "list", "", "download specific comic ids (e.g. 1,3,5)")

	downloadCmd.Flags().StringVarP(&flagDir, "dir", "d", "", "output folder")
	downloadCmd.Flags().StringVarP(&flagOut, "out", "o", "", "file name for --number, file name prefix otherwise")

	downloadCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "don't ask before downloading the latest comics")
	downloadCmd.Flags().IntVar(&flagWorkers, "workers", 0, "parallel downloads for batch modes (max 10)")
	downloadCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "request timeout in seconds, 0 disables it")
	downloadCmd.Flags().StringVar(&flagExtractor, "extractor", "", "image extraction strategy: regex or dom")
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	downloadCmd.Flags().BoolVar(&flagCloudflareBypass, "cloudflare-bypass", false, "send requests through the Cloudflare bypass transport")
	downloadCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "hide the progress bar")
	downloadCmd.Flags().StringVar(&flagLogFile, "log-file", "", "also write logs to this file (rotated)")

	rootCmd.AddCommand(downloadCmd)
}

// parseRequest validates the mode flags. At most one mode may be given.
func parseRequest(number int, numberSet, all, latest bool, rng, list string) (request, error) {
	var (
		req   request
		modes int
	)

	if numberSet {
		modes++
		if number <= 0 || number > comics.MaxID {
			return req, fmt.Errorf("--number must be a comic id between 1 and %d, got %d", comics.MaxID, number)
		}
		req = request{mode: modeSingle, id: number}
	}
	if all {
		modes++
		req = request{mode: modeAll}
	}
	if latest {
		modes++
		req = request{mode: modeLatest}
	}
	if rng != "" {
		modes++
		ids, err := comics.ParseRange(rng)
		if err != nil {
			return req, err
		}
		req = request{mode: modeSelection, ids: ids}
	}
	if list != "" {
		modes++
		ids, err := comics.ParseList(list)
		if err != nil {
			return req, err
		}
		req = request{mode: modeSelection, ids: ids}
	}

	if modes > 1 {
		return request{}, errModeConflict
	}

	return req, nil
}

func runDownload(cmd *cobra.Command, _ []string) error {
	req, err := parseRequest(flagNumber, cmd.Flags().Changed("number"), flagAll, flagLatest, flagRange, flagList)
	if err != nil {
		return err
	}

	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		Output:       flagDir,
		Workers:      flagWorkers,
		Timeout:      flagTimeout,
		TimeoutSet:   cmd.Flags().Changed("timeout"),
		NoProgress:   flagNoProgress,
		Extractor:    flagExtractor,
		UserAgent:    flagUserAgent,
		LogPath:      flagLogFile,
	})
	if err != nil {
		return err
	}
	if flagCloudflareBypass {
		cfg.CloudflareBypass = true
	}

	ext, err := extract.New(cfg.Extractor, cfg.SiteURL, cfg.ImageURL)
	if err != nil {
		return err
	}

	if req.mode == modeNone {
		ok := flagYes
		if !ok {
			if ok, err = confirm("Download the latest comics from the RSS feed", true); err != nil {
				return err
			}
		}
		if !ok {
			return cmd.Help()
		}
		req.mode = modeLatest
	}

	log := ui.NewLoggerWith(ui.LogOptions{
		Debug:      cfg.Debug,
		Path:       cfg.LogPath,
		MaxSizeMB:  cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
	})
	defer log.Close()

	log.Debugf("Config file: %s", usedPath)
	if cfg.Debug {
		fmt.Fprintln(os.Stderr, "Full config:")
		cfg.Print(os.Stderr)
	}

	client := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          cfg.RequestTimeout(),
		UserAgent:        cfg.UserAgent,
		CloudflareBypass: cfg.CloudflareBypass,
		DebugLogger:      log,
	})

	scr := xkcd.NewScraper(client, log, xkcd.Options{
		SiteURL:   cfg.SiteURL,
		FeedURL:   cfg.FeedURL,
		Extractor: ext,
	})

	util.SetupInterruptHandler(cfg.Output)

	var (
		pm     *ui.MPBProgressManager
		handle *ui.ProgressHandle
		opts   = downloader.BatchOptions{Workers: cfg.Workers}
		stats  = &ui.Stats{}
	)
	opts.OnOutcome = stats.Record

	if cfg.Progress && (req.mode == modeAll || req.mode == modeSelection) {
		pm = ui.NewProgressManager(os.Stderr)
		handle = pm.Register("xkcd")
		opts.Tracker = handle
	}

	batch := downloader.NewBatch(scr, downloader.New(client, log), log, opts)

	ctx := context.Background()
	start := time.Now()

	switch req.mode {
	case modeSingle:
		batch.Single(ctx, req.id, cfg.Output, flagOut)
	case modeLatest:
		if _, err := batch.Latest(ctx, cfg.Output, flagOut); err != nil {
			log.Errorf("Reading feed %s failed: %v", cfg.FeedURL, err)
		}
	case modeAll:
		if _, err := batch.All(ctx, cfg.Output, flagOut); err != nil {
			log.Errorf("Finding the newest comic failed: %v", err)
		}
	case modeSelection:
		batch.Selection(ctx, req.ids, cfg.Output, flagOut)
	}

	if pm != nil {
		handle.MarkDone()
		pm.Close()
	}

	stats.Print(cmd.OutOrStdout(), time.Since(start))
	return nil
}
