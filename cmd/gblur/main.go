// Command gblur applies a Gaussian blur to still images and Y4M streams.
//
// Usage:
//
//	gblur -in photo.webp -out blurred.png -sigma 3
//	gblur -in clip.y4m -out clip-blur.y4m -chain "sigma=2:height=240:black"
//	gblur -in frame.jpg -out out.jpg -config blur.yaml -v
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gblur"
	"github.com/gogpu/gblur/config"
	"github.com/gogpu/gblur/internal/imageio"
	"github.com/gogpu/gblur/internal/y4m"
	"github.com/gogpu/gblur/vfilter"
)

func main() {
	var (
		input    = flag.String("in", "", "input image or .y4m stream")
		output   = flag.String("out", "", "output image or .y4m stream")
		cfgPath  = flag.String("config", "", "YAML configuration file")
		chain    = flag.String("chain", "", "option chain, e.g. sigma=2:height=full:black=0")
		sigma    = flag.Float64("sigma", gblur.DefaultSigma, "gaussian standard deviation")
		height   = flag.String("height", "full", "luma lines to blur, or full")
		black    = flag.Bool("black", false, "blank the blurred luma region")
		float    = flag.Bool("float", false, "use float32 arithmetic")
		exact    = flag.Bool("exact", false, "clip the kernel window at the right edge")
		round    = flag.Bool("round", false, "round instead of truncating")
		legacy   = flag.Bool("legacy-scale", false, "use the legacy pass-through constant beyond the height limit")
		chroma   = flag.String("chroma", "", "frame layout for still images (i420, i422, grey, ...)")
		verbose  = flag.Bool("v", false, "debug logging")
		passOnly = flag.Bool("pass-bad-frames", false, "pass unsupported frames through instead of dropping them")
	)
	flag.Parse()

	if *input == "" || *output == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	gblur.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *chain != "" {
		if err := cfg.ApplyChain(*chain); err != nil {
			log.Fatalf("Invalid option chain: %v", err)
		}
	}

	// Explicit flags override the file and the chain.
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sigma":
			cfg.Sigma = *sigma
		case "height":
			h, err := config.ParseHeight(*height)
			flagErr = errors.Join(flagErr, err)
			cfg.Height = h
		case "black":
			cfg.Black = *black
		case "float":
			cfg.Float = *float
		case "exact":
			cfg.ExactBounds = *exact
		case "round":
			cfg.Round = *round
		case "legacy-scale":
			if *legacy {
				cfg.PassThroughScale = gblur.LegacyPassThroughScale
			}
		case "chroma":
			cfg.Chroma = *chroma
		case "pass-bad-frames":
			if *passOnly {
				cfg.OnError = config.OnErrorPass
			}
		}
	})
	if flagErr != nil {
		log.Fatalf("Invalid flags: %v", flagErr)
	}

	var err error
	if strings.EqualFold(filepath.Ext(*input), ".y4m") {
		err = runStream(cfg, *input, *output)
	} else {
		err = runImage(cfg, *input, *output)
	}
	if err != nil {
		log.Fatalf("gblur: %v", err)
	}
}

// runImage blurs a single still image.
func runImage(cfg config.Config, in, out string) error {
	f, err := vfilter.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	pic, err := imageio.Load(in, f.Chroma())
	if err != nil {
		return err
	}
	res, err := f.Filter(pic)
	if err != nil {
		return err
	}
	if err := imageio.Save(out, res); err != nil {
		return err
	}
	log.Printf("Blurred %s -> %s (%dx%d, sigma %v)", in, out, pic.Width(), pic.Height(), cfg.Sigma)
	return nil
}

// runStream blurs every frame of a Y4M stream through one filter.
func runStream(cfg config.Config, in, out string) (err error) {
	src, err := os.Open(filepath.Clean(in))
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = src.Close() }()

	r, err := y4m.NewReader(src)
	if err != nil {
		return err
	}
	h := r.Header()
	cfg.Chroma = h.Chroma.String()

	f, err := vfilter.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	dst, err := os.Create(filepath.Clean(out))
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := dst.Close(); err == nil {
			err = cerr
		}
	}()

	w, err := y4m.NewWriter(dst, h)
	if err != nil {
		return err
	}
	for {
		pic, err := r.ReadFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		res, err := f.Filter(pic)
		if errors.Is(err, gblur.ErrUnsupportedGeometry) {
			continue
		}
		if err != nil {
			return err
		}
		if err := w.WriteFrame(res); err != nil {
			return err
		}
		f.Release(res)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := f.Stats()
	log.Printf("Blurred %d frames (%d dropped, %d passed through) -> %s", s.Frames, s.Dropped, s.PassedThrough, out)
	return nil
}
