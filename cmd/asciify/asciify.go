package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to the input image file (required; PNG, JPEG, GIF, TIFF, BMP, WebP or PDF)")
	outputFile := flag.String("output", "",
		"Path to save the text (if not specified, prints to stdout)")
	configFile := flag.String("config", "",
		"Optional YAML config; explicitly set flags override it")
	fontPath := flag.String("font", img2ascii.BuiltinGoMono,
		"Font to use: 'gomono', 'inconsolata' (embedded) or path to a TTF/OTF/TTC file")
	fontSize := flag.Float64("size", img2ascii.DefaultFontSize,
		"Font size in points")
	strategy := flag.String("strategy", "brightness",
		"Matching strategy: brightness or mindiff")
	mode := flag.String("mode", "ascii",
		"Render mode: ascii or pixel (pixel blurs glyphs before measuring brightness)")
	charset := flag.String("charset", "",
		"Characters to choose from (default depends on strategy)")
	filterRadius := flag.Float64("filter", img2ascii.DefaultFilterRadius,
		"Glyph blur radius for the mindiff strategy")
	scale := flag.Float64("scale", 0,
		"Resize factor for the input image (0 = keep size)")
	linespacing := flag.Float64("linespacing", img2ascii.DefaultLinespacing,
		"Vertical stretch compensating for the terminal's line height")
	interp := flag.String("interp", "area",
		"Resize interpolation: area, linear or nearest")
	invert := flag.Bool("invert", true,
		"Map dark image regions to dense characters")
	workers := flag.Int("workers", 0,
		"Matching goroutines (0 = one per CPU)")
	blankMissing := flag.Bool("blankmissing", false,
		"Render characters missing from the font as blank instead of failing")
	previewFile := flag.String("preview", "",
		"Also render the result to this PNG file")
	previewScale := flag.Int("previewscale", 1,
		"Pixel scale of the PNG preview")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if *inputFile == "" && flag.NArg() > 0 {
		*inputFile = flag.Arg(0)
	}
	if *inputFile == "" {
		fmt.Println("Please provide the image using the -input flag")
		flag.PrintDefaults()
		return
	}

	cfg := img2ascii.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = img2ascii.LoadConfig(*configFile)
		if err != nil {
			log.WithError(err).Fatal("Error loading config")
		}
	}

	// Flags given on the command line win over the config file
	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})
	override := func(name string, apply func()) {
		if setFlags[name] || *configFile == "" {
			apply()
		}
	}
	override("font", func() { cfg.Font = *fontPath })
	override("size", func() { cfg.FontSize = *fontSize })
	override("strategy", func() { cfg.Strategy = *strategy })
	override("mode", func() { cfg.Mode = *mode })
	override("charset", func() { cfg.Charset = *charset })
	override("filter", func() { cfg.FilterRadius = filterRadius })
	override("scale", func() { cfg.Scale = *scale })
	override("linespacing", func() { cfg.Linespacing = *linespacing })
	override("invert", func() { cfg.Invert = *invert })
	override("interp", func() { cfg.Interpolation = *interp })
	override("workers", func() { cfg.Workers = *workers })
	override("blankmissing", func() { cfg.BlankMissingGlyphs = *blankMissing })

	convertOpts, err := cfg.ConvertOptions()
	if err != nil {
		log.WithError(err).Fatal("Error in conversion options")
	}

	engine, err := img2ascii.NewEngineFromConfig(cfg, img2ascii.WithLogger(log.StandardLogger()))
	if err != nil {
		log.WithError(err).Fatal("Error initializing engine")
	}
	width, height := engine.Matcher().CellSize()
	log.WithFields(log.Fields{
		"font":     cfg.Font,
		"strategy": engine.Strategy,
		"mode":     engine.Mode,
		"charset":  len(engine.Charset),
		"glyph":    fmt.Sprintf("%dx%d", width, height),
	}).Infof("Initialization time: %v", engine.InitDuration())

	begin := time.Now()
	canvas, err := engine.ConvertFile(*inputFile, convertOpts)
	if err != nil {
		log.WithError(err).Fatal("Error processing image")
	}
	endComputation := time.Now()

	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			log.WithError(err).Fatal("Error creating output file")
		}
		if _, err := canvas.WriteTo(f); err != nil {
			f.Close()
			log.WithError(err).Fatal("Error writing output file")
		}
		if err := f.Close(); err != nil {
			log.WithError(err).Fatal("Error closing output file")
		}
		log.Infof("Output written to %s", *outputFile)
	} else if _, err := canvas.WriteTo(os.Stdout); err != nil {
		log.WithError(err).Fatal("Error writing output")
	}

	if *previewFile != "" {
		if !strings.HasSuffix(strings.ToLower(*previewFile), ".png") {
			log.Warnf("Preview %s does not end in .png; writing PNG anyway", *previewFile)
		}
		if err := engine.SavePreview(canvas, *previewFile, cfg.Invert, *previewScale); err != nil {
			log.WithError(err).Error("Error writing preview")
		} else {
			log.Infof("Preview written to %s", *previewFile)
		}
	}

	log.WithFields(log.Fields{
		"rows": canvas.Rows,
		"cols": canvas.Cols,
	}).Infof("Computation time: %v", endComputation.Sub(begin))
}
