package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"touchsense/internal/config"
	"touchsense/internal/force"
	"touchsense/internal/gesture"
	"touchsense/internal/haptic"
	"touchsense/internal/hid"
	"touchsense/internal/touch"
	"touchsense/internal/trace"
	"touchsense/internal/ui"
)

const Version = "0.1.0"

func main() {
	// Check for subcommands first
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "playground":
			runPlayground(os.Args[2:])
			return
		case "replay":
			runReplay(os.Args[2:])
			return
		case "plot":
			runPlot(os.Args[2:])
			return
		case "listen":
			runListen(os.Args[2:])
			return
		case "profiles":
			runProfiles(os.Args[2:])
			return
		case "devices", "list-devices":
			runListDevices()
			return
		case "help", "-h", "--help":
			printUsage()
			os.Exit(0)
		}
	}

	// Bare invocation: flags only, then the playground.
	fs := flag.NewFlagSet("touchsense", flag.ExitOnError)
	profileName := fs.String("profile", "default", "threshold profile name")
	configPath := fs.String("config", "", "path to a YAML threshold overlay file")
	record := fs.String("record", "", "save the live touch samples to a trace file")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	version := fs.Bool("version", false, "print version and exit")
	fs.Usage = printUsage
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if *version {
		ui.PrintVersion(Version)
		os.Exit(0)
	}

	startPlayground(*profileName, *configPath, *record, *verbose)
}

func printUsage() {
	ui.PrintUsage(Version)
}

// loadProfile resolves the active threshold profile. An overlay file
// wins over the -profile flag because it names its own base profile.
func loadProfile(profileName, configPath string) (config.Profile, error) {
	if configPath != "" {
		return config.LoadOverlay(configPath)
	}
	return config.Named(profileName)
}

// runPlayground handles the playground subcommand
func runPlayground(args []string) {
	fs := flag.NewFlagSet("playground", flag.ExitOnError)
	profileName := fs.String("profile", "", "threshold profile name (interactive picker when empty)")
	configPath := fs.String("config", "", "path to a YAML threshold overlay file")
	record := fs.String("record", "", "save the live touch samples to a trace file")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	name := *profileName
	if name == "" && *configPath == "" {
		selected, err := ui.SelectProfile(config.Names())
		if err != nil {
			ui.PrintFatalError("Profile selection failed", err.Error())
			os.Exit(1)
		}
		if selected == "" {
			fmt.Println(ui.Muted("No profile selected"))
			os.Exit(0)
		}
		name = selected
	}
	if name == "" {
		name = "default"
	}

	startPlayground(name, *configPath, *record, *verbose)
}

func startPlayground(profileName, configPath, recordPath string, verbose bool) {
	profile, err := loadProfile(profileName, configPath)
	if err != nil {
		ui.PrintFatalError("Failed to load profile", err.Error())
		os.Exit(1)
	}

	rec := gesture.New(profile)
	defer rec.Close()

	// A live overlay file is watched so threshold tuning takes effect
	// without restarting.
	if configPath != "" {
		watcher, err := config.NewWatcher(configPath)
		if err != nil {
			ui.PrintFatalError("Failed to watch overlay file", err.Error())
			os.Exit(1)
		}
		watcher.OnReload(func(p config.Profile) {
			if verbose {
				log.Printf("Reloaded thresholds from %s", configPath)
			}
			rec.SetProfile(p)
		})
		watcher.Start()
		defer watcher.Stop()
	}

	if verbose {
		log.Printf("Profile %q active", profile.Name)
	}

	var tee ui.SampleTee
	var recorder *trace.Recorder
	if recordPath != "" {
		recorder = trace.NewRecorder(traceName(recordPath), profile.Name)
		tee = recorder
	}

	if err := ui.RunPlayground(rec, profile.Name, tee); err != nil {
		ui.PrintFatalError("Playground error", err.Error())
		os.Exit(1)
	}

	if recorder != nil {
		saveRecording(recorder, recordPath)
	}
}

// saveRecording writes a captured trace to disk and reports the outcome.
func saveRecording(rec *trace.Recorder, path string) {
	if rec.Len() == 0 {
		fmt.Println(ui.Muted("No samples captured, nothing recorded"))
		return
	}
	tr := rec.Trace()
	if err := tr.Save(path); err != nil {
		ui.PrintError(fmt.Sprintf("Failed to save recording: %v", err))
		return
	}
	fmt.Println(ui.Success(fmt.Sprintf("Recorded %d samples to %s", len(tr.Samples), path)))
}

// traceName derives the trace's embedded name from its file name.
func traceName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".yaml")
	return strings.TrimSuffix(base, ".yml")
}

// runReplay handles the replay subcommand
func runReplay(args []string) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	profileName := fs.String("profile", "default", "threshold profile name")
	configPath := fs.String("config", "", "path to a YAML threshold overlay file")
	fast := fs.Bool("fast", false, "replay without realtime pacing")
	speed := fs.Float64("speed", 1, "realtime speed multiplier")
	fs.Usage = ui.PrintReplayUsage
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		ui.PrintReplayUsage()
		os.Exit(1)
	}
	tracePath := fs.Arg(0)

	tr, err := trace.Load(tracePath)
	if err != nil {
		ui.PrintFatalError("Failed to load trace", err.Error())
		os.Exit(1)
	}

	// A trace may pin the profile it was recorded under; explicit flags
	// still win.
	name := *profileName
	if tr.Profile != "" && name == "default" {
		name = tr.Profile
	}
	profile, err := loadProfile(name, *configPath)
	if err != nil {
		ui.PrintFatalError("Failed to load profile", err.Error())
		os.Exit(1)
	}

	clock := trace.NewClock()
	rec := gesture.New(profile, gesture.WithClock(clock.Now))
	defer rec.Close()

	for _, t := range gesture.Types() {
		rec.On(t, ui.PrintEvent)
	}

	label := tr.Name
	if label == "" {
		label = tracePath
	}
	fmt.Println()
	fmt.Printf("%s %s\n", ui.Title("Replaying"), ui.Subtitle(label))
	fmt.Println(ui.Muted(fmt.Sprintf("  %d samples over %dms, profile %q",
		len(tr.Samples), tr.DurationMs(), profile.Name)))
	fmt.Println()

	ctx, cancel := signalContext()
	defer cancel()

	opts := trace.Options{
		Realtime: !*fast,
		Speed:    *speed,
		Settle:   settleDelay(profile),
	}
	rp := trace.NewReplayer(rec, clock, opts)
	if err := rp.Run(ctx, tr); err != nil && ctx.Err() == nil {
		ui.PrintFatalError("Replay failed", err.Error())
		os.Exit(1)
	}
	fmt.Println()
}

// runListen handles the listen subcommand
func runListen(args []string) {
	fs := flag.NewFlagSet("listen", flag.ExitOnError)
	vendor := fs.String("vendor", "", "vendor ID in hex, e.g. 0x28DE")
	product := fs.String("product", "", "product ID in hex, e.g. 0x1102")
	profileName := fs.String("profile", "default", "threshold profile name")
	configPath := fs.String("config", "", "path to a YAML threshold overlay file")
	record := fs.String("record", "", "save the touch samples to a trace file")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	fs.Usage = ui.PrintListenUsage
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	vid, pid, err := resolveDeviceIDs(*vendor, *product)
	if err != nil {
		ui.PrintFatalError("No digitizer available", err.Error())
		os.Exit(1)
	}

	profile, err := loadProfile(*profileName, *configPath)
	if err != nil {
		ui.PrintFatalError("Failed to load profile", err.Error())
		os.Exit(1)
	}

	dev, err := hid.NewDevice(vid, pid)
	if err != nil {
		ui.PrintFatalError("Failed to open device", err.Error())
		os.Exit(1)
	}
	defer dev.Close()

	// Pressure capability is only known once reports arrive, so the
	// probe reads a flag the report loop sets.
	var pressureSeen atomic.Bool
	det := force.NewDetector(pressureSeen.Load)

	rec := gesture.New(profile,
		gesture.WithForceDetector(det),
		gesture.WithHaptics(haptic.NewDispatcher(dev)),
	)
	defer rec.Close()

	for _, t := range gesture.Types() {
		rec.On(t, ui.PrintEvent)
	}

	fmt.Println()
	fmt.Printf("%s %s\n", ui.Title("Listening"),
		ui.Subtitle(fmt.Sprintf("0x%04X:0x%04X", vid, pid)))
	fmt.Println(ui.Muted(fmt.Sprintf("  profile %q, Ctrl+C to stop", profile.Name)))
	fmt.Println()

	ctx, cancel := signalContext()
	defer cancel()

	var recorder *trace.Recorder
	if *record != "" {
		recorder = trace.NewRecorder(traceName(*record), profile.Name)
		defer saveRecording(recorder, *record)
	}

	reports := make(chan hid.TouchReport, 16)
	resets := make(chan struct{}, 1)

	go func() {
		tracker := hid.NewFrameTracker()
		norm := touch.NewNormalizer()
		for {
			select {
			case <-ctx.Done():
				return
			case <-resets:
				tracker.Reset()
				rec.Process(touch.PhaseCancel, nil)
			case rep := <-reports:
				if rep.HasPressure {
					pressureSeen.Store(true)
				}
				s := tracker.Track(&rep)
				points := norm.Normalize(s.Contacts)
				if recorder != nil {
					recorder.Process(s.Phase, points)
				}
				rec.Process(s.Phase, points)
			}
		}
	}()

	for {
		err := dev.ReadReports(ctx, reports)
		if ctx.Err() != nil {
			return
		}
		if *verbose {
			log.Printf("Device read failed: %v, waiting for reconnect", err)
		}

		// In-flight touches must not survive across a disconnect.
		select {
		case resets <- struct{}{}:
		default:
		}

		if err := dev.WaitForDevice(ctx, time.Second); err != nil {
			return
		}
		if *verbose {
			log.Printf("Device reconnected")
		}
	}
}

// resolveDeviceIDs picks the digitizer to listen to. Explicit flags win;
// otherwise the first digitizer on the system is used.
func resolveDeviceIDs(vendor, product string) (uint16, uint16, error) {
	if vendor != "" || product != "" {
		vid, err := parseHexID(vendor)
		if err != nil {
			return 0, 0, fmt.Errorf("vendor: %w", err)
		}
		pid, err := parseHexID(product)
		if err != nil {
			return 0, 0, fmt.Errorf("product: %w", err)
		}
		return vid, pid, nil
	}

	digitizers, err := hid.ListDigitizers()
	if err != nil {
		return 0, 0, err
	}
	if len(digitizers) == 0 {
		return 0, 0, fmt.Errorf("no digitizers found, run '%s devices' to inspect the system", "touchsense")
	}
	return digitizers[0].VendorID, digitizers[0].ProductID, nil
}

func parseHexID(s string) (uint16, error) {
	if s == "" {
		return 0, fmt.Errorf("both -vendor and -product are required")
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid ID %q", s)
	}
	return uint16(v), nil
}

// settleDelay is how long replay waits after the last sample so held
// events (a tap waiting out its double-tap window) still get printed.
func settleDelay(p config.Profile) time.Duration {
	ms := p.DoubleTap.TimeoutMs
	if p.LongPress.DelayMs > ms {
		ms = p.LongPress.DelayMs
	}
	return time.Duration(ms+100) * time.Millisecond
}

// runPlot handles the plot subcommand
func runPlot(args []string) {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	out := fs.String("out", "", "output file")
	width := fs.Int("width", 640, "image width in pixels")
	height := fs.Int("height", 480, "image height in pixels")
	fs.Usage = ui.PrintPlotUsage
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		ui.PrintPlotUsage()
		os.Exit(1)
	}
	tracePath := fs.Arg(0)

	tr, err := trace.Load(tracePath)
	if err != nil {
		ui.PrintFatalError("Failed to load trace", err.Error())
		os.Exit(1)
	}

	outPath := *out
	if outPath == "" {
		outPath = strings.TrimSuffix(tracePath, ".yaml")
		outPath = strings.TrimSuffix(outPath, ".yml") + ".png"
	}

	if err := trace.WritePNG(tr, outPath, *width, *height); err != nil {
		ui.PrintFatalError("Failed to write plot", err.Error())
		os.Exit(1)
	}

	fmt.Println(ui.Success(fmt.Sprintf("Plotted %d samples to %s", len(tr.Samples), outPath)))
}

// runProfiles handles the profiles subcommand
func runProfiles(args []string) {
	fs := flag.NewFlagSet("profiles", flag.ExitOnError)
	configPath := fs.String("config", "", "also show the merged overlay profile")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ui.PrintProfileList(config.Names())

	if *configPath != "" {
		profile, err := config.LoadOverlay(*configPath)
		if err != nil {
			ui.PrintFatalError("Failed to load overlay", err.Error())
			os.Exit(1)
		}
		fmt.Println(ui.Muted(fmt.Sprintf("Merged overlay from %s:", *configPath)))
		fmt.Println()
		fmt.Printf("  %s\n", ui.Subtitle(profile.Name))
	}
}

// runListDevices handles the devices subcommand
func runListDevices() {
	devices, err := hid.ListDevices()
	if err != nil {
		ui.PrintFatalError("Failed to list devices", err.Error())
		os.Exit(1)
	}

	uiDevices := make([]ui.DeviceInfo, len(devices))
	for i, d := range devices {
		uiDevices[i] = ui.DeviceInfo{
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Manufacturer: d.Manufacturer,
			Product:      d.Product,
			Digitizer:    d.IsDigitizer(),
		}
	}
	ui.PrintDeviceList(uiDevices)
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	return ctx, cancel
}
