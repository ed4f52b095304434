package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gioui.org/app"
	"github.com/spf13/cobra"
	"github.com/wavetag/wavetag/decode"
	"github.com/wavetag/wavetag/internal/logging"
	"github.com/wavetag/wavetag/oto"
	"github.com/wavetag/wavetag/tracker"
	"github.com/wavetag/wavetag/tracker/gioui"
	"github.com/wavetag/wavetag/version"
)

var (
	verbose         bool
	annotationsPath string
	ffmpegPath      string
	logger          *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wavetag [audio-file]",
	Short: "Label regions of an audio file",
	Long: `Wavetag shows the waveform of an audio file and lets you select,
play back and label time ranges of it. The labels are saved as JSON.

WAV and MP3 files are decoded natively; other formats need ffmpeg.`,
	Args:    cobra.MaximumNArgs(1),
	Version: version.VersionOrHash,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
	RunE: run,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.Flags().
		StringVarP(&annotationsPath, "annotations", "a", "", "Annotation file to load with the audio file")
	rootCmd.Flags().
		StringVar(&ffmpegPath, "ffmpeg", "", "Path of the ffmpeg executable")
}

func run(cmd *cobra.Command, args []string) error {
	if annotationsPath != "" && len(args) == 0 {
		return fmt.Errorf("--annotations needs an audio file")
	}
	defer logger.Sync()
	preferences := gioui.MakePreferences()
	if preferences.YmlError != nil {
		logger.Warnw("could not read preferences", "error", preferences.YmlError)
	}
	mode, err := preferences.InteractionMode()
	if err != nil {
		logger.Warnw("invalid mode in preferences", "error", err)
	}
	player, err := oto.NewContext(oto.DefaultSampleRate)
	if err != nil {
		return fmt.Errorf("could not open audio output: %w", err)
	}
	broker := tracker.NewBroker()
	regions := &gioui.RegionPalette{}
	model := tracker.NewModel(broker, tracker.Config{
		Player:  player,
		Decoder: &decode.Decoder{FFmpegPath: ffmpegPath, Logger: logger.Zap()},
		Handles: regions,
		Logger:  logger.Zap(),
		Speed:   preferences.PlaybackSpeed(),
		Mode:    mode,
		Follow:  preferences.Playback.Follow,
	})
	if len(args) > 0 {
		if err := model.LoadSession(args[0], annotationsPath); err != nil {
			return err
		}
	}
	logger.Debugw("starting gui", "version", version.VersionOrHash)
	ui := gioui.NewTracker(model, regions, preferences, logger.Zap())
	interrupted, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-interrupted.Done()
		logger.Infow("interrupted, closing")
		tracker.TrySend(broker.CloseGUI, struct{}{})
		select {
		case <-broker.FinishedGUI:
		case <-time.After(3 * time.Second):
			logger.Warnw("gui did not close in time")
			os.Exit(1)
		}
	}()
	go func() {
		ui.Main()
		logger.Sync()
		os.Exit(0)
	}()
	app.Main()
	return nil
}
