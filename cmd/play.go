package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jsphweid/diatonicpad/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	playKey      string
	playMode     string
	playOctave   int
	playTensions []int
	playVoicing  string
	playGain     float64
)

func init() {
	rootCmd.AddCommand(playCmd)
	def := model.DefaultContext()
	playCmd.Flags().StringVarP(&playKey, "key", "k", def.Tonic, "tonic")
	playCmd.Flags().StringVarP(&playMode, "mode", "m", def.Mode, "mode")
	playCmd.Flags().IntVarP(&playOctave, "octave", "o", def.OctaveBase, "octave of the tonic")
	playCmd.Flags().IntSliceVarP(&playTensions, "tension", "t", nil, "tensions to add (7, 9, 11, 13)")
	playCmd.Flags().StringVar(&playVoicing, "voicing", def.Voicing, "voicing")
	playCmd.Flags().Float64Var(&playGain, "gain", 1, "gain between 0 and 1")
}

var playCmd = &cobra.Command{
	Use:   "play <degree>...",
	Short: "Plays scale degrees (1-7) in sequence",
	Long:  `Plays scale degrees (1-7) in sequence, one per beat at 100 bpm, and waits for the last to finish.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var degrees []int
		for _, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 || n > 7 {
				return errors.Errorf("degree must be between 1 and 7, got %q", arg)
			}
			degrees = append(degrees, n-1)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		app, err := NewApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		s := app.Session
		err = s.Update(func(c *model.MusicalContext) {
			c.Tonic = playKey
			c.Mode = playMode
			c.OctaveBase = playOctave
			c.Voicing = playVoicing
			c.Tensions = model.NewTensions(playTensions...)
		})
		if err != nil {
			return err
		}

		beat := time.Minute / time.Duration(s.Context().BPM)
		for i, d := range degrees {
			if i > 0 {
				time.Sleep(beat)
			}
			res, err := s.Trigger(d, playGain)
			if err != nil {
				return err
			}
			fmt.Printf("%s  [%s]  %s\n", res.Chord.Name(), strings.Join(res.Chord.NoteNames(), " "), res.AssetPath)
			if !res.Played {
				fmt.Println("  no audio available, run generate first")
			}
		}

		deadline := time.Now().Add(10 * time.Second)
		for len(s.Voices()) > 0 && time.Now().Before(deadline) {
			time.Sleep(50 * time.Millisecond)
		}
		return nil
	},
}
